package api

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/devserver/users"
)

func userResponse(u *users.User) models.User {
	return models.User{ID: u.ID, Username: u.UserName, Email: u.Email, IsActive: u.IsActive}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}

	var errs []FieldError
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, missing("username"))
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, missing("email"))
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, FieldError{
			Loc:  []string{"body", "email"},
			Msg:  "value is not a valid email address",
			Type: "value_error",
		})
	}
	if req.Password == "" {
		errs = append(errs, missing("password"))
	}
	if len(errs) > 0 {
		s.invalid(w, r, errs)
		return
	}

	u, err := s.users.Register(r.Context(), strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), req.Password)
	switch {
	case err == nil:
		s.ok(w, r, http.StatusOK, userResponse(u))
	case errors.Is(err, users.ErrUsernameTaken), errors.Is(err, users.ErrEmailTaken):
		s.fail(w, r, http.StatusBadRequest, err.Error())
	default:
		s.internal(w, r, err)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		s.ok(w, r, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
	case errors.Is(err, users.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.fail(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, users.ErrInactive):
		s.fail(w, r, http.StatusBadRequest, err.Error())
	default:
		s.internal(w, r, err)
	}
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.ok(w, r, http.StatusOK, userResponse(userFrom(r.Context())))
}
