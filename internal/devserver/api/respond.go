package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/bimod/internal/logging"
)

type detail struct {
	Detail any `json:"detail"`
}

// FieldError is one entry of a 422 detail list.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(ctx context.Context, log logging.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn(ctx, "write response", "error", err)
	}
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, status int, v any) {
	writeJSON(r.Context(), s.log, w, status, v)
}

// fail writes {"detail": msg}.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(r.Context(), s.log, w, status, detail{Detail: msg})
}

func (s *Server) invalid(w http.ResponseWriter, r *http.Request, errs []FieldError) {
	writeJSON(r.Context(), s.log, w, http.StatusUnprocessableEntity, detail{Detail: errs})
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	s.fail(w, r, http.StatusInternalServerError, "Internal server error")
}

// decode reads a JSON body into v. On failure it has already answered 422.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.invalid(w, r, []FieldError{{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}})
		return false
	}
	return true
}

func missing(field string) FieldError {
	return FieldError{Loc: []string{"body", field}, Msg: "Field required", Type: "missing"}
}
