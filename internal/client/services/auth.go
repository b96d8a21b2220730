package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

var ErrEmptyToken = errors.New("login response carried no access token")

// AuthService covers the account endpoints.
//
//   - Login exchanges credentials for an access token.
//   - Register creates an account; it does not sign in.
//   - Me fetches the user the current token belongs to.
//   - Ping checks server liveness.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	api API
}

func NewAuthService(api API) AuthService {
	return &authService{api: api}
}

func (a *authService) Login(ctx context.Context, username, password string) (string, error) {
	var resp models.TokenResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := a.api.PostJSON(ctx, "/api/auth/login", req, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return resp.AccessToken, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var user models.User
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	if err := a.api.PostJSON(ctx, "/api/auth/register", req, &user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.api.GetJSON(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &user, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
