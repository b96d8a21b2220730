// Package tokenstore persists the session bearer token under the fixed key
// common.TokenStorageKey of the local metadata store.
package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Store reads and writes the token synchronously; the last write wins.
type Store struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the stored token, or "" when there is none.
func (s *Store) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return string(v), nil
}

// Set persists token. An empty token is the same as Clear.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

// SaveLogin persists token together with the username it was issued to.
func (s *Store) SaveLogin(ctx context.Context, token, username string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	err := s.repo.SetMany(ctx, map[string][]byte{
		common.TokenStorageKey:    []byte(token),
		common.UsernameStorageKey: []byte(username),
	})
	if err != nil {
		return fmt.Errorf("save login: %w", err)
	}
	return nil
}

// LastUsername is the username of the most recent login, kept across logout.
func (s *Store) LastUsername(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.UsernameStorageKey)
	if err != nil {
		return "", fmt.Errorf("get username: %w", err)
	}
	return string(v), nil
}

// Clear removes the token; clearing an absent token is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.TokenStorageKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Expiry reads the exp claim of a JWT without verifying its signature. The
// token stays opaque to the client; this only feeds the status line.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
