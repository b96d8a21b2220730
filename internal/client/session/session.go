// Package session holds the client's authentication state: who is signed
// in, and whether that is known yet. It drives the login, register, logout
// and startup-restore flows over the auth service and the persisted token.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

// State is the session lifecycle position.
type State int

const (
	// Unknown until the first Load finishes.
	Unknown State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// TokenStore is the persisted token as the session uses it.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	SaveLogin(ctx context.Context, token, username string) error
	Clear(ctx context.Context) error
}

// Headers is the shared client's default header set.
type Headers interface {
	SetDefaultHeader(key, value string)
	DeleteDefaultHeader(key string)
}

// Session is safe for concurrent use.
type Session struct {
	auth    services.AuthService
	tokens  TokenStore
	headers Headers
	log     logging.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
}

func New(auth services.AuthService, tokens TokenStore, headers Headers, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNop()
	}
	return &Session{auth: auth, tokens: tokens, headers: headers, log: log}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether the initial restore has not finished yet.
func (s *Session) Loading() bool {
	return s.State() == Unknown
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) set(state State, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}

// Load resolves the session from the persisted token. Without a token it
// settles on Anonymous without touching the network. A token the server
// rejects, or that cannot be checked, is cleared. Only a failure to read
// the local store is returned.
func (s *Session) Load(ctx context.Context) error {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.set(Anonymous, nil)
		return fmt.Errorf("load session: %w", err)
	}
	if token == "" {
		s.set(Anonymous, nil)
		return nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Info(ctx, "stored token rejected", "error", err)
		s.drop(ctx)
		return nil
	}

	s.log.Debug(ctx, "session restored", "username", user.Username)
	s.set(Authenticated, user)
	return nil
}

// Login exchanges credentials for a token, persists it, points the default
// Authorization header at it and reloads the user. A failed exchange
// leaves the session untouched and returns the error.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := s.tokens.SaveLogin(ctx, token, username); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	s.headers.SetDefaultHeader(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return s.Load(ctx)
}

// Register creates the account and then signs in with the same credentials.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	if _, err := s.auth.Register(ctx, username, email, password); err != nil {
		return err
	}
	return s.Login(ctx, username, password)
}

// Logout forgets the token and the user locally. The server is not told.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.headers.DeleteDefaultHeader(common.AuthorizationHeaderName)
	s.set(Anonymous, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// HandleUnauthorized drops the session when err is a 401 from the API and
// reports whether it did. The transport has already cleared the token.
func (s *Session) HandleUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	s.log.Info(ctx, "session expired")
	s.drop(ctx)
	return true
}

func (s *Session) drop(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clear token", "error", err)
	}
	s.headers.DeleteDefaultHeader(common.AuthorizationHeaderName)
	s.set(Anonymous, nil)
}

type ctxKey struct{}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx. It panics when there is
// none: every page runs under a session provider.
func FromContext(ctx context.Context) *Session {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		panic("session: FromContext must be used within a session provider")
	}
	return s
}
