package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/router"
	"github.com/dmitrijs2005/bimod/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ReturnsToRequestedPage(t *testing.T) {
	b := newBackend().withUser().on("GET /api/coe/history", http.StatusOK, `[]`)
	h := newHarness(t, b, "alice\nsecret\n")
	ctx := context.Background()

	require.NoError(t, h.app.session.Load(ctx))
	require.NoError(t, h.app.Navigate(ctx, "coe"))
	assert.Equal(t, router.PathLogin, h.app.currentPath())
	assert.Equal(t, router.PathCOE, h.app.from)

	require.NoError(t, h.app.Login(ctx))

	assert.Equal(t, router.PathCOE, h.app.currentPath())
	assert.Empty(t, h.app.from)
	assert.Equal(t, 1, b.called("GET /api/coe/history"))
	assert.Contains(t, h.out.String(), "Welcome, alice!")
	assert.JSONEq(t, `{"username":"alice","password":"secret"}`, b.body("POST /api/auth/login"))

	tok, err := h.store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-alice", tok)
	assert.Equal(t, "Bearer tok-alice", h.api.DefaultHeader("Authorization"))
}

func TestLogin_DefaultsToDashboard(t *testing.T) {
	b := newBackend().withUser().
		on("GET /api/dashboard/stats", http.StatusOK, `{"total_reports": 0}`).
		on("GET /api/reports/", http.StatusOK, `[]`)
	h := newHarness(t, b, "alice\nsecret\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.NoError(t, h.app.Login(ctx))
	assert.Equal(t, router.PathDashboard, h.app.currentPath())
	assert.Contains(t, h.out.String(), "No reports yet.")
}

func TestLogin_ShowsServerDetail(t *testing.T) {
	b := newBackend().on("POST /api/auth/login", http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`)
	h := newHarness(t, b, "alice\nwrong\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	err := h.app.Login(ctx)
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "Incorrect username or password")
	assert.Equal(t, session.Anonymous, h.app.session.State())
}

func TestLogin_ServerUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	h := newHarnessAt(t, addr, "alice\nsecret\n", nil)
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.Error(t, h.app.Login(ctx))
	assert.Contains(t, h.out.String(), client.MsgUnavailable)
}

func TestLogin_ProfileLoadFailureLeavesAnonymous(t *testing.T) {
	b := newBackend().
		on("POST /api/auth/login", http.StatusOK, `{"access_token":"tok","token_type":"bearer"}`).
		on("GET /api/auth/me", http.StatusInternalServerError, `{"detail":"boom"}`)
	h := newHarness(t, b, "alice\nsecret\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.NoError(t, h.app.Login(ctx))
	assert.Equal(t, session.Anonymous, h.app.session.State())
	assert.Contains(t, h.out.String(), "profile could not be loaded")
}

func TestLogin_PrefillsLastUsername(t *testing.T) {
	b := newBackend().withUser()
	h := newHarness(t, b, "")
	ctx := context.Background()
	require.NoError(t, h.store.SaveLogin(ctx, "old", "alice"))
	require.NoError(t, h.store.Clear(ctx))
	require.NoError(t, h.app.session.Load(ctx))

	var offered string
	orig := getTextWithDefault
	getTextWithDefault = func(_ *bufio.Reader, _ string, def string, _ io.Writer) (string, error) {
		offered = def
		return def, nil
	}
	t.Cleanup(func() { getTextWithDefault = orig })

	origPw := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { getPassword = origPw })

	_ = h.app.Login(ctx)
	assert.Equal(t, "alice", offered)
	assert.True(t, h.app.isLoggedIn())
}

func TestLogin_EmptyCredentialsRejectedLocally(t *testing.T) {
	b := newBackend()
	h := newHarness(t, b, "\n\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.NoError(t, h.app.Login(ctx))
	assert.Equal(t, 0, b.called("POST /api/auth/login"))
	assert.Contains(t, h.out.String(), "required")
}

func TestRegister_SignsInAfterCreate(t *testing.T) {
	b := newBackend().withUser().
		on("POST /api/auth/register", http.StatusOK, `{"id":1,"username":"alice","email":"alice@example.org","is_active":true}`).
		on("GET /api/dashboard/stats", http.StatusOK, `{}`).
		on("GET /api/reports/", http.StatusOK, `[]`)
	h := newHarness(t, b, "alice\nalice@example.org\nsecret\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.NoError(t, h.app.Register(ctx))
	assert.True(t, h.app.isLoggedIn())
	assert.JSONEq(t, `{"username":"alice","email":"alice@example.org","password":"secret"}`, b.body("POST /api/auth/register"))
	assert.Equal(t, 1, b.called("POST /api/auth/login"))
	assert.Equal(t, router.PathDashboard, h.app.currentPath())
}

func TestRegister_JoinsValidationErrors(t *testing.T) {
	b := newBackend().on("POST /api/auth/register", http.StatusUnprocessableEntity,
		`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"loc":["body","password"],"msg":"too short"}]}`)
	h := newHarness(t, b, "alice\nnope\nx\n")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.Error(t, h.app.Register(ctx))
	assert.Contains(t, h.out.String(), "value is not a valid email address. too short")
	assert.Equal(t, 0, b.called("POST /api/auth/login"))
}

func TestRegister_UnreachableNamesBackend(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	h := newHarnessAt(t, addr, "alice\nalice@example.org\nsecret\n", nil)
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.Error(t, h.app.Register(ctx))
	assert.Contains(t, h.out.String(), "Cannot reach server. Is the backend running at "+addr+"?")
}

func TestLogout_ForgetsTokenLocally(t *testing.T) {
	b := newBackend().withUser()
	h := newHarness(t, b, "")
	ctx := context.Background()
	h.signIn(t)
	id := 3
	h.app.coePage.selectedID = &id

	require.NoError(t, h.app.Logout(ctx))

	tok, err := h.store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, h.app.isLoggedIn())
	assert.Nil(t, h.app.coePage.selectedID)
	assert.Equal(t, router.PathLogin, h.app.currentPath())
	assert.Empty(t, h.api.DefaultHeader("Authorization"))
}

func TestWhoami(t *testing.T) {
	b := newBackend().withUser()
	h := newHarness(t, b, "")
	ctx := context.Background()
	require.NoError(t, h.app.session.Load(ctx))

	require.NoError(t, h.app.Whoami(ctx))
	assert.Contains(t, h.out.String(), "Not signed in.")

	h.signIn(t)
	require.NoError(t, h.app.Whoami(ctx))
	assert.Contains(t, h.out.String(), "alice@example.org")
	assert.Contains(t, h.out.String(), "active")
	assert.NotContains(t, h.out.String(), "Session expires")
}

func TestWhoami_ShowsTokenExpiry(t *testing.T) {
	b := newBackend().withUser()
	h := newHarness(t, b, "")
	ctx := context.Background()
	h.signIn(t)

	exp := time.Date(2030, 1, 2, 3, 4, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, h.store.Set(ctx, tok))

	require.NoError(t, h.app.Whoami(ctx))
	assert.Contains(t, h.out.String(), "Session expires")
	assert.Contains(t, h.out.String(), exp.Local().Format("2006-01-02 15:04"))
}
