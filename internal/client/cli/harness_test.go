package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/config"
	"github.com/dmitrijs2005/bimod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/session"
	"github.com/dmitrijs2005/bimod/internal/client/tokenstore"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// backend is a scripted API: every route answers with a fixed status and
// body, and every request is recorded.
type backend struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []string
	bodies map[string]string
}

type reply struct {
	status int
	body   string
}

func newBackend() *backend {
	return &backend{routes: map[string]reply{}, bodies: map[string]string{}}
}

// on registers a reply for "METHOD /path".
func (b *backend) on(route string, status int, body string) *backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = reply{status: status, body: body}
	return b
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	payload, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.calls = append(b.calls, key)
	b.bodies[key] = string(payload)
	rep, ok := b.routes[key]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (b *backend) called(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == route {
			n++
		}
	}
	return n
}

func (b *backend) body(route string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[route]
}

// withUser makes the backend accept the standard test user.
func (b *backend) withUser() *backend {
	return b.
		on("POST /api/auth/login", http.StatusOK, `{"access_token":"tok-alice","token_type":"bearer"}`).
		on("GET /api/auth/me", http.StatusOK, `{"id":1,"username":"alice","email":"alice@example.org","is_active":true}`).
		on("GET /health", http.StatusOK, `{"status":"ok"}`)
}

type harness struct {
	app    *App
	out    *bytes.Buffer
	store  *tokenstore.Store
	api    *client.HTTPClient
	server *httptest.Server
}

// newHarness wires an App to b over real HTTP with the given stdin.
func newHarness(t *testing.T, b *backend, input string) *harness {
	t.Helper()
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)
	return newHarnessAt(t, ts.URL, input, ts)
}

func newHarnessAt(t *testing.T, baseURL, input string, ts *httptest.Server) *harness {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIURL = baseURL

	store := tokenstore.New(metadata.NewInMemoryRepository())
	api := client.NewSessionClient(cfg.BaseURL(), cfg.Origin, store)
	auth := services.NewAuthService(api)
	sess := session.New(auth, store, api, nil)

	out := &bytes.Buffer{}
	styles := ui.PlainStyles()
	app := NewApp(Deps{
		Config:       cfg,
		Session:      sess,
		Auth:         auth,
		Dashboard:    services.NewDashboardService(api),
		Reports:      services.NewReportService(api),
		COE:          services.NewCOEService(api),
		SQL:          services.NewSQLService(api),
		LastUsername: store.LastUsername,
		Token:        store.Get,
		In:           strings.NewReader(input),
		Out:          out,
		Styles:       &styles,
	})
	return &harness{app: app, out: out, store: store, api: api, server: ts}
}

// signIn logs the harness user in through the real flow.
func (h *harness) signIn(t *testing.T) {
	t.Helper()
	if err := h.app.session.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	h.out.Reset()
}
