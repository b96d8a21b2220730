package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/devserver/auth"
	"github.com/dmitrijs2005/bimod/internal/devserver/coe"
	"github.com/dmitrijs2005/bimod/internal/devserver/config"
	"github.com/dmitrijs2005/bimod/internal/devserver/reports"
	"github.com/dmitrijs2005/bimod/internal/devserver/users"
	"github.com/dmitrijs2005/bimod/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ts  *httptest.Server
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewServer(cfg.Addr, logging.NewNop(),
		users.NewService(users.NewInMemoryRepository(), cfg),
		reports.NewService(reports.NewInMemoryRepository()),
		coe.NewService(coe.NewInMemoryRepository()),
	)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{ts: ts, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (e *testEnv) signUp(t *testing.T, username string) string {
	t.Helper()
	resp, _ := e.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: username, Email: username + "@example.org", Password: "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Username: username, Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok models.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func detailOf(t *testing.T, body []byte) string {
	t.Helper()
	var d struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &d))
	return d.Detail
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "alice")

	resp, body := e.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, models.User{ID: 1, Username: "alice", Email: "alice@example.org", IsActive: true}, me)

	resp, body = e.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Username: "alice", Email: "x@example.org", Password: "p"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already registered", detailOf(t, body))

	resp, body = e.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Username: "bob", Email: "alice@example.org", Password: "p"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", detailOf(t, body))

	resp, body = e.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Username: "alice", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", detailOf(t, body))
}

func TestRegister_ValidationErrors(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "a", "email": "not-an-email"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var d struct {
		Detail []FieldError `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &d))
	require.Len(t, d.Detail, 2)
	assert.Equal(t, []string{"body", "email"}, d.Detail[0].Loc)
	assert.Equal(t, "value is not a valid email address", d.Detail[0].Msg)
	assert.Equal(t, []string{"body", "password"}, d.Detail[1].Loc)
}

func TestAuthMiddleware(t *testing.T) {
	e := newTestEnv(t)
	secret := []byte(e.cfg.SecretKey)

	resp, body := e.do(t, http.MethodGet, "/api/reports/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", detailOf(t, body))
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp, body = e.do(t, http.MethodGet, "/api/coe/history", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", detailOf(t, body))

	expired, err := auth.GenerateToken("alice", secret, -time.Minute)
	require.NoError(t, err)
	resp, _ = e.do(t, http.MethodPost, "/api/sql/analyze", expired, models.SQLAnalyzeRequest{SQLQuery: "SELECT 1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ghost, err := auth.GenerateToken("ghost", secret, time.Minute)
	require.NoError(t, err)
	resp, body = e.do(t, http.MethodGet, "/api/auth/me", ghost, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", detailOf(t, body))
}

func TestReportsEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "alice")
	other := e.signUp(t, "bob")

	name, sql := "Sales", "SELECT a FROM t JOIN u ON 1=1"
	resp, body := e.do(t, http.MethodPost, "/api/reports/", token, models.ReportInput{Name: &name, SQLQuery: &sql})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rep models.Report
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, 1, rep.CreatedBy)
	require.NotNil(t, rep.ComplexityScore)

	resp, body = e.do(t, http.MethodPost, "/api/reports/", token, map[string]string{"description": "x"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), `"name"`)

	migrated := true
	resp, body = e.do(t, http.MethodPut, "/api/reports/1", token, models.ReportInput{Migrated: &migrated})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.True(t, rep.Migrated)

	resp, body = e.do(t, http.MethodGet, "/api/reports/1", other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Report not found", detailOf(t, body))

	resp, body = e.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st models.DashboardStats
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, 1, st.TotalReports)
	assert.Equal(t, 100.0, st.MigrationProgressPercent)

	resp, _ = e.do(t, http.MethodPost, "/api/reports/consolidate", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = e.do(t, http.MethodDelete, "/api/reports/1", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = e.do(t, http.MethodDelete, "/api/reports/1", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/reports/?limit=abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func upload(t *testing.T, e *testEnv, token, filename, content string) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/api/coe/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestCOEEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "alice")

	resp, body := upload(t, e, token, "coe.txt", "x")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CSV file required", detailOf(t, body))

	resp, body = upload(t, e, token, "coe.csv", "Name\nx\n")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No SQL column found. Expected 'Query SQL' or similar.", detailOf(t, body))

	resp, body = upload(t, e, token, "coe.csv", "Report Name,Query SQL\nA,SELECT 1\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res models.COEAnalysisResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotNil(t, res.AnalysisID)
	assert.Equal(t, 1, res.ReportCount)

	resp, body = e.do(t, http.MethodGet, "/api/coe/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hist []models.COEAnalysisRecord
	require.NoError(t, json.Unmarshal(body, &hist))
	require.Len(t, hist, 1)
	assert.Equal(t, "coe.csv", hist[0].Filename)

	resp, body = e.do(t, http.MethodGet, "/api/coe/results/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "coe.csv", res.Filename)
	assert.NotNil(t, res.CreatedAt)

	resp, _ = e.do(t, http.MethodDelete, "/api/coe/results/1", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/api/coe/results/1", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Analysis not found", detailOf(t, body))
}

func TestSQLEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUp(t, "alice")

	resp, body := e.do(t, http.MethodPost, "/api/sql/analyze", token, models.SQLAnalyzeRequest{SQLQuery: "SELECT NVL(a, 0) FROM t"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var a models.SQLAnalysis
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "LOW", a.RiskLevel)
	assert.Equal(t, []string{"Replace NVL with COALESCE or ISNULL"}, a.Recommendations)

	resp, body = e.do(t, http.MethodPost, "/api/sql/compare", token, models.SQLCompareRequest{SQL1: "select 1", SQL2: "SELECT 2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var c models.SQLComparison
	require.NoError(t, json.Unmarshal(body, &c))
	assert.True(t, c.AreIdentical)
	assert.Equal(t, "EXCELLENT", c.MigrationQuality)

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/api/sql/analyze", bytes.NewBufferString("{"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	r, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, r.StatusCode)
}

func TestCors_Preflight(t *testing.T) {
	e := newTestEnv(t)
	req, err := http.NewRequest(http.MethodOptions, e.ts.URL+"/api/reports/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)
	resp, body := e.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", detailOf(t, body))
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewServer("127.0.0.1:0", logging.NewNop(),
		users.NewService(users.NewInMemoryRepository(), cfg),
		reports.NewService(reports.NewInMemoryRepository()),
		coe.NewService(coe.NewInMemoryRepository()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
