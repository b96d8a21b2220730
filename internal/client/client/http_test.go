package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
	getErr  error
}

func (m *memTokens) Get(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.getErr
}

func (m *memTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

type recorded struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, query: r.URL.Query(), header: r.Header.Clone(), body: b})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(ts.Close)
	return ts, &reqs
}

func TestTokenInterceptor_AttachesBearerWhenPresent(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	store := &memTokens{token: "tok-123"}
	c := NewSessionClient(ts.URL, "", store)

	require.NoError(t, c.GetJSON(context.Background(), "/api/auth/me", nil, nil))

	require.Len(t, *reqs, 1)
	assert.Equal(t, "Bearer tok-123", (*reqs)[0].header.Get("Authorization"))
	assert.NotEmpty(t, (*reqs)[0].header.Get("X-Request-ID"))
}

func TestTokenInterceptor_NoHeaderWithoutToken(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	store := &memTokens{}
	c := NewSessionClient(ts.URL, "", store)
	// a stale default must not leak once the store is empty
	c.SetDefaultHeader("Authorization", "Bearer stale")

	require.NoError(t, c.GetJSON(context.Background(), "/api/reports/", nil, nil))

	require.Len(t, *reqs, 1)
	_, present := (*reqs)[0].header["Authorization"]
	assert.False(t, present)
}

func TestTokenInterceptor_StoreErrorAbortsRequest(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := NewSessionClient(ts.URL, "", &memTokens{getErr: errors.New("locked")})

	err := c.GetJSON(context.Background(), "/api/reports/", nil, nil)
	require.ErrorContains(t, err, "read token")
	assert.Empty(t, *reqs)
}

func TestUnauthorizedInterceptor_ClearsTokenOnAnyEndpoint(t *testing.T) {
	for _, path := range []string{"/api/auth/me", "/api/coe/history", "/api/sql/analyze"} {
		t.Run(path, func(t *testing.T) {
			ts, _ := newRecordingServer(t, http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
			store := &memTokens{token: "expired"}
			c := NewSessionClient(ts.URL, "", store)

			err := c.GetJSON(context.Background(), path, nil, nil)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnauthorized))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Not authenticated", apiErr.Detail)

			tok, _ := store.Get(context.Background())
			assert.Empty(t, tok)
			assert.Equal(t, 1, store.cleared)
		})
	}
}

func TestUnauthorizedInterceptor_IgnoresOtherStatuses(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusForbidden, `{"detail":"nope"}`)
	store := &memTokens{token: "tok"}
	c := NewSessionClient(ts.URL, "", store)

	err := c.GetJSON(context.Background(), "/api/reports/", nil, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 0, store.cleared)
}

func TestHTTPClient_NetworkErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	c := NewSessionClient(addr, "", &memTokens{})
	err := c.GetJSON(context.Background(), "/api/dashboard/stats", nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "no server response means no APIError")
	assert.Equal(t, MsgUnavailable, Describe(err, "Login failed"))
}

func TestHTTPClient_FixedTimeout(t *testing.T) {
	c := NewHTTPClient("http://example.test", "")
	assert.Equal(t, 30*time.Second, c.Timeout())
}

func TestHTTPClient_PostJSONAndDecode(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusOK, `{"access_token":"t","token_type":"bearer"}`)
	c := NewHTTPClient(ts.URL, "")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.PostJSON(context.Background(), "/api/auth/login", map[string]string{"username": "alice", "password": "secret"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t", out.AccessToken)

	got := (*reqs)[0]
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, map[string]string{"username": "alice", "password": "secret"}, body)
}

func TestHTTPClient_QueryAndDelete(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusNoContent, ``)
	c := NewHTTPClient(ts.URL+"/", "")

	require.NoError(t, c.GetJSON(context.Background(), "/api/coe/history", url.Values{"skip": {"0"}, "limit": {"50"}}, nil))
	require.NoError(t, c.Delete(context.Background(), "/api/coe/results/7"))
	require.NoError(t, c.PutJSON(context.Background(), "/api/reports/2", map[string]bool{"migrated": true}, nil))

	require.Len(t, *reqs, 3)
	assert.Equal(t, "/api/coe/history", (*reqs)[0].path)
	assert.Equal(t, "50", (*reqs)[0].query.Get("limit"))
	assert.Equal(t, http.MethodDelete, (*reqs)[1].method)
	assert.Equal(t, "/api/coe/results/7", (*reqs)[1].path)
	assert.Equal(t, http.MethodPut, (*reqs)[2].method)
	assert.JSONEq(t, `{"migrated": true}`, string((*reqs)[2].body))
}

func TestHTTPClient_PostMultipart(t *testing.T) {
	var gotName, gotContent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(f)
		gotName, gotContent = hdr.Filename, string(b)
		_, _ = io.WriteString(w, `{"analysis_id": 3}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	var out struct {
		AnalysisID int `json:"analysis_id"`
	}
	err := c.PostMultipart(context.Background(), "/api/coe/upload", "file", "coe.csv", strings.NewReader("Report Name,Query SQL\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "coe.csv", gotName)
	assert.Equal(t, "Report Name,Query SQL\n", gotContent)
	assert.Equal(t, 3, out.AnalysisID)
}

func TestHTTPClient_DefaultHeaders(t *testing.T) {
	ts, reqs := newRecordingServer(t, http.StatusOK, `{}`)
	c := NewHTTPClient(ts.URL, "")

	c.SetDefaultHeader("Authorization", "Bearer x")
	require.NoError(t, c.GetJSON(context.Background(), "/a", nil, nil))
	c.DeleteDefaultHeader("Authorization")
	require.NoError(t, c.GetJSON(context.Background(), "/b", nil, nil))

	assert.Equal(t, "Bearer x", (*reqs)[0].header.Get("Authorization"))
	assert.Empty(t, (*reqs)[1].header.Get("Authorization"))
	assert.Empty(t, c.DefaultHeader("Authorization"))
}

func TestHTTPClient_SameOriginWhenBaseEmpty(t *testing.T) {
	c := NewHTTPClient("", "https://bimod.example.com")
	u, err := c.URL("/api/auth/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://bimod.example.com/api/auth/me", u)

	_, err = NewHTTPClient("", "").URL("/x", nil)
	require.ErrorIs(t, err, ErrNoBaseURL)
}

func TestHTTPClient_ResponseInterceptorSeesEveryResponse(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusInternalServerError, `oops`)
	c := NewHTTPClient(ts.URL, "")
	var seen []int
	c.UseResponse(func(resp *http.Response) error {
		seen = append(seen, resp.StatusCode)
		return nil
	})

	err := c.GetJSON(context.Background(), "/x", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, []int{http.StatusInternalServerError}, seen)
}
