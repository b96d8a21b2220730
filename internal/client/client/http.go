package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

// DefaultTimeout bounds every call made through HTTPClient.
const DefaultTimeout = 30 * time.Second

// TokenStore is the persisted session token as seen by the transport.
// Get returns "" when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// HTTPClient talks JSON to the backend. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	origin  string
	http    *http.Client
	log     logging.Logger

	mu       sync.RWMutex
	headers  http.Header
	reqChain []RequestInterceptor
	resChain []ResponseInterceptor
}

type Option func(*HTTPClient)

// WithTransport replaces the underlying round tripper; the timeout stays.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for baseURL. An empty baseURL means
// same-origin: paths are resolved against origin instead.
func NewHTTPClient(baseURL, origin string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		origin:  strings.TrimRight(normalizeOrigin(origin), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.NewNop(),
		headers: http.Header{},
	}
	c.headers.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSessionClient is NewHTTPClient with the standard interceptors for
// store: bearer token attachment, request ids, and token drop on 401.
func NewSessionClient(baseURL, origin string, store TokenStore, opts ...Option) *HTTPClient {
	c := NewHTTPClient(baseURL, origin, opts...)
	c.UseRequest(TokenInterceptor(store))
	c.UseRequest(RequestIDInterceptor())
	c.UseResponse(UnauthorizedInterceptor(store))
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Timeout() time.Duration { return c.http.Timeout }

func (c *HTTPClient) UseRequest(i RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqChain = append(c.reqChain, i)
}

func (c *HTTPClient) UseResponse(i ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resChain = append(c.resChain, i)
}

// SetDefaultHeader sets a header sent with every subsequent request.
func (c *HTTPClient) SetDefaultHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Set(key, value)
}

func (c *HTTPClient) DeleteDefaultHeader(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers.Del(key)
}

func (c *HTTPClient) DefaultHeader(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get(key)
}

// URL resolves path (and optional query) against the base address.
func (c *HTTPClient) URL(path string, query url.Values) (string, error) {
	base := c.baseURL
	if base == "" {
		base = c.origin
	}
	if base == "" {
		return "", ErrNoBaseURL
	}
	u := base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u, nil
}

// GetJSON issues GET path?query and decodes the response into out.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// PostJSON encodes in (nil sends no body) and decodes the response into out.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, http.MethodPost, path, nil, body, "", out)
}

// PutJSON is PostJSON with the PUT method.
func (c *HTTPClient) PutJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(b), "", out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// PostMultipart uploads r as the form file field and decodes the response.
func (c *HTTPClient) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, mw.FormDataContentType(), out)
}

// Ping probes the backend liveness endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, "", nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target, err := c.URL(path, query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	c.mu.RLock()
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	reqChain := c.reqChain
	resChain := c.resChain
	c.mu.RUnlock()

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if body == nil {
		req.Header.Del("Content-Type")
	}
	for _, intercept := range reqChain {
		if err := intercept(req); err != nil {
			return err
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", req.Header.Get(common.RequestIDHeaderName),
	)

	for _, intercept := range resChain {
		if err := intercept(resp); err != nil {
			return err
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseAPIError(resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
