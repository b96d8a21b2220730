package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bimod/internal/common"
	"github.com/google/uuid"
)

// RequestInterceptor runs on every outbound request before it is sent.
// Returning an error aborts the request.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor runs on every response, successful or not, before
// the body is decoded. Returning an error replaces the call's result.
type ResponseInterceptor func(resp *http.Response) error

// TokenInterceptor attaches "Authorization: Bearer <token>" when the store
// holds a token and strips the header otherwise, so a stale default header
// never outlives the stored token.
func TokenInterceptor(store TokenStore) RequestInterceptor {
	return func(req *http.Request) error {
		token, err := store.Get(req.Context())
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token == "" {
			req.Header.Del(common.AuthorizationHeaderName)
			return nil
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		return nil
	}
}

// RequestIDInterceptor stamps a fresh X-Request-ID unless one is set.
func RequestIDInterceptor() RequestInterceptor {
	return func(req *http.Request) error {
		if req.Header.Get(common.RequestIDHeaderName) == "" {
			req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
		}
		return nil
	}
}

// UnauthorizedInterceptor drops the stored token whenever the server answers
// 401. It does not navigate anywhere; the response is passed on unchanged.
func UnauthorizedInterceptor(store TokenStore) ResponseInterceptor {
	return func(resp *http.Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}
		if err := store.Clear(resp.Request.Context()); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		return nil
	}
}
