// Package common contains shared constants and sentinel errors used across
// bimod components.
package common

const (
	// TokenStorageKey is the metadata key the session token is persisted under.
	TokenStorageKey = "token"

	// UsernameStorageKey remembers the last signed-in username for the login prompt.
	UsernameStorageKey = "username"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token value in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is stamped on every outbound request for correlation.
	RequestIDHeaderName = "X-Request-ID"
)
