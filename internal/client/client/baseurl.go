package client

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is used for local development when nothing else applies.
const DefaultBaseURL = "http://localhost:5011"

// ResolveBaseURL picks the backend address. An explicit override always
// wins. Otherwise, when the client is served from a non-local origin the
// base is empty, meaning requests go to that same origin. Anything else gets
// DefaultBaseURL.
func ResolveBaseURL(override, origin string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if host := originHost(origin); host != "" && !isLocalHost(host) {
		return ""
	}
	return DefaultBaseURL
}

func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	if !strings.Contains(origin, "://") {
		origin = "http://" + origin
	}
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1"
}

func normalizeOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin != "" && !strings.Contains(origin, "://") {
		origin = "https://" + origin
	}
	return origin
}
