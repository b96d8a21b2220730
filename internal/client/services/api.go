// Package services contains the domain service modules of the bimod client:
// thin typed wrappers over the API endpoints. They hold no state beyond the
// transport and surface transport and API errors unchanged.
package services

import (
	"context"
	"io"
	"net/url"
)

// API is the transport the services are written against;
// *client.HTTPClient satisfies it.
type API interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
	PutJSON(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
	PostMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error
	Ping(ctx context.Context) error
}
