// Package client contains the client-side transport building blocks of bimod.
//
// # Overview
//
// The package provides:
//  1. HTTPClient, a thin wrapper over net/http bound to the backend base
//     address with a fixed 30s timeout, shared default headers, and
//     request/response interceptor chains (token attachment, request ids,
//     token invalidation on 401).
//  2. ResolveBaseURL, which picks the backend address from an explicit
//     override, the serving origin, or the local default.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures (no response at all) match ErrUnavailable. Non-2xx
// responses are returned as *APIError carrying the server's "detail"; a 401
// additionally matches ErrUnauthorized. Describe turns any of these into a
// message fit for the user.
package client
