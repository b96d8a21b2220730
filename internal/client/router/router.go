// Package router maps page paths to pages and decides, from the session
// state, whether a page may render.
package router

import (
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/session"
)

const (
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathDashboard     = "/dashboard"
	PathCOE           = "/coe"
	PathSQL           = "/sql"
	PathConsolidation = "/consolidation"
)

// Route describes one page.
type Route struct {
	Path      string
	Title     string
	Protected bool
}

var routes = []Route{
	{Path: PathLogin, Title: "Sign in"},
	{Path: PathRegister, Title: "Create account"},
	{Path: PathDashboard, Title: "Dashboard", Protected: true},
	{Path: PathCOE, Title: "COE Processor", Protected: true},
	{Path: PathSQL, Title: "SQL Analysis", Protected: true},
	{Path: PathConsolidation, Title: "Report Consolidation", Protected: true},
}

// Routes lists every page in menu order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// NavRoutes lists the protected pages shown in the header menu.
func NavRoutes() []Route {
	var out []Route
	for _, r := range routes {
		if r.Protected {
			out = append(out, r)
		}
	}
	return out
}

// Lookup returns the route for path.
func Lookup(path string) (Route, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Normalize cleans user input into a route path. Empty, "/" and unknown
// paths become the dashboard; "coe" and "/coe/" both mean "/coe".
func Normalize(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	p = "/" + strings.Trim(p, "/")
	if _, ok := Lookup(p); !ok {
		return PathDashboard
	}
	return p
}

// Outcome is what the guard decided.
type Outcome int

const (
	Loading Outcome = iota
	Render
	Redirect
)

// Decision is the guard's answer for one navigation. For a redirect, To
// is the target and From the path that was asked for.
type Decision struct {
	Outcome Outcome
	Path    string
	To      string
	From    string
}

// Guard decides what happens when path is requested in state. While the
// session is loading nothing renders. Protected pages need an
// authenticated session; the login and register pages send an
// authenticated user to the dashboard.
func Guard(state session.State, path string) Decision {
	p := Normalize(path)
	if state == session.Unknown {
		return Decision{Outcome: Loading, Path: p}
	}

	r, _ := Lookup(p)
	authed := state == session.Authenticated
	switch {
	case r.Protected && !authed:
		return Decision{Outcome: Redirect, Path: p, To: PathLogin, From: p}
	case !r.Protected && authed:
		return Decision{Outcome: Redirect, Path: p, To: PathDashboard}
	default:
		return Decision{Outcome: Render, Path: p}
	}
}

// AfterLogin is where a successful sign-in lands: the page that was asked
// for before the redirect, or the dashboard.
func AfterLogin(from string) string {
	if from == "" {
		return PathDashboard
	}
	p := Normalize(from)
	if r, _ := Lookup(p); !r.Protected {
		return PathDashboard
	}
	return p
}
