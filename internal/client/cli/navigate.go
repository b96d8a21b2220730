package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/router"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

// Navigate asks the guard about path and either renders the page or
// follows the redirect. A redirect to the login page remembers where the
// user was headed.
func (a *App) Navigate(ctx context.Context, path string) error {
	d := router.Guard(a.session.State(), path)
	switch d.Outcome {
	case router.Loading:
		a.println(a.styles.Muted.Render("Loading..."))
		return nil
	case router.Redirect:
		if d.To == router.PathLogin {
			a.from = d.From
			a.path = router.PathLogin
			a.println(a.styles.Warning.Render("Please sign in to continue."))
			return a.render(ctx)
		}
		a.path = d.To
		return a.render(ctx)
	default:
		a.path = d.Path
		return a.render(ctx)
	}
}

// render shows the page at a.path.
func (a *App) render(ctx context.Context) error {
	if r, ok := router.Lookup(a.path); ok {
		a.println(ui.Title(a.styles, "== "+r.Title+" =="))
	}
	switch a.path {
	case router.PathLogin:
		a.println("Type 'login' to sign in or 'register' to create an account.")
		return nil
	case router.PathRegister:
		a.println("Type 'register' to create an account or 'login' if you already have one.")
		return nil
	case router.PathDashboard:
		return a.Dashboard(ctx)
	case router.PathCOE:
		return a.COEPage(ctx)
	case router.PathSQL:
		a.SQLPage(ctx)
		return nil
	case router.PathConsolidation:
		a.ConsolidationPage(ctx)
		return nil
	}
	return nil
}

// fail reports err to the user. A 401 ends the session; the guard then
// sends the user to the login page with the current page as return path.
func (a *App) fail(ctx context.Context, err error, fallback string) error {
	if a.expired(ctx, err) {
		return err
	}
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ctx, ModeOffline)
	}
	a.println(ui.Error(a.styles, client.Describe(err, fallback)))
	return err
}

// expired reports whether err ended the session, and if so re-runs the
// guard for the current page.
func (a *App) expired(ctx context.Context, err error) bool {
	if !a.session.HandleUnauthorized(ctx, err) {
		return false
	}
	a.println(ui.Error(a.styles, "Your session has expired. Please sign in again."))
	a.resetPages()
	_ = a.Navigate(ctx, a.path)
	return true
}

// resetPages forgets per-page state; used when the user changes.
func (a *App) resetPages() {
	a.coePage = coeState{}
	a.sqlPage = sqlState{}
}
