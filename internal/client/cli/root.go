package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/router"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
)

func (a *App) getStatus() string {
	return a.Header()
}

// Root restores the session, starts the connectivity watcher and runs the
// command loop until the user leaves or ctx is cancelled.
func (a *App) Root(ctx context.Context) error {
	a.println(a.banner())

	if err := a.session.Load(ctx); err != nil {
		a.log.Error(ctx, "restore session", "error", err)
		return err
	}
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	_ = a.Navigate(ctx, a.path)
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// banner is the header line: product name and the menu.
func (a *App) banner() string {
	names := make([]string, 0, 4)
	for _, r := range router.NavRoutes() {
		names = append(names, strings.TrimPrefix(r.Path, "/"))
	}
	return ui.Title(a.styles, "BI Modernization Platform") + "\n" +
		a.styles.Muted.Render("Pages: "+strings.Join(names, " | ")+"  (type 'help' for commands)")
}
