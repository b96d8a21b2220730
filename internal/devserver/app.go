// Package devserver wires and runs the development backend: an in-memory
// implementation of the bimod HTTP API for local use and tests.
package devserver

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bimod/internal/devserver/api"
	"github.com/dmitrijs2005/bimod/internal/devserver/coe"
	"github.com/dmitrijs2005/bimod/internal/devserver/config"
	"github.com/dmitrijs2005/bimod/internal/devserver/reports"
	"github.com/dmitrijs2005/bimod/internal/devserver/users"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *api.Server
}

func NewApp(c *config.Config, l logging.Logger) *App {
	us := users.NewService(users.NewInMemoryRepository(), c)
	rs := reports.NewService(reports.NewInMemoryRepository())
	cs := coe.NewService(coe.NewInMemoryRepository())

	return &App{
		config: c,
		logger: l,
		server: api.NewServer(c.Addr, l, us, rs, cs),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	if app.config.SecretKey == "dev-secret-change-me" {
		app.logger.Warn(ctx, "using the default signing secret")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
