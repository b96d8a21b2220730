package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bimod/internal/client/config"
	"github.com/dmitrijs2005/bimod/internal/client/models"
	"github.com/dmitrijs2005/bimod/internal/client/router"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/session"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Deps is everything App needs from the outside.
type Deps struct {
	Config       *config.Config
	Session      *session.Session
	Auth         services.AuthService
	Dashboard    services.DashboardService
	Reports      services.ReportService
	COE          services.COEService
	SQL          services.SQLService
	LastUsername func(ctx context.Context) (string, error)
	// Token reads the stored access token; whoami shows its expiry.
	Token  func(ctx context.Context) (string, error)
	Log    logging.Logger
	In     io.Reader
	Out    io.Writer
	Styles *ui.Styles
}

type App struct {
	config    *config.Config
	session   *session.Session
	auth      services.AuthService
	dashboard services.DashboardService
	reports   services.ReportService
	coe       services.COEService
	sql       services.SQLService
	lastUser  func(ctx context.Context) (string, error)
	token     func(ctx context.Context) (string, error)
	log       logging.Logger
	styles    ui.Styles
	reader    *bufio.Reader
	out       io.Writer

	mu   sync.RWMutex
	mode Mode

	// page state
	path    string
	from    string
	coePage coeState
	sqlPage sqlState
}

type coeState struct {
	result     *models.COEAnalysisResult
	selectedID *int
	history    []models.COEAnalysisRecord
}

type sqlState struct {
	analysis   *models.SQLAnalysis
	comparison *models.SQLComparison
}

func NewApp(d Deps) *App {
	a := &App{
		config:    d.Config,
		session:   d.Session,
		auth:      d.Auth,
		dashboard: d.Dashboard,
		reports:   d.Reports,
		coe:       d.COE,
		sql:       d.SQL,
		lastUser:  d.LastUsername,
		token:     d.Token,
		log:       d.Log,
		out:       d.Out,
		path:      router.PathDashboard,
	}
	if a.config == nil {
		a.config = &config.Config{}
		a.config.LoadDefaults()
	}
	if a.log == nil {
		a.log = logging.NewNop()
	}
	in := d.In
	if in == nil {
		in = os.Stdin
	}
	a.reader = bufio.NewReader(in)
	if a.out == nil {
		a.out = os.Stdout
	}
	if d.Styles != nil {
		a.styles = *d.Styles
	} else {
		a.styles = ui.DetectStyles()
	}
	if a.lastUser == nil {
		a.lastUser = func(context.Context) (string, error) { return "", nil }
	}
	if a.token == nil {
		a.token = func(context.Context) (string, error) { return "", nil }
	}
	return a
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) currentPath() string {
	return a.path
}

// checkOnline pings the server once and records the resulting mode.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
