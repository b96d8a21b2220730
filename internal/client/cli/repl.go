package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/router"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentPath() string

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Navigate(ctx context.Context, path string) error

	ReportList(ctx context.Context) error
	ReportAdd(ctx context.Context) error
	ReportShow(ctx context.Context, arg string) error
	ReportMigrated(ctx context.Context, arg string) error
	ReportDelete(ctx context.Context, arg string) error

	COEUpload(ctx context.Context, path string) error
	COEHistory(ctx context.Context) error
	COEShow(ctx context.Context, arg string) error
	COEDelete(ctx context.Context, arg string) error

	SQLAnalyze(ctx context.Context) error
	SQLCompare(ctx context.Context) error

	Consolidate(ctx context.Context) error
}

// runREPL reads commands from in until EOF, "exit" or "quit".
//
// The first token of a line is the command; the rest is its argument.
// Global commands work on every page:
//
//	help                      - list commands for the current page
//	login | register | logout - account handling
//	whoami                    - show the signed-in user
//	go <page> | <page>        - open dashboard, coe, sql or consolidation
//	refresh                   - render the current page again
//	exit | quit               - leave the program
//
// Other commands belong to the page that is open:
//
//	/dashboard      reports, report add|show <id>|migrated <id>|delete <id>
//	/coe            upload [file], history, show <id>, delete <id>
//	/sql            analyze, compare
//	/consolidation  run
//
// Errors returned by handlers are ignored here; handlers report their own
// errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(prompt(statusFn(), a.currentPath()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}

		if done := dispatch(ctx, a, cmd, arg); done {
			return
		}
	}
}

func prompt(status, path string) string {
	if status != "" {
		return fmt.Sprintf("bimod %s %s> ", status, path)
	}
	return fmt.Sprintf("bimod %s> ", path)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// pageAliases maps the short page names accepted by "go".
var pageAliases = map[string]string{
	"dashboard":     router.PathDashboard,
	"coe":           router.PathCOE,
	"sql":           router.PathSQL,
	"consolidation": router.PathConsolidation,
}

// dispatch runs one command and reports whether the REPL should stop.
func dispatch(ctx context.Context, a execIface, cmd, arg string) bool {
	switch cmd {
	case "help":
		printlnFn(helpText(a))
	case "exit", "quit":
		printlnFn("Bye!")
		return true
	case "login":
		_ = a.Login(ctx)
	case "register":
		_ = a.Register(ctx)
	case "logout":
		_ = a.Logout(ctx)
	case "whoami":
		_ = a.Whoami(ctx)
	case "refresh":
		_ = a.Navigate(ctx, a.currentPath())
	case "go":
		_ = a.Navigate(ctx, arg)
	default:
		if path, ok := pageAliases[cmd]; ok {
			_ = a.Navigate(ctx, path)
			return false
		}
		if !dispatchPage(ctx, a, cmd, arg) {
			printlnFn("Unknown command:", cmd)
		}
	}
	return false
}

// dispatchPage runs a command of the open page and reports whether cmd was
// one.
func dispatchPage(ctx context.Context, a execIface, cmd, arg string) bool {
	switch a.currentPath() {
	case router.PathDashboard:
		switch cmd {
		case "reports":
			_ = a.ReportList(ctx)
		case "report":
			return dispatchReport(ctx, a, arg)
		default:
			return false
		}
	case router.PathCOE:
		switch cmd {
		case "upload":
			_ = a.COEUpload(ctx, arg)
		case "history":
			_ = a.COEHistory(ctx)
		case "show":
			_ = a.COEShow(ctx, arg)
		case "delete":
			_ = a.COEDelete(ctx, arg)
		default:
			return false
		}
	case router.PathSQL:
		switch cmd {
		case "analyze":
			_ = a.SQLAnalyze(ctx)
		case "compare":
			_ = a.SQLCompare(ctx)
		default:
			return false
		}
	case router.PathConsolidation:
		if cmd != "run" {
			return false
		}
		_ = a.Consolidate(ctx)
	default:
		return false
	}
	return true
}

func dispatchReport(ctx context.Context, a execIface, arg string) bool {
	sub, rest, _ := strings.Cut(arg, " ")
	switch sub {
	case "add":
		_ = a.ReportAdd(ctx)
	case "show":
		_ = a.ReportShow(ctx, rest)
	case "migrated":
		_ = a.ReportMigrated(ctx, rest)
	case "delete":
		_ = a.ReportDelete(ctx, rest)
	default:
		printlnFn("Usage: report add | show <id> | migrated <id> | delete <id>")
	}
	return true
}

func helpText(a execIface) string {
	if !a.isLoggedIn() {
		return "Available commands: login, register, exit"
	}
	global := "go <page>, dashboard, coe, sql, consolidation, refresh, whoami, logout, exit"
	var page string
	switch a.currentPath() {
	case router.PathDashboard:
		page = "reports, report add|show|migrated|delete"
	case router.PathCOE:
		page = "upload [file], history, show <id>, delete <id>"
	case router.PathSQL:
		page = "analyze, compare"
	case router.PathConsolidation:
		page = "run"
	}
	if page == "" {
		return "Available commands: " + global
	}
	return "Page commands: " + page + "\nAvailable commands: " + global
}
