package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/router"
	"github.com/dmitrijs2005/bimod/internal/client/tokenstore"
	"github.com/dmitrijs2005/bimod/internal/client/ui"
	"github.com/dmitrijs2005/bimod/internal/common"
)

// Prompt readers are indirections used
// to facilitate testing.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
	getMultiline       = GetMultiline
)

// Login prompts for credentials and signs in. On success the user lands on
// the page they were sent away from, or the dashboard.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return a.Navigate(ctx, router.PathDashboard)
	}

	last, err := a.lastUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "read last username", "error", err)
	}
	username, err := getTextWithDefault(a.reader, "Username", last, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		a.println(ui.Error(a.styles, "Username and password are required"))
		return nil
	}

	a.println(a.styles.Muted.Render("Signing in..."))
	if err := a.session.Login(ctx, username, string(password)); err != nil {
		a.println(ui.Error(a.styles, client.Describe(err, "Login failed")))
		return err
	}
	return a.afterSignIn(ctx)
}

// Register prompts for a new account, creates it and signs in.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		return a.Navigate(ctx, router.PathDashboard)
	}
	a.path = router.PathRegister

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || email == "" || len(password) == 0 {
		a.println(ui.Error(a.styles, "Username, email and password are required"))
		return nil
	}

	a.println(a.styles.Muted.Render("Creating account..."))
	if err := a.session.Register(ctx, username, email, string(password)); err != nil {
		a.println(ui.Error(a.styles, a.describeRegisterError(err)))
		return err
	}
	return a.afterSignIn(ctx)
}

func (a *App) describeRegisterError(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		base := a.config.BaseURL()
		if base == "" {
			base = a.config.Origin
		}
		return fmt.Sprintf("Cannot reach server. Is the backend running at %s?", base)
	}
	return client.Describe(err, "Registration failed")
}

func (a *App) afterSignIn(ctx context.Context) error {
	if !a.isLoggedIn() {
		// token accepted but the profile could not be loaded
		a.println(ui.Error(a.styles, "Signed in, but your profile could not be loaded. Please try again."))
		return nil
	}
	a.resetPages()
	a.println(ui.Notice(a.styles, "Welcome, "+a.session.User().Username+"!"))
	target := router.AfterLogin(a.from)
	a.from = ""
	return a.Navigate(ctx, target)
}

// Logout forgets the session locally and shows the login page.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.resetPages()
	a.from = ""
	if err != nil {
		a.log.Warn(ctx, "logout", "error", err)
	}
	a.println("Signed out.")
	a.path = router.PathLogin
	return a.render(ctx)
}

// Header is the status line: the signed-in user and connectivity.
func (a *App) Header() string {
	var parts []string
	if u := a.session.User(); u != nil {
		parts = append(parts, u.Username)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Whoami prints the current account.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("Not signed in.")
		return nil
	}
	status := "inactive"
	if u.IsActive {
		status = "active"
	}
	rows := [][2]string{
		{"Username", u.Username},
		{"Email", u.Email},
		{"Status", status},
	}
	if tok, err := a.token(ctx); err == nil && tok != "" {
		if exp, ok := tokenstore.Expiry(tok); ok {
			rows = append(rows, [2]string{"Session expires", exp.Local().Format("2006-01-02 15:04")})
		}
	}
	a.print(ui.KeyValues(a.styles, rows...))
	return nil
}

func (a *App) print(s string) {
	fmt.Fprint(a.out, s)
}
