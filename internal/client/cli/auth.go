package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
	"github.com/dmitrijs2005/teacherlms/internal/client/session"
	"github.com/dmitrijs2005/teacherlms/internal/client/views"
	"github.com/dmitrijs2005/teacherlms/internal/common"
)

// getSimpleText, getPassword and getConfirm are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getConfirm    = Confirm
)

// Login prompts for an email and a password, stores the returned token and
// moves to the dashboard. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, "", false)
}

// login is Login with an email given up front and, for scripts, the password
// read as a plain line from the input instead of the terminal.
func (a *App) login(ctx context.Context, email string, passwordFromInput bool) error {
	a.category = nil
	a.location = router.LoginPath
	renderLogin(a.out)

	var err error
	if email == "" {
		email, err = getSimpleText(a.reader, "Email", a.out)
		if err != nil {
			return err
		}
	}

	var password []byte
	if passwordFromInput || !passwordFromTerminal() {
		var line string
		line, err = getSimpleText(a.reader, "Password", a.out)
		password = []byte(line)
	} else {
		password, err = getPassword(a.out)
	}
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, loginMessage(err))
		return err
	}

	if user.Email == "" {
		user.Email = email
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	return a.Navigate(ctx, router.DashboardPath)
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return views.MsgNetworkError
	case errors.Is(err, client.ErrUnauthorized):
		return "Invalid email or password"
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return "Login failed"
}

// Logout signs out on the server when possible and always forgets the local
// session.
func (a *App) Logout(ctx context.Context) error {
	location := a.sidebar.SignOut(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return a.Navigate(ctx, location)
}

// Status prints who is signed in and when the token expires. It does not
// contact the server.
func (a *App) Status(ctx context.Context) error {
	sess, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	exp, ok := session.TokenExpiry(sess.Token)
	renderStatus(a.out, sess, exp, ok, a.location)
	return nil
}
