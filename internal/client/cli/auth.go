package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ozo/internal/client/guard"
	"github.com/dmitrijs2005/ozo/internal/client/models"
	"github.com/dmitrijs2005/ozo/internal/client/session"
	"github.com/dmitrijs2005/ozo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgBusy           = "A request is already in progress, please wait."
	msgLoginRequired  = "You need to log in to see this page."
)

// Login prompts for credentials and logs in. On success the dashboard is
// shown. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.ctrl.Busy() {
		printlnFn(msgBusy)
		return session.ErrBusy
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	creds, err := models.NewCredentials(email, password)
	common.WipeByteArray(password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Logging in...")
	if err := a.ctrl.Login(ctx, creds); err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			printlnFn(msgBusy)
		case errors.Is(err, session.ErrLoginCanceled):
			printlnFn("Login canceled")
		default:
			printlnFn(a.ctrl.Snapshot().Message)
		}
		return err
	}
	a.expired.Store(false)

	printlnFn("Login successful")
	return a.Open(ctx, guard.Dashboard, nil)
}

// Signup prompts for a username, email and password and creates an
// account. It does not log in.
func (a *App) Signup(ctx context.Context) error {
	if a.ctrl.Busy() {
		printlnFn(msgBusy)
		return session.ErrBusy
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	email = common.NormalizeIdentifier(email)
	if email == "" {
		printlnFn(common.ErrEmptyIdentifier.Error())
		return common.ErrEmptyIdentifier
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	if len(password) == 0 {
		printlnFn(common.ErrEmptySecret.Error())
		return common.ErrEmptySecret
	}

	user, err := a.ctrl.Signup(ctx, models.SignupData{Username: username, Email: email, Password: password})
	if err != nil {
		if errors.Is(err, session.ErrBusy) {
			printlnFn(msgBusy)
		} else {
			printlnFn(a.ctrl.Snapshot().Message)
		}
		return err
	}

	printlnFn("Account created for " + user.Email + ". You can now log in.")
	return nil
}

// Logout ends the session. The local token is always removed.
func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	a.expired.Store(false)
	printlnFn("Logged out")
	return nil
}

// redirect is the guard's redirect hook.
func (a *App) redirect(ctx context.Context, target guard.Route) error {
	printlnFn(msgLoginRequired)
	return a.Open(ctx, target, nil)
}
