package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/ozo/internal/client/gateway"
	"github.com/dmitrijs2005/ozo/internal/client/guard"
	"github.com/dmitrijs2005/ozo/internal/client/models"
)

const itemsPageSize = 10

// Open shows route through the guard. args are view arguments, e.g. the
// page number for items.
func (a *App) Open(ctx context.Context, route guard.Route, args []string) error {
	_, err := a.guard.Navigate(ctx, route, a.view(route, args))
	return err
}

func (a *App) view(route guard.Route, args []string) guard.View {
	switch route {
	case guard.Login:
		return a.Login
	case guard.Signup:
		return a.Signup
	case guard.Dashboard:
		return a.Dashboard
	case guard.Profile:
		return a.Profile
	case guard.Items:
		return func(ctx context.Context) error { return a.Items(ctx, args) }
	default:
		return a.Home
	}
}

// showChecking is the guard's loading hook.
func (a *App) showChecking() {
	printlnFn("Checking session...")
}

func (a *App) Home(ctx context.Context) error {
	printlnFn("Welcome to OZO")
	if a.isLoggedIn(ctx) {
		printlnFn("Open your dashboard with 'dashboard'.")
	} else {
		printlnFn("Log in with 'login' or create an account with 'signup'.")
	}
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	printlnFn("Welcome to the OZO Dashboard!")
	if u := a.currentUser(ctx); u != nil {
		printlnFn("Signed in as " + u.DisplayName())
	}
	return nil
}

// Profile shows the current user. The profile is reloaded from the server
// when it has not been fetched yet.
func (a *App) Profile(ctx context.Context) error {
	u := a.currentUser(ctx)
	if u == nil {
		printlnFn("Profile is not available right now.")
	} else {
		printlnFn("ID:        " + strconv.FormatInt(u.ID, 10))
		printlnFn("Username:  " + u.Username)
		printlnFn("Email:     " + u.Email)
		if u.FullName != "" {
			printlnFn("Full name: " + u.FullName)
		}
	}

	if info, ok := a.acc.Subject(ctx); ok && !info.ExpiresAt.IsZero() {
		printlnFn("Session expires: " + info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) currentUser(ctx context.Context) *models.User {
	if u := a.ctrl.Snapshot().User; u != nil {
		return u
	}
	a.ctrl.Restore(ctx)
	return a.ctrl.Snapshot().User
}

// Items lists one page of items. The optional argument is a 1-based page
// number.
func (a *App) Items(ctx context.Context, args []string) error {
	pageNo := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			printlnFn("Invalid page number:", args[0])
			return fmt.Errorf("invalid page number %q", args[0])
		}
		pageNo = n
	}

	items, err := a.api.Items(ctx, models.Page{Skip: (pageNo - 1) * itemsPageSize, Limit: itemsPageSize})
	if err != nil {
		printlnFn(describeError(err))
		return err
	}

	if len(items) == 0 {
		printlnFn("No items.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", it.ID, it.Name, it.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Page %d", pageNo))
	return nil
}

// Status prints connectivity and session state.
func (a *App) Status(ctx context.Context) error {
	mode := a.getMode()
	if mode == "" {
		mode = "unknown"
	}
	printlnFn("Server:   " + a.api.BaseURL() + " (" + string(mode) + ")")

	snap := a.ctrl.Snapshot()
	if !a.isLoggedIn(ctx) {
		printlnFn("Session:  anonymous")
	} else {
		printlnFn("Session:  authenticated")
		if info, ok := a.acc.Subject(ctx); ok {
			state := "valid"
			if info.Expired(time.Now()) {
				state = "expired"
			}
			printlnFn("Token:    " + info.Subject + " (" + state + ")")
		}
	}
	if snap.User != nil {
		printlnFn("User:     " + snap.User.String())
	}
	printlnFn("Requests: " + snap.Status.String())
	return nil
}

func describeError(err error) string {
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		return msgSessionExpired
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	case errors.Is(err, gateway.ErrMalformedResponse):
		return "Unexpected response from server"
	default:
		return "Server unavailable"
	}
}
