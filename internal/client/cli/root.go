package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ozo/internal/buildinfo"
)

// getStatus renders the prompt status, e.g. "(ann online)".
func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if u := a.ctrl.Snapshot().User; u != nil {
		s = u.DisplayName() + " "
	} else if a.isLoggedIn(ctx) {
		s = "user "
	}
	if m := a.getMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// takeNotice returns the session expiry notice once.
func (a *App) takeNotice() string {
	if a.expired.Swap(false) {
		return msgSessionExpired
	}
	return ""
}

// Root prints the banner, restores the stored session once and serves the
// REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	buildinfo.PrintBanner(a.out, "ozo")
	printlnFn("Welcome to OZO, Our Zero-waste Option (type 'help' for commands)")

	a.ctrl.Restore(ctx)
	if u := a.ctrl.Snapshot().User; u != nil {
		printlnFn("Welcome back, " + u.DisplayName() + "!")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
