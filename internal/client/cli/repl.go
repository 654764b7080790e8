package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ozo/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Open(ctx context.Context, route guard.Route, args []string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpAnonymous     = "Available commands: home, login, signup, dashboard, profile, items [page], status, help, exit"
	helpAuthenticated = "Available commands: home, dashboard, profile, items [page], status, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them until
// EOF or "exit"/"quit".
//
// Route names (home, login, signup, dashboard, profile, items) open the
// matching view through the route guard; protected views redirect to the
// login prompt when there is no session. Handler errors are not fatal:
// handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader) {
	for {
		if notice := statusNotice(a); notice != "" {
			printlnFn(notice)
		}
		printlnFn(fmt.Sprintf("ozo %s> ", statusFn(ctx)))

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpAuthenticated)
			} else {
				printlnFn(helpAnonymous)
			}

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			route, ok := guard.Lookup(cmd)
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.Open(ctx, route, args)
		}
	}
}

// noticer is implemented by executors that queue one-off messages.
type noticer interface {
	takeNotice() string
}

func statusNotice(a execIface) string {
	if n, ok := a.(noticer); ok {
		return n.takeNotice()
	}
	return ""
}
