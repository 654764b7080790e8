package guard

import "strings"

// Route names a view of the CLI.
type Route string

const (
	Home      Route = "home"
	Login     Route = "login"
	Signup    Route = "signup"
	Dashboard Route = "dashboard"
	Profile   Route = "profile"
	Items     Route = "items"
)

// LoginRoute is where anonymous visitors of protected views are sent.
const LoginRoute = Login

var protected = map[Route]bool{
	Dashboard: true,
	Profile:   true,
	Items:     true,
}

var known = []Route{Home, Login, Signup, Dashboard, Profile, Items}

// IsProtected reports whether r requires an authenticated session.
func IsProtected(r Route) bool {
	return protected[r]
}

// Lookup resolves a route by name, case-insensitively.
func Lookup(name string) (Route, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range known {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// Routes lists every known route in display order.
func Routes() []Route {
	return append([]Route(nil), known...)
}
