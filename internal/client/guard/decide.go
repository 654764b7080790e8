// Package guard decides, per navigation, whether a protected view may
// render. Decide is a pure function over the session state; Guard runs one
// navigation through it.
package guard

// State is the session state as seen by one navigation.
type State int

const (
	// Checking means the credential store has not been consulted yet.
	Checking State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Action is what the rendering layer must do.
type Action int

const (
	// Wait shows a neutral loading state: neither content nor redirect.
	Wait Action = iota
	Redirect
	Render
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide. Target is set only for Redirect.
type Decision struct {
	Action Action
	Target Route
}

// Decide maps a session state to a decision.
func Decide(s State) Decision {
	switch s {
	case Authenticated:
		return Decision{Action: Render}
	case Anonymous:
		return Decision{Action: Redirect, Target: LoginRoute}
	default:
		return Decision{Action: Wait}
	}
}
