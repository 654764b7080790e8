package guard

import (
	"context"
	"fmt"
)

// Checker answers whether the current session is authenticated.
type Checker interface {
	IsAuthenticated(ctx context.Context) bool
}

// View renders a route.
type View func(ctx context.Context) error

// Hooks let the rendering layer show transitional states.
type Hooks struct {
	// Loading is called once per navigation while the session is checked.
	Loading func()
	// Redirect performs the redirect to target.
	Redirect func(ctx context.Context, target Route) error
}

// Guard gates protected views.
type Guard struct {
	acc   Checker
	hooks Hooks
}

func New(acc Checker, hooks Hooks) *Guard {
	return &Guard{acc: acc, hooks: hooks}
}

// Evaluate runs one navigation's check: it starts in Checking, consults
// the accessor once and returns the terminal decision. A guard without an
// accessor is a programming error and panics.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	if g == nil || g.acc == nil {
		panic("guard: evaluated without a session accessor")
	}

	// Decide(Checking) is Wait: show the neutral state until the store
	// has been read.
	if g.hooks.Loading != nil {
		g.hooks.Loading()
	}

	if g.acc.IsAuthenticated(ctx) {
		return Decide(Authenticated)
	}
	return Decide(Anonymous)
}

// Navigate shows route. Public routes render directly. Protected routes
// render only after Evaluate returns Render; on Redirect the view is never
// called.
func (g *Guard) Navigate(ctx context.Context, route Route, view View) (Decision, error) {
	if view == nil {
		panic(fmt.Sprintf("guard: no view for route %q", route))
	}

	if !IsProtected(route) {
		return Decision{Action: Render}, view(ctx)
	}

	d := g.Evaluate(ctx)
	switch d.Action {
	case Render:
		return d, view(ctx)
	case Redirect:
		if g.hooks.Redirect == nil {
			return d, nil
		}
		return d, g.hooks.Redirect(ctx, d.Target)
	default:
		return d, nil
	}
}
