package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		state State
		want  Decision
	}{
		{Checking, Decision{Action: Wait}},
		{Anonymous, Decision{Action: Redirect, Target: Login}},
		{Authenticated, Decision{Action: Render}},
		{State(99), Decision{Action: Wait}},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state))
		})
	}
}

// trace records what the rendering layer saw, in order.
type trace struct {
	events []string
}

func (tr *trace) hooks() Hooks {
	return Hooks{
		Loading: func() { tr.events = append(tr.events, "loading") },
		Redirect: func(_ context.Context, target Route) error {
			tr.events = append(tr.events, "redirect:"+string(target))
			return nil
		},
	}
}

func (tr *trace) view(name string) View {
	return func(context.Context) error {
		tr.events = append(tr.events, "render:"+name)
		return nil
	}
}

// checkingAccessor records the order of the accessor call.
type checkingAccessor struct {
	tr   *trace
	auth bool
}

func (c checkingAccessor) IsAuthenticated(context.Context) bool {
	c.tr.events = append(c.tr.events, "check")
	return c.auth
}

func TestNavigate_Authenticated(t *testing.T) {
	tr := &trace{}
	g := New(checkingAccessor{tr: tr, auth: true}, tr.hooks())

	d, err := g.Navigate(context.Background(), Dashboard, tr.view("dashboard"))
	require.NoError(t, err)
	assert.Equal(t, Render, d.Action)
	assert.Equal(t, []string{"loading", "check", "render:dashboard"}, tr.events)
}

func TestNavigate_AnonymousNeverRenders(t *testing.T) {
	tr := &trace{}
	g := New(checkingAccessor{tr: tr}, tr.hooks())

	d, err := g.Navigate(context.Background(), Profile, tr.view("profile"))
	require.NoError(t, err)
	assert.Equal(t, Decision{Action: Redirect, Target: Login}, d)
	assert.Equal(t, []string{"loading", "check", "redirect:login"}, tr.events)
}

func TestNavigate_PublicRoutesSkipCheck(t *testing.T) {
	tr := &trace{}
	g := New(checkingAccessor{tr: tr}, tr.hooks())

	for _, r := range []Route{Home, Login, Signup} {
		_, err := g.Navigate(context.Background(), r, tr.view(string(r)))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"render:home", "render:login", "render:signup"}, tr.events)
}

func TestNavigate_FreshNavigationRechecks(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemory()
	g := New(session.NewAccessor(store, nil), Hooks{})

	rendered := 0
	view := func(context.Context) error { rendered++; return nil }

	d, _ := g.Navigate(ctx, Items, view)
	assert.Equal(t, Redirect, d.Action)

	require.NoError(t, store.Set(ctx, "T1"))
	d, _ = g.Navigate(ctx, Items, view)
	assert.Equal(t, Render, d.Action)

	require.NoError(t, store.Clear(ctx))
	d, _ = g.Navigate(ctx, Items, view)
	assert.Equal(t, Redirect, d.Action)

	assert.Equal(t, 1, rendered, "renders iff a token is present at evaluation time")
}

func TestNavigate_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	g := New(checkingAccessor{tr: &trace{}, auth: true}, Hooks{})
	_, err := g.Navigate(context.Background(), Items, func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	g = New(checkingAccessor{tr: &trace{}}, Hooks{Redirect: func(context.Context, Route) error { return boom }})
	_, err = g.Navigate(context.Background(), Items, func(context.Context) error { return nil })
	require.ErrorIs(t, err, boom)
}

func TestNavigate_RedirectWithoutHook(t *testing.T) {
	g := New(checkingAccessor{tr: &trace{}}, Hooks{})
	d, err := g.Navigate(context.Background(), Items, func(context.Context) error {
		t.Fatal("protected view rendered")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Redirect, d.Action)
}

func TestEvaluate_WithoutAccessorPanics(t *testing.T) {
	require.Panics(t, func() { New(nil, Hooks{}).Evaluate(context.Background()) })

	var g *Guard
	require.Panics(t, func() { g.Evaluate(context.Background()) })
}

func TestNavigate_NilViewPanics(t *testing.T) {
	g := New(checkingAccessor{tr: &trace{}}, Hooks{})
	require.Panics(t, func() { _, _ = g.Navigate(context.Background(), Home, nil) })
}

func TestRoutes(t *testing.T) {
	r, ok := Lookup(" Dashboard ")
	require.True(t, ok)
	assert.Equal(t, Dashboard, r)
	_, ok = Lookup("about")
	assert.False(t, ok)

	assert.True(t, IsProtected(Items))
	assert.False(t, IsProtected(Home))
	assert.Len(t, Routes(), 6)
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "checking", Checking.String())
}
