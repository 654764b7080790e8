package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// exerciseStore checks the behaviour shared by every backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	tok, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.False(t, ok, "fresh store must be empty")
	require.Empty(t, tok)

	require.NoError(t, s.Set(ctx, "T1"))
	tok, ok, err = s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "T1", tok)

	require.NoError(t, s.Set(ctx, "T2"), "set replaces")
	tok, _, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", tok)

	require.ErrorIs(t, s.Set(ctx, ""), ErrEmptyToken)
	tok, _, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", tok, "rejected set leaves the value untouched")

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Token(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Clear(ctx), "clearing an empty store is a no-op")
}
