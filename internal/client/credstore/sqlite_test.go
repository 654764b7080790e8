package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLite_Contract(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "T1"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	tok, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "T1", tok)
}

func TestSQLite_SingleRow(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, "T1"))
	require.NoError(t, s.Set(ctx, "T2"))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestSQLite_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Token(ctx)
	require.ErrorContains(t, err, "failed to get credentials[token]")

	err = s.Set(ctx, "T1")
	require.ErrorContains(t, err, "failed to set credentials[token]")

	err = s.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear credentials[token]")
}

func TestSQLite_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, RunMigrations(ctx, s.db))
}
