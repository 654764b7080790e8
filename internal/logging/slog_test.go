package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log, err := New(&buf, FormatText, level)
	require.NoError(t, err)
	_, ok := log.(*SlogLogger)
	require.True(t, ok, "text format must be backed by slog")
	return log, &buf
}

func TestSlogLogger_EveryLevelCarriesItsAttributes(t *testing.T) {
	log, buf := newTextLogger(t, "debug")
	ctx := context.Background()

	log.Debug(ctx, "reading token", "driver", "sqlite")
	log.Info(ctx, "logged in", "user", "ann@example.com")
	log.Warn(ctx, "profile fetch failed", "status", 503)
	log.Error(ctx, "store clear failed", "key", "token")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=\"reading token\"", "driver=sqlite",
		"level=INFO", "msg=\"logged in\"", "user=ann@example.com",
		"level=WARN", "status=503",
		"level=ERROR", "key=token",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_WithIsInheritedNotShared(t *testing.T) {
	log, buf := newTextLogger(t, "info")
	ctx := context.Background()

	log.With("component", "gateway").Info(ctx, "request done", "request_id", "r-1")
	log.Info(ctx, "plain")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "component=gateway")
	assert.Contains(t, string(lines[0]), "request_id=r-1")
	assert.NotContains(t, string(lines[1]), "component=")
}

func TestSlogLogger_FilteredLevelWritesNothing(t *testing.T) {
	log, buf := newTextLogger(t, "error")

	log.Debug(context.Background(), "d")
	log.Info(context.Background(), "i")
	log.Warn(context.Background(), "w")
	assert.Zero(t, buf.Len())
}
