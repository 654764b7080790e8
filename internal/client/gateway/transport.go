package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/common"
	"github.com/dmitrijs2005/ozo/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type ctxKey int

const (
	anonymousKey ctxKey = iota
	quietKey
)

// withoutCredentials marks a request that must go out without a bearer
// token even when one is stored.
func withoutCredentials(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey).(bool)
	return v
}

// Quietly marks calls whose rejected token is cleared without calling
// OnUnauthorized. The caller handles the outcome itself.
func Quietly(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey, true)
}

func isQuiet(ctx context.Context) bool {
	v, _ := ctx.Value(quietKey).(bool)
	return v
}

// authTransport decorates outbound requests and reacts to 401 responses.
type authTransport struct {
	next           http.RoundTripper
	store          credstore.Store
	onUnauthorized func()
	log            logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	r := req.Clone(ctx)
	r.Header.Set("Content-Type", common.ContentTypeJSON)
	r.Header.Set("Accept", common.ContentTypeJSON)
	reqID := uuid.NewString()
	r.Header.Set(common.RequestIDHeaderName, reqID)

	// only the store decides what credentials go out
	r.Header.Del(common.AuthorizationHeaderName)

	var sent string
	if !isAnonymous(ctx) {
		tok, ok, err := t.store.Token(ctx)
		switch {
		case err != nil:
			t.log.Warn(ctx, "credential store read failed, sending unauthenticated", "request_id", reqID, "error", err)
		case ok:
			(&oauth2.Token{AccessToken: tok, TokenType: "bearer"}).SetAuthHeader(r)
			sent = tok
		}
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		t.log.Debug(ctx, "request failed", "method", r.Method, "path", r.URL.Path, "request_id", reqID, "error", err)
		return nil, err
	}

	t.log.Debug(ctx, "request done",
		"method", r.Method, "path", r.URL.Path, "status", resp.StatusCode,
		"request_id", reqID, "authenticated", sent != "", "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && sent != "" {
		t.dropToken(ctx, sent, reqID)
	}

	return resp, nil
}

// dropToken clears the store after the server rejected token. A token that
// was replaced while the request was in flight is left alone.
func (t *authTransport) dropToken(ctx context.Context, token, reqID string) {
	current, ok, err := t.store.Token(ctx)
	if err != nil || !ok || current != token {
		return
	}
	if err := t.store.Clear(ctx); err != nil {
		t.log.Error(ctx, "failed to clear rejected token", "request_id", reqID, "error", err)
		return
	}
	t.log.Info(ctx, "session token rejected, cleared", "request_id", reqID)
	if t.onUnauthorized != nil && !isQuiet(ctx) {
		t.onUnauthorized()
	}
}
