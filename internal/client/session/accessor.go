package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Accessor derives authentication state from the credential store. It keeps
// no state of its own.
type Accessor struct {
	tokens credstore.Reader
	log    logging.Logger
}

func NewAccessor(tokens credstore.Reader, logger logging.Logger) *Accessor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Accessor{tokens: tokens, log: logger}
}

// IsAuthenticated reports whether a token is stored. A store read failure
// counts as anonymous.
func (a *Accessor) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.token(ctx)
	return ok
}

func (a *Accessor) token(ctx context.Context) (string, bool) {
	tok, ok, err := a.tokens.Token(ctx)
	if err != nil {
		a.log.Warn(ctx, "credential store read failed", "error", err)
		return "", false
	}
	return tok, ok
}

// TokenInfo is what can be read from a JWT session token without verifying
// it. Only for display.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (ti TokenInfo) Expired(now time.Time) bool {
	return !ti.ExpiresAt.IsZero() && now.After(ti.ExpiresAt)
}

// Subject decodes the stored token's claims without checking the
// signature. Opaque tokens and an empty store return false.
func (a *Accessor) Subject(ctx context.Context) (TokenInfo, bool) {
	tok, ok := a.token(ctx)
	if !ok {
		return TokenInfo{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}
