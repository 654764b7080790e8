package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/client/gateway"
	"github.com/dmitrijs2005/ozo/internal/client/models"
	"github.com/dmitrijs2005/ozo/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Display messages used when the server gave no reason.
const (
	MsgLoginFailed  = "Login failed. Please try again."
	MsgSignupFailed = "Signup failed. Please try again."
)

var (
	// ErrBusy is returned when a login or signup is already in flight.
	ErrBusy = errors.New("another request is in progress")
	// ErrLoginCanceled is returned by a login that completed after a
	// logout started. Its token is not stored.
	ErrLoginCanceled = errors.New("login canceled by logout")
)

// IdentityAPI is the part of the gateway the controller drives.
type IdentityAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*oauth2.Token, error)
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// Controller is the auth session state machine.
type Controller struct {
	api   IdentityAPI
	store credstore.Store
	log   logging.Logger

	mu      sync.RWMutex
	status  Status
	user    *models.User
	message string
	// epoch changes on every login and logout so a restore that finishes
	// late does not overwrite their outcome.
	epoch uint64

	restore singleflight.Group
}

func NewController(api IdentityAPI, store credstore.Store, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{api: api, store: store, log: logger.With("component", "session")}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{Status: c.status, Message: c.message}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// Busy reports whether an operation is in flight.
func (c *Controller) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status == StatusLoading
}

// begin moves to loading unless already there.
func (c *Controller) begin() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusLoading {
		return 0, ErrBusy
	}
	c.status = StatusLoading
	c.message = ""
	c.epoch++
	return c.epoch, nil
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	c.status = StatusFailed
	c.message = msg
	c.mu.Unlock()
}

// displayMessage is the server reason for API errors and fallback for
// everything else.
func displayMessage(err error, fallback string) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// Login exchanges creds for a token, stores it and loads the profile. The
// secret in creds is wiped before Login returns. On failure the previously
// stored token is left as it was.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) error {
	defer creds.Wipe()

	epoch, err := c.begin()
	if err != nil {
		return err
	}

	tok, err := c.api.Login(ctx, creds)
	if err != nil {
		c.log.Info(ctx, "login rejected", "user", creds.Identifier, "error", err)
		c.fail(displayMessage(err, MsgLoginFailed))
		return err
	}

	if err := c.persist(ctx, epoch, tok.AccessToken); err != nil {
		if errors.Is(err, ErrLoginCanceled) {
			c.log.Info(ctx, "login finished after logout, token discarded", "user", creds.Identifier)
			return err
		}
		c.log.Error(ctx, "failed to persist session token", "error", err)
		c.fail(MsgLoginFailed)
		return err
	}

	user, err := c.api.Me(gateway.Quietly(ctx))
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrUnauthorized):
		// the fresh token was refused; the gateway has already cleared it
		c.log.Warn(ctx, "new session token rejected", "user", creds.Identifier, "error", err)
		c.dropIfUnchanged(ctx, tok.AccessToken)
		c.mu.Lock()
		if c.epoch == epoch {
			c.status = StatusFailed
			c.message = MsgLoginFailed
			c.user = nil
		}
		c.mu.Unlock()
		return err
	default:
		// the session is established; the profile can be loaded later
		c.log.Warn(ctx, "profile fetch after login failed", "error", err)
		user = nil
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.status = StatusSucceeded
		c.user = user
	}
	c.mu.Unlock()

	c.log.Info(ctx, "logged in", "user", creds.Identifier)
	return nil
}

// persist stores token unless a logout began after epoch. The check and the
// write happen under c.mu so a logout either sees the token and clears it or
// makes the login discard it.
func (c *Controller) persist(ctx context.Context, epoch uint64, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return ErrLoginCanceled
	}
	return c.store.Set(ctx, token)
}

// Signup creates an account. It does not log in.
func (c *Controller) Signup(ctx context.Context, data models.SignupData) (*models.User, error) {
	defer data.Wipe()

	if _, err := c.begin(); err != nil {
		return nil, err
	}

	user, err := c.api.Signup(ctx, data)
	if err != nil {
		c.log.Info(ctx, "signup rejected", "user", data.Email, "error", err)
		c.fail(displayMessage(err, MsgSignupFailed))
		return nil, err
	}

	c.mu.Lock()
	c.status = StatusSucceeded
	c.mu.Unlock()

	c.log.Info(ctx, "account created", "user", data.Email, "id", user.ID)
	return user, nil
}

// Logout notifies the server when a token is stored, then clears the token
// and profile whatever the outcome. It never fails.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.status = StatusLoading
	c.epoch++
	c.mu.Unlock()

	if _, ok, err := c.store.Token(ctx); err == nil && ok {
		if err := c.api.Logout(ctx); err != nil {
			c.log.Warn(ctx, "logout notification failed", "error", err)
		}
	}

	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session token", "error", err)
	}

	c.mu.Lock()
	c.status = StatusIdle
	c.user = nil
	c.message = ""
	c.mu.Unlock()

	c.log.Info(ctx, "logged out")
}

// Restore re-establishes a session from a stored token. Without a token no
// request is made. A token the server refuses is cleared; a token that
// could not be checked because the server is unreachable is kept. Restore
// never reports an error: every outcome ends in a valid state. Concurrent
// calls share one request.
func (c *Controller) Restore(ctx context.Context) {
	_, _, _ = c.restore.Do("restore", func() (any, error) {
		c.doRestore(ctx)
		return nil, nil
	})
}

func (c *Controller) doRestore(ctx context.Context) {
	tok, ok, err := c.store.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential store read failed", "error", err)
	}
	if err != nil || !ok {
		c.settle(c.currentEpoch(), StatusIdle, nil)
		return
	}

	c.mu.Lock()
	c.status = StatusLoading
	epoch := c.epoch
	c.mu.Unlock()

	user, err := c.api.Me(gateway.Quietly(ctx))
	switch {
	case err == nil:
		c.settle(epoch, StatusSucceeded, user)
		c.log.Info(ctx, "session restored", "user", user.Email)

	case isRejection(err):
		c.dropIfUnchanged(ctx, tok)
		c.settle(epoch, StatusIdle, nil)
		c.log.Info(ctx, "stored session is stale, cleared")

	default:
		c.settle(epoch, StatusIdle, nil)
		c.log.Warn(ctx, "could not verify stored session", "error", err)
	}
}

func isRejection(err error) bool {
	var apiErr *gateway.APIError
	return errors.As(err, &apiErr)
}

// dropIfUnchanged clears the store unless a newer token replaced tok.
func (c *Controller) dropIfUnchanged(ctx context.Context, tok string) {
	cur, ok, err := c.store.Token(ctx)
	if err != nil || !ok || cur != tok {
		return
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear stale token", "error", err)
	}
}

func (c *Controller) currentEpoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// settle applies a restore outcome if no login or logout happened since.
func (c *Controller) settle(epoch uint64, st Status, user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.status = st
	c.user = user
	c.message = ""
}
