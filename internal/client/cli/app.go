package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/ozo/internal/client/config"
	"github.com/dmitrijs2005/ozo/internal/client/credstore"
	"github.com/dmitrijs2005/ozo/internal/client/gateway"
	"github.com/dmitrijs2005/ozo/internal/client/guard"
	"github.com/dmitrijs2005/ozo/internal/client/models"
	"github.com/dmitrijs2005/ozo/internal/client/session"
	"github.com/dmitrijs2005/ozo/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionController is the part of session.Controller the CLI drives.
type sessionController interface {
	Login(ctx context.Context, creds models.Credentials) error
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)
	Logout(ctx context.Context)
	Restore(ctx context.Context)
	Snapshot() session.Snapshot
	Busy() bool
}

type sessionAccessor interface {
	IsAuthenticated(ctx context.Context) bool
	Subject(ctx context.Context) (session.TokenInfo, bool)
}

// backend is the non-identity part of the gateway.
type backend interface {
	Items(ctx context.Context, page models.Page) ([]models.Item, error)
	User(ctx context.Context, id int64) (*models.User, error)
	Ping(ctx context.Context) error
	BaseURL() string
}

type App struct {
	config *config.Config
	ctrl   sessionController
	acc    sessionAccessor
	api    backend
	guard  *guard.Guard
	store  io.Closer
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode

	// expired is set by the gateway when it drops a rejected token.
	expired atomic.Bool
}

// NewApp wires the credential store, gateway, session and guard together.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	store, err := credstore.New(ctx, storeConfig(c))
	if err != nil {
		logger.Error(ctx, "error initializing credential store", "driver", c.StoreDriver, "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		store:  store,
		log:    logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	gw, err := gateway.New(gateway.Options{
		BaseURL:        c.APIBaseURL,
		Timeout:        c.RequestTimeout,
		OnUnauthorized: func() { a.expired.Store(true) },
	}, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a.api = gw
	a.ctrl = session.NewController(gw, store, logger)
	a.acc = session.NewAccessor(store, logger)
	a.guard = guard.New(a.acc, guard.Hooks{Loading: a.showChecking, Redirect: a.redirect})

	return a, nil
}

func storeConfig(c *config.Config) credstore.Config {
	return credstore.Config{
		Driver: c.StoreDriver,
		SQLite: &credstore.SQLiteConfig{Path: c.StorePath},
		Redis:  &credstore.RedisConfig{Addr: c.RedisAddr, Prefix: c.RedisPrefix},
	}
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) getMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// Run restores the previous session, then serves the REPL until the user
// exits, with the connectivity watcher running alongside.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		a.Root(gctx)
		return nil
	})
	return g.Wait()
}

// Close releases the credential store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.acc.IsAuthenticated(ctx)
}

// StartOnlineStatusWatcher pings the server every interval and tracks
// whether it is reachable. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.api.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
