package credstore

import (
	"context"
	"fmt"
)

// New creates a credential store for cfg.Driver. An empty driver selects
// the sqlite backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if cfg.SQLite == nil || cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		return OpenSQLite(ctx, cfg.SQLite.Path)
	case DriverRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported credential store driver: %s", driver)
	}
}
