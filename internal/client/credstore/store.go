package credstore

import (
	"context"
	"errors"
)

// ErrEmptyToken is returned by Set when asked to store an empty value.
var ErrEmptyToken = errors.New("token must not be empty")

// Reader gives read access to the persisted token.
type Reader interface {
	// Token returns the stored token and true, or "" and false when no
	// token is stored.
	Token(ctx context.Context) (string, bool, error)
}

// Store is the full read/write credential store.
type Store interface {
	Reader
	// Set replaces the stored token.
	Set(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
	// Close releases the backend.
	Close() error
}

// Driver identifiers accepted by New.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config describes backend selection and its parameters.
type Config struct {
	Driver string
	SQLite *SQLiteConfig
	Redis  *RedisConfig
}

// SQLiteConfig points at the database. Path may be a file path or any DSN
// understood by modernc.org/sqlite, e.g. ":memory:".
type SQLiteConfig struct {
	Path string
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}
