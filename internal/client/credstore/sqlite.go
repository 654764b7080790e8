package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/ozo/internal/client/credstore/migrations"
	"github.com/dmitrijs2005/ozo/internal/common"
	"github.com/dmitrijs2005/ozo/internal/dbx"
	"github.com/dmitrijs2005/ozo/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLite stores the token in a local database file.
type SQLite struct {
	db *sql.DB
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to migrate credential store: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// it. The parent directory of a file path is created with owner-only
// permissions.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if isFilePath(path) {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	// one connection: ":memory:" databases are per connection, and a
	// single-row store gains nothing from a pool
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func isFilePath(path string) bool {
	return path != ":memory:" && !strings.HasPrefix(path, "file:")
}

func (s *SQLite) Token(ctx context.Context) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, common.TokenStorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get credentials[%s]: %w", common.TokenStorageKey, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, common.TokenStorageKey, token)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", common.TokenStorageKey, err)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, common.TokenStorageKey)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear credentials[%s]: %w", common.TokenStorageKey, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
