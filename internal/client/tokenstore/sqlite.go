package tokenstore

import (
	"context"       // Store contract
	"database/sql"  // SQL handle
	"embed"         // Bundled migrations
	"errors"        // sql.ErrNoRows
	"fmt"           // Error wrapping
	"os"            // Directory creation
	"path/filepath" // Parent directory

	"github.com/pressly/goose/v3" // Schema migrations
	_ "modernc.org/sqlite"        // Pure-Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps the token in a local key/value table.
type SQLiteStore struct {
	db *sql.DB // Single-connection handle
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// migrates it. Pass ":memory:" for a throwaway store.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: databases live and die with their connection
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)        // Embedded migrations
	goose.SetLogger(goose.NopLogger()) // Keep the terminal quiet
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate token store: %w", err)
	}
	return nil
}

// Set upserts the token row
func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, Key, token)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", Key, err)
	}
	return nil
}

// Get returns the token row's value, or an empty string when there is no row
func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil // No token stored
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", Key, err)
	}
	return value, nil
}

// Delete removes the token row; deleting a missing row is not an error
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, Key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", Key, err)
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
