package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"event-counter-service/internal/counter/core/ports"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS counter_values (
    key   TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`

const (
	getSQL = `SELECT value FROM counter_values WHERE key = ?`
	hasSQL = `SELECT EXISTS (SELECT 1 FROM counter_values WHERE key = ?)`
	setSQL = `
INSERT INTO counter_values (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)

// Store provides a SQLite-backed key/value store for counters.
type Store struct {
	sqlDB *sql.DB
}

var _ ports.KeyValueStore = (*Store)(nil)

// Open opens (and creates if needed) a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create counter table: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) GetInteger(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.sqlDB.QueryRowContext(ctx, getSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) HasValue(ctx context.Context, key string) (bool, error) {
	var exists bool
	if err := s.sqlDB.QueryRowContext(ctx, hasSQL, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", key, err)
	}
	return exists, nil
}

func (s *Store) SetInteger(ctx context.Context, key string, value int64) error {
	if _, err := s.sqlDB.ExecContext(ctx, setSQL, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
