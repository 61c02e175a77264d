package postgres

import (
	"context"
	"fmt"

	"event-counter-service/internal/counter/core/ports"

	"github.com/lib/pq"
)

const DefaultTable = "counter_values"

// Store keeps one row per key in a two-column table.
type Store struct {
	db DB

	createSQL string
	getSQL    string
	hasSQL    string
	setSQL    string
}

// NewStore uses table, or DefaultTable when table is empty.
func NewStore(db DB, table string) *Store {
	if table == "" {
		table = DefaultTable
	}
	t := pq.QuoteIdentifier(table)

	return &Store{
		db: db,
		createSQL: fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    key   TEXT PRIMARY KEY,
    value BIGINT NOT NULL
);`, t),
		getSQL: fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, t),
		hasSQL: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE key = $1)`, t),
		setSQL: fmt.Sprintf(`
INSERT INTO %s (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`, t),
	}
}

var _ ports.KeyValueStore = (*Store)(nil)

// EnsureSchema creates the table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.createSQL); err != nil {
		return fmt.Errorf("create counter table: %w", err)
	}
	return nil
}

func (s *Store) GetInteger(ctx context.Context, key string) (int64, error) {
	rows, err := s.db.QueryContext(ctx, s.getSQL, key)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var value int64
	if rows.Next() {
		if err := rows.Scan(&value); err != nil {
			return 0, err
		}
	}

	if err := rows.Err(); err != nil {
		return 0, err
	}

	return value, nil
}

func (s *Store) HasValue(ctx context.Context, key string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, s.hasSQL, key)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, err
		}
	}

	if err := rows.Err(); err != nil {
		return false, err
	}

	return exists, nil
}

func (s *Store) SetInteger(ctx context.Context, key string, value int64) error {
	_, err := s.db.ExecContext(ctx, s.setSQL, key, value)
	return err
}
