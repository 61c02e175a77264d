package redis

import (
	"context"
	"errors"
	"fmt"

	"event-counter-service/internal/counter/core/ports"

	"github.com/gomodule/redigo/redis"
)

// Store keeps counter values as plain Redis strings without expiry.
type Store struct {
	pool *redis.Pool
}

func NewStore(pool *redis.Pool) *Store {
	return &Store{pool: pool}
}

var _ ports.KeyValueStore = (*Store)(nil)

func (s *Store) GetInteger(ctx context.Context, key string) (int64, error) {
	con, err := s.pool.GetContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("redis conn: %w", err)
	}
	defer con.Close()

	value, err := redis.Int64(con.Do(CommandGet, key))
	if errors.Is(err, redis.ErrNil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failed: %w", err)
	}

	return value, nil
}

func (s *Store) HasValue(ctx context.Context, key string) (bool, error) {
	con, err := s.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("redis conn: %w", err)
	}
	defer con.Close()

	exists, err := redis.Bool(con.Do(CommandExists, key))
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return exists, nil
}

func (s *Store) SetInteger(ctx context.Context, key string, value int64) error {
	con, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis conn: %w", err)
	}
	defer con.Close()

	if _, err := con.Do(CommandSet, key, value); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}
