package memory

import (
	"context"
	"sync"

	"event-counter-service/internal/counter/core/ports"
)

// Store keeps values in process memory. Nothing survives a restart.
type Store struct {
	mu     sync.RWMutex
	values map[string]int64
}

func NewStore() *Store {
	return &Store{values: make(map[string]int64)}
}

var _ ports.KeyValueStore = (*Store)(nil)

func (s *Store) GetInteger(ctx context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *Store) HasValue(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok, nil
}

func (s *Store) SetInteger(ctx context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
