package ports

import "context"

// KeyValueStore persists flat integer values by key.
type KeyValueStore interface {
	// GetInteger returns 0 when the key is absent.
	GetInteger(ctx context.Context, key string) (int64, error)
	// HasValue reports whether anything was ever stored under key.
	HasValue(ctx context.Context, key string) (bool, error)
	// SetInteger must be visible to the next GetInteger once it returns.
	SetInteger(ctx context.Context, key string, value int64) error
}
