package storage

import (
	"context"

	"github.com/dukerupert/sif/internal"
)

// Store defines the interface for persisting small keyed state blobs,
// such as the serialized cart and wishlist. Implementations can use the
// local filesystem, an in-memory map, or Postgres.
type Store interface {
	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound if the key has never been written or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the value stored under key.
	// Returns nil if the key doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Exists checks whether a value is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// NewStore creates a Store implementation based on configuration.
// Returns MemoryStore for "memory", LocalStore for "local", and
// PostgresStore for "postgres".
func NewStore(cfg internal.StateStoreConfig) (Store, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryStore(), nil
	case "local":
		return NewLocalStore(cfg.LocalPath)
	case "postgres":
		return nil, ErrPoolRequired
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
