package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store backed by the client_state table.
// Used in production so cart and wishlist state survives restarts and is
// shared across instances.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store using the given connection pool.
// The client_state table is created by migrations.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Put upserts value under key.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert state: %w", err)
	}

	return nil
}

// Get retrieves the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM client_state WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("failed to query state: %w", err)
	}

	return value, nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	return nil
}

// Exists checks whether a value is stored under key.
func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM client_state WHERE key = $1)
	`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check state existence: %w", err)
	}

	return exists, nil
}
