package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements Store using one file per key under a base
// directory. This is the development implementation; it keeps state
// across restarts without requiring a database.
type LocalStore struct {
	basePath string // Root directory for state files (e.g., "./data/state")
}

// NewLocalStore creates a new local filesystem store.
//
// basePath is the directory where state files will be stored (created if
// it doesn't exist).
func NewLocalStore(basePath string) (*LocalStore, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &LocalStore{basePath: basePath}, nil
}

// path maps a key to a file path. Keys use ":" as a namespace separator
// (e.g. "cart:session-abc"); that maps poorly to filenames, so replace it.
func (s *LocalStore) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(s.basePath, name+".json")
}

// Put writes value to the key's file atomically via a temp file rename.
func (s *LocalStore) Put(ctx context.Context, key string, value []byte) error {
	fullPath := s.path(key)

	tmp, err := os.CreateTemp(s.basePath, ".put-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Get reads the value stored for key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	return data, nil
}

// Delete removes the key's file.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file: %w", err)
	}

	return nil
}

// Exists checks if a value is stored for key.
func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check state file: %w", err)
	}

	return true, nil
}
