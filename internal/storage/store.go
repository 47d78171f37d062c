// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// DefaultSheetKey is the fixed key the splitter state is stored under.
const DefaultSheetKey = "split-state"

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// Store defines the interface for a local key-value blob store.
// This abstraction allows swapping storage backends (SQLite, a JSON file, etc.)
// without changing the service layer.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
