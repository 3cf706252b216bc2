package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/misterclayt0n/mapty/internal/config"
)

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// Store is a flat, string keyed blob store. Every Set replaces the whole
// value atomically.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Dir)
	case config.BackendLibSQL:
		return OpenLibSQL(ctx, cfg.DatabaseURL)
	case config.BackendMemory:
		return NewMemoryStore(cfg.MemoryQuotaMB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
