package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// ErrQuotaExceeded is returned when a write would take a MemoryStore past
// its byte budget.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStore is an in-process store with a fixed byte budget shared by
// all keys, the same contract as browser local storage. Nothing survives
// the process, so it suits tests and embedding rather than the CLI.
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
	quota int
	used  int
}

// NewMemoryStore allows quotaMB megabytes of keys plus values.
func NewMemoryStore(quotaMB int) *MemoryStore {
	if quotaMB <= 0 {
		quotaMB = 1
	}
	return NewMemoryStoreBytes(quotaMB << 20)
}

// NewMemoryStoreBytes is NewMemoryStore with the budget in bytes.
func NewMemoryStoreBytes(quota int) *MemoryStore {
	if quota <= 0 {
		quota = 1 << 20
	}
	// No cleanup interval: entries never expire, so no janitor goroutine.
	return &MemoryStore{cache: gocache.New(gocache.NoExpiration, 0), quota: quota}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return value.(string), nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used - s.sizeOf(key) + len(key) + len(value)
	if used > s.quota {
		return fmt.Errorf("set %s (%d bytes, %d of %d used): %w", key, len(value), s.used, s.quota, ErrQuotaExceeded)
	}

	s.cache.Set(key, value, gocache.NoExpiration)
	s.used = used
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.used -= s.sizeOf(key)
	s.cache.Delete(key)
	return nil
}

// Used reports how many bytes of the budget are taken.
func (s *MemoryStore) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Flush()
	s.used = 0
	return nil
}

func (s *MemoryStore) sizeOf(key string) int {
	value, ok := s.cache.Get(key)
	if !ok {
		return 0
	}
	return len(key) + len(value.(string))
}
