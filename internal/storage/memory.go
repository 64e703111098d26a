// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. Used for local development
// and tests; nothing survives a restart.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory store
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string]string),
	}
}

// Read retrieves a value by key
func (b *MemoryBackend) Read(ctx context.Context, key string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Write stores a value under key
func (b *MemoryBackend) Write(ctx context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = value
	return nil
}

// Remove deletes a key
func (b *MemoryBackend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}
