// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value exists for the key
var ErrNotFound = errors.New("storage: key not found")

// Backend is a scoped key-value string store. The cart core owns its
// tenant-scoped key exclusively and treats every failure as recoverable.
type Backend interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
