// internal/storage/redis.go
package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend persists values in Redis with an optional TTL
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBackend creates a Redis-backed store. A zero ttl means values
// never expire.
func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{
		client: client,
		ttl:    ttl,
	}
}

// Read retrieves a value by key
func (b *RedisBackend) Read(ctx context.Context, key string) (string, error) {
	value, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Write stores a value under key
func (b *RedisBackend) Write(ctx context.Context, key, value string) error {
	return b.client.Set(ctx, key, value, b.ttl).Err()
}

// Remove deletes a key
func (b *RedisBackend) Remove(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}
