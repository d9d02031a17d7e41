package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each record as a string value. A positive TTL makes
// records expire, which suits anonymous sessions.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis creates a client for addr and verifies it with PING
func ConnectRedis(ctx context.Context, addr string, ttl time.Duration) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return NewRedisBackend(client, ttl), nil
}

// NewRedisBackend wraps an existing client
func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

// Get returns the stored value for key
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, refreshing the TTL
func (r *RedisBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

// Close closes the client
func (r *RedisBackend) Close() error {
	return r.client.Close()
}
