package storage

import (
	"context"
	"fmt"
	"time"
)

// Kind names a storage backend
type Kind string

// Supported backends
const (
	KindMemory   Kind = "memory"
	KindFile     Kind = "file"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
)

// Config selects and configures a backend
type Config struct {
	Kind        Kind
	Dir         string
	DatabaseURL string
	RedisAddr   string
	RedisTTL    time.Duration
	MemoryQuota int
}

// Open creates the backend described by cfg. An empty kind means memory.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Kind {
	case KindMemory, "":
		return NewMemoryBackend(cfg.MemoryQuota), nil
	case KindFile:
		return NewFileBackend(cfg.Dir)
	case KindPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres storage requires a database URL")
		}
		backend, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = backend.Close()
			return nil, err
		}
		return backend, nil
	case KindRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
	}
}
