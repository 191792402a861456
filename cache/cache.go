// Package cache provides the fast key-value store used for the friendship
// adjacency index and session keys. It is backed by Redis when an address is
// configured and by an in-process store otherwise (development and tests).
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Cache is the key-value contract shared by the Redis and local backends.
// Implementations are safe for concurrent use at the transport level only;
// callers composing Get/Set into read-modify-write sequences get no
// atomicity from this interface.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds configuration for both backends.
type Config struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LocalGCInterval time.Duration
}

// New returns a Cache backed by Redis if RedisAddr is set, otherwise an
// in-process LocalCache.
func New(cfg Config) (Cache, error) {
	if cfg.RedisAddr != "" {
		return NewRedisCache(cfg)
	}
	return NewLocalCache(cfg.LocalGCInterval), nil
}
