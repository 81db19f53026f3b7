// Package cache stores rendered build artifacts between runs.
//
// Tree builds are deterministic, so an artifact is fully described by the
// build options and the render options. [Keyer] turns those into content
// keys; a [Cache] maps keys to bytes with an optional TTL.
//
// Three backends are provided:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] stores JSON envelopes under a local directory (CLI)
//   - [RedisCache] stores raw values in Redis (shared API deployments)
package cache

import (
	"context"
	"fmt"
	"time"
)

// ArtifactTTL is how long rendered artifacts stay cached.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by string.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string
	Dir       string // file backend
	RedisAddr string
	RedisDB   int
}

// Open creates the cache described by cfg. An empty backend means none.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
