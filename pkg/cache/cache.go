// Package cache provides caching of metric results.
//
// Cached values are opaque byte slices keyed by strings built with a [Keyer].
// Four backends are available:
//
//   - [NullCache]: stores nothing, for --no-cache runs and tests
//   - [FileCache]: one JSON file per key, for the CLI
//   - [MemoryCache]: a bounded in-process cache, for the HTTP server
//   - [RedisCache]: a shared cache for several server instances
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache stores byte values under string keys.
type Cache interface {
	// Get returns the value for key. A missing or expired key is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
