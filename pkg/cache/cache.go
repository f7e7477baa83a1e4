// Package cache provides the caching layer shared by the catalog clients and
// the visualization pipeline.
//
// Three stores implement the Cache interface:
//   - FileCache: directory-backed, for CLI usage (XDG cache dir)
//   - RedisCache: redis-backed, for shared or long-running deployments
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are produced by a Keyer so every consumer derives them the same way.
// Graph and artifact keys hash their inputs (root courses, filter options,
// the style fingerprint), which makes a style change invalidate previously
// rendered artifacts automatically.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
