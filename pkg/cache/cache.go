// Package cache stores generated patterns and laying instructions so that a
// rerun with the same inputs skips the work.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps one JSON file per entry under a directory, for the CLI
//   - [RedisCache] shares entries between server instances
//   - [NullCache] stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer], which hashes every input that affects the cached
// value. Only deterministic results may be cached: a wild bond without a
// fixed seed must bypass the cache.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok == false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default time-to-live values per entry type.
const (
	TTLPattern      = 30 * 24 * time.Hour
	TTLInstructions = 30 * 24 * time.Hour
)
