// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte-oriented key/value store with optional expiry. Three
// backends are provided:
//
//   - [FileCache] persists entries under a directory (the CLI default,
//     located in the XDG cache directory).
//   - [MemoryCache] keeps entries in process memory.
//   - [NullCache] stores nothing, which disables caching.
//
// Keys are produced by a [Keyer] so that every entry is addressed by a
// hash of everything that influences it.
package cache

import (
	"context"
	"time"
)

// Expiry applied to cached entries. Layouts are pure functions of their
// inputs, so they only expire to bound disk usage.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the value for key. A miss is reported with ok == false
	// and a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
