package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps entries in process memory. It suits the interactive
// viewer, where one process computes the same layout repeatedly.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. Expired entries are purged
// every cleanup interval; zero disables the janitor.
func NewMemoryCache(cleanup time.Duration) Cache {
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, cleanup)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		c.store.Delete(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.store.Set(key, append([]byte(nil), data...), ttl)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.store.Flush()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
