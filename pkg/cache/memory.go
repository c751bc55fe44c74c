package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
)

// minMemoryBytes is the smallest size freecache accepts.
const minMemoryBytes = 512 * 1024

// MemoryCache is a bounded in-process cache backed by freecache.
// Entries beyond the size limit are evicted approximately LRU.
type MemoryCache struct {
	c *freecache.Cache
}

// NewMemoryCache creates an in-process cache of roughly sizeMB megabytes.
func NewMemoryCache(sizeMB int) Cache {
	size := max(sizeMB*1024*1024, minMemoryBytes)
	return &MemoryCache{c: freecache.NewCache(size)}
}

// Get retrieves a value from the cache.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := m.c.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. ttl is rounded up to whole seconds.
func (m *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	seconds := 0
	if ttl > 0 {
		seconds = int((ttl + time.Second - 1) / time.Second)
	}
	return m.c.Set([]byte(key), data, seconds)
}

// Delete removes a value from the cache.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Del([]byte(key))
	return nil
}

// Close clears the cache.
func (m *MemoryCache) Close() error {
	m.c.Clear()
	return nil
}

// Len returns the number of entries.
func (m *MemoryCache) Len() int64 {
	return m.c.EntryCount()
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
