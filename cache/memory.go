package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache implements Cache using ttlcache. Suitable for tests and
// single-process deployments.
type MemoryCache struct {
	cache *ttlcache.Cache[string, []byte]
}

// NewMemoryCache creates an in-memory cache with automatic expiry of
// TTL-bounded entries.
func NewMemoryCache() *MemoryCache {
	c := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)

	go c.Start()

	return &MemoryCache{cache: c}
}

// Get implements Cache.Get.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := m.cache.Get(key)
	if item == nil {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

// Set implements Cache.Set.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	m.cache.Set(key, value, ttl)
	return nil
}

// Delete implements Cache.Delete.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Close stops the expiry goroutine.
func (m *MemoryCache) Close() error {
	m.cache.Stop()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
