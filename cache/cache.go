package cache

import (
	"context"
	"time"
)

// Cache is a string-keyed blob cache. Implementations are remote or
// in-process stores with best-effort persistence: no ordering between
// keys, no transactions, no atomic multi-key operations.
type Cache interface {
	// Get returns the value stored at key, or ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value at key. A positive ttl bounds the entry's
	// lifetime; zero means no cache-side expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
