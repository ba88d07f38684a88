package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathiasquintero/Vaporized/domain"
)

// recordingCache wraps a Cache and records the order of Set keys.
type recordingCache struct {
	Cache
	setKeys []string
}

func (r *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.setKeys = append(r.setKeys, key)
	return r.Cache.Set(ctx, key, value, ttl)
}

func newTestStore(t *testing.T) (*TokenStore, *MemoryCache) {
	t.Helper()
	mem := NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	return NewTokenStore(mem, time.Hour), mem
}

func TestTokenStorePutMakesPairReachableUnderBothKeys(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	pair := domain.Mint("read", "account-1", time.Hour)
	require.NoError(t, store.Put(ctx, pair))

	byAccess, ok, err := store.GetByKey(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, ok)

	byRefresh, ok, err := store.GetByKey(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, pair.AccessToken, byAccess.AccessToken)
	assert.Equal(t, byAccess, byRefresh)
	assert.Equal(t, pair.AccountID, byAccess.AccountID)
	assert.Equal(t, pair.Scope, byAccess.Scope)
	assert.True(t, pair.ExpiresAt.Equal(byAccess.ExpiresAt))
}

func TestTokenStorePutWritesRefreshKeyFirst(t *testing.T) {
	mem := NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	rec := &recordingCache{Cache: mem}
	store := NewTokenStore(rec, time.Hour)

	pair := domain.Mint("", "acc", time.Hour)
	require.NoError(t, store.Put(context.Background(), pair))

	require.Len(t, rec.setKeys, 2)
	assert.Equal(t, pair.RefreshToken, rec.setKeys[0])
	assert.Equal(t, pair.AccessToken, rec.setKeys[1])
}

func TestTokenStoreGetByKeyMiss(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.GetByKey(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStoreTreatsCorruptEntryAsMiss(t *testing.T) {
	store, mem := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "broken-key", []byte("{not json"), time.Hour))

	_, ok, err := store.GetByKey(ctx, "broken-key")
	require.NoError(t, err)
	assert.False(t, ok)

	// The corrupt blob is dropped so it cannot shadow the key.
	_, ok, err = mem.Get(ctx, "broken-key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenStoreRemoveDeletesBothKeysAndIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	pair := domain.Mint("read", "account-1", time.Hour)
	require.NoError(t, store.Put(ctx, pair))

	require.NoError(t, store.Remove(ctx, pair))

	_, ok, _ := store.GetByKey(ctx, pair.AccessToken)
	assert.False(t, ok)
	_, ok, _ = store.GetByKey(ctx, pair.RefreshToken)
	assert.False(t, ok)

	// Removing an already-removed pair is not an error.
	require.NoError(t, store.Remove(ctx, pair))
}

func TestTokenStoreAccessKeyOutlivesAccessExpiry(t *testing.T) {
	// The store keys both entries with the refresh TTL, so an expired
	// access token still resolves to its pair and can be rejected as
	// expired instead of unknown.
	store, _ := newTestStore(t)
	ctx := context.Background()

	pair := domain.Mint("read", "account-1", -time.Minute)
	require.NoError(t, store.Put(ctx, pair))

	got, ok, err := store.GetByKey(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Expired())
}
