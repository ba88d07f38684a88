package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mathiasquintero/Vaporized/domain"
)

// TokenStore persists token pairs in a Cache under two independent keys:
// the access token string and the refresh token string. The same entry
// must be reachable through either key.
//
// The two writes (and the two deletes) are separate cache operations.
// The backing cache offers no multi-key atomicity, so a concurrent
// reader can observe a pair under one key and not yet the other. The
// window is bounded by a single round trip; the refresh-token key is
// written first because the refresh path is the rarer, more sensitive
// one. No atomicity is claimed.
type TokenStore struct {
	cache Cache
	ttl   time.Duration
}

// NewTokenStore creates a store on the given cache. ttl bounds how long
// entries stay resolvable; it should be the refresh-token lifetime, not
// the access-token one, so an expired access token still resolves to its
// pair and can be rejected as expired rather than unknown.
func NewTokenStore(c Cache, ttl time.Duration) *TokenStore {
	return &TokenStore{
		cache: c,
		ttl:   ttl,
	}
}

// Put writes the serialized pair under both of its keys.
func (s *TokenStore) Put(ctx context.Context, pair domain.TokenPair) error {
	blob, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, pair.RefreshToken, blob, s.ttl); err != nil {
		return err
	}
	return s.cache.Set(ctx, pair.AccessToken, blob, s.ttl)
}

// GetByKey resolves a pair by either of its tokens. Misses and corrupt
// entries both come back as absent; a corrupt entry is dropped so it
// cannot shadow the key.
func (s *TokenStore) GetByKey(ctx context.Context, key string) (domain.TokenPair, bool, error) {
	blob, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return domain.TokenPair{}, false, err
	}
	if !ok {
		return domain.TokenPair{}, false, nil
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(blob, &pair); err != nil {
		log.Warn().Str("key", truncate(key)).Err(err).Msg("dropping corrupt token entry")
		_ = s.cache.Delete(ctx, key)
		return domain.TokenPair{}, false, nil
	}
	return pair, true, nil
}

// Remove deletes both of the pair's keys. Absent keys are not an error,
// so Remove is idempotent.
func (s *TokenStore) Remove(ctx context.Context, pair domain.TokenPair) error {
	if err := s.cache.Delete(ctx, pair.AccessToken); err != nil {
		return err
	}
	return s.cache.Delete(ctx, pair.RefreshToken)
}

func truncate(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
