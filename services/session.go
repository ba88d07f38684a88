package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mathiasquintero/Vaporized/cache"
	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
	"github.com/mathiasquintero/Vaporized/internal/metrics"
)

// SessionManager binds the token store and the realm together: it turns
// bearer strings into accounts, persists freshly minted pairs under both
// keys, and tears sessions down by identifier.
type SessionManager struct {
	store    *cache.TokenStore
	realm    *Realm
	accounts domain.AccountRepository
}

func NewSessionManager(store *cache.TokenStore, realm *Realm, accounts domain.AccountRepository) *SessionManager {
	return &SessionManager{
		store:    store,
		realm:    realm,
		accounts: accounts,
	}
}

// Restore resolves a bearer string into the account it represents. An
// unknown bearer fails with ErrInvalidIdentifier; a known but expired
// one with ErrExpiredCredentials.
func (sm *SessionManager) Restore(ctx context.Context, bearer string) (*domain.Account, error) {
	pair, ok, err := sm.store.GetByKey(ctx, bearer)
	if err != nil || !ok {
		return nil, errors.ErrInvalidIdentifier
	}

	pair, err = sm.realm.Authenticate(ctx, domain.LiveTokenPair{Pair: pair})
	if err != nil {
		return nil, err
	}

	account, err := sm.accounts.FindByID(ctx, pair.AccountID)
	if err != nil {
		// The pair outlived its account; treat it as a dead credential.
		return nil, errors.ErrInvalidCredentials
	}
	return account, nil
}

// Create persists the pair under both of its keys and returns the access
// token as the session handle. Session creation never blocks the
// response pipeline: an invalid pair yields an empty handle and cache
// failures are logged, not surfaced.
func (sm *SessionManager) Create(ctx context.Context, pair domain.TokenPair) string {
	if !pair.Valid() {
		return ""
	}

	if err := sm.store.Put(ctx, pair); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}
	return pair.AccessToken
}

// Destroy removes the session the bearer maps to, if any. Unknown
// bearers and cache hiccups are no-ops; calling Destroy twice is safe.
func (sm *SessionManager) Destroy(ctx context.Context, bearer string) {
	pair, ok, err := sm.store.GetByKey(ctx, bearer)
	if err != nil || !ok {
		return
	}

	if err := sm.store.Remove(ctx, pair); err != nil {
		log.Warn().Err(err).Msg("failed to remove session from store")
		return
	}
	metrics.SessionsDestroyedTotal.Inc()
}
