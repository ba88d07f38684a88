package services

import (
	"context"
	"time"

	"github.com/mathiasquintero/Vaporized/cache"
	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
	"github.com/mathiasquintero/Vaporized/internal/metrics"
)

// Realm decides whether a presented credential is currently valid. It
// holds no state of its own; everything lives in the token store. On a
// refresh grant it mints the replacement pair but does not persist it;
// persistence stays with the SessionManager.
type Realm struct {
	store      *cache.TokenStore
	refreshTTL time.Duration
}

// NewRealm creates a Realm. refreshTTL is the access-token lifetime
// granted to pairs minted through the refresh path.
func NewRealm(store *cache.TokenStore, refreshTTL time.Duration) *Realm {
	return &Realm{
		store:      store,
		refreshTTL: refreshTTL,
	}
}

// Authenticate runs one authentication attempt over the closed set of
// credential shapes.
func (r *Realm) Authenticate(ctx context.Context, cred domain.Credential) (domain.TokenPair, error) {
	switch c := cred.(type) {
	case domain.RefreshIdentifier:
		return r.refresh(ctx, c.Token)

	case domain.LiveTokenPair:
		if c.Pair.Expired() {
			return domain.TokenPair{}, errors.ErrExpiredCredentials
		}
		return c.Pair, nil

	default:
		return domain.TokenPair{}, errors.ErrUnsupportedCredential
	}
}

func (r *Realm) refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	pair, ok, err := r.store.GetByKey(ctx, refreshToken)
	if err != nil || !ok {
		return domain.TokenPair{}, errors.ErrInvalidCredentials
	}

	// Passing the looked-up string back through the pair keeps a single
	// code path validating refresh tokens; it can only fail if the
	// stored entry no longer matches its own key.
	next, err := pair.Refresh(refreshToken, r.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	metrics.TokensRefreshedTotal.Inc()
	return next, nil
}

// Register always fails: identity creation does not go through the
// realm, it happens in the account store behind the password grant.
func (r *Realm) Register(ctx context.Context) error {
	return errors.ErrUnsupportedCredential
}
