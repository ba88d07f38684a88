package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
)

func newTestSessionManager(t *testing.T, accounts domain.AccountRepository) *SessionManager {
	t.Helper()
	store := newTestStore(t)
	return NewSessionManager(store, NewRealm(store, time.Hour), accounts)
}

func TestSessionManagerRestore(t *testing.T) {
	account := &domain.Account{ID: "account-1", Username: "alice"}
	sm := newTestSessionManager(t, newFakeAccounts(account))
	ctx := context.Background()

	pair := domain.Mint("read", account.ID, time.Hour)
	handle := sm.Create(ctx, pair)
	require.Equal(t, pair.AccessToken, handle)

	got, err := sm.Restore(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestSessionManagerRestoreUnknownBearer(t *testing.T) {
	sm := newTestSessionManager(t, newFakeAccounts())

	_, err := sm.Restore(context.Background(), "no-such-bearer")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentifier)
}

func TestSessionManagerRestoreExpiredPair(t *testing.T) {
	account := &domain.Account{ID: "account-1", Username: "alice"}
	sm := newTestSessionManager(t, newFakeAccounts(account))
	ctx := context.Background()

	pair := domain.Mint("read", account.ID, -time.Minute)
	sm.Create(ctx, pair)

	_, err := sm.Restore(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, errors.ErrExpiredCredentials)
}

func TestSessionManagerRestoreMissingAccount(t *testing.T) {
	sm := newTestSessionManager(t, newFakeAccounts())
	ctx := context.Background()

	pair := domain.Mint("read", "ghost", time.Hour)
	sm.Create(ctx, pair)

	_, err := sm.Restore(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestSessionManagerCreateInvalidPair(t *testing.T) {
	sm := newTestSessionManager(t, newFakeAccounts())

	assert.Equal(t, "", sm.Create(context.Background(), domain.TokenPair{}))
}

func TestSessionManagerDestroyIsIdempotent(t *testing.T) {
	account := &domain.Account{ID: "account-1", Username: "alice"}
	store := newTestStore(t)
	sm := NewSessionManager(store, NewRealm(store, time.Hour), newFakeAccounts(account))
	ctx := context.Background()

	pair := domain.Mint("read", account.ID, time.Hour)
	sm.Create(ctx, pair)

	sm.Destroy(ctx, pair.AccessToken)

	_, ok, _ := store.GetByKey(ctx, pair.AccessToken)
	assert.False(t, ok)
	_, ok, _ = store.GetByKey(ctx, pair.RefreshToken)
	assert.False(t, ok)

	// A second destroy, and destroying something that never existed,
	// are both no-ops.
	sm.Destroy(ctx, pair.AccessToken)
	sm.Destroy(ctx, "never-existed")
}

func TestSessionManagerDestroyByRefreshToken(t *testing.T) {
	account := &domain.Account{ID: "account-1", Username: "alice"}
	store := newTestStore(t)
	sm := NewSessionManager(store, NewRealm(store, time.Hour), newFakeAccounts(account))
	ctx := context.Background()

	pair := domain.Mint("read", account.ID, time.Hour)
	sm.Create(ctx, pair)

	// Either key tears down the whole session.
	sm.Destroy(ctx, pair.RefreshToken)

	_, ok, _ := store.GetByKey(ctx, pair.AccessToken)
	assert.False(t, ok)
}
