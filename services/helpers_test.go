package services

import (
	"context"
	"testing"
	"time"

	"github.com/mathiasquintero/Vaporized/cache"
	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
)

// fakeAccounts is an in-memory domain.AccountRepository for tests.
type fakeAccounts struct {
	byID       map[string]*domain.Account
	byUsername map[string]*domain.Account
}

func newFakeAccounts(accounts ...*domain.Account) *fakeAccounts {
	f := &fakeAccounts{
		byID:       make(map[string]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
	for _, a := range accounts {
		f.byID[a.ID] = a
		f.byUsername[a.Username] = a
	}
	return f
}

func (f *fakeAccounts) Create(_ context.Context, account *domain.Account) error {
	f.byID[account.ID] = account
	f.byUsername[account.Username] = account
	return nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, errors.ErrAccountNotFound
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if a, ok := f.byUsername[username]; ok {
		return a, nil
	}
	return nil, errors.ErrAccountNotFound
}

func newTestStore(t *testing.T) *cache.TokenStore {
	t.Helper()
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	return cache.NewTokenStore(mem, time.Hour)
}
