package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
)

// CredentialVerifier checks a username/password against the account
// store and returns the account identifier on success.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// BcryptVerifier implements CredentialVerifier over an account
// repository with bcrypt password hashes.
type BcryptVerifier struct {
	accounts domain.AccountRepository
	cost     int
}

// NewBcryptVerifier creates a verifier. cost <= 0 selects
// bcrypt.DefaultCost for the Hash helper.
func NewBcryptVerifier(accounts domain.AccountRepository, cost int) *BcryptVerifier {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{
		accounts: accounts,
		cost:     cost,
	}
}

// Verify resolves the username and compares the password against the
// stored hash. Unknown users and wrong passwords produce the same
// ErrInvalidCredentials.
func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (string, error) {
	account, err := v.accounts.FindByUsername(ctx, username)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", errors.ErrInvalidCredentials
	}
	return account.ID, nil
}

// Hash generates a bcrypt hash for a new password.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

var _ CredentialVerifier = (*BcryptVerifier)(nil)
