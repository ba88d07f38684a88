package domain

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/mathiasquintero/Vaporized/errors"
)

// tokenBytes is the entropy of a single token before encoding. 32 bytes
// encode to 43 characters of URL-safe base64.
const tokenBytes = 32

// TokenPair is an issued access/refresh token pair. A pair is immutable
// once minted; refreshing produces a brand-new pair and never mutates a
// stored one.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope,omitempty"`
	AccountID    string    `json:"account_id"`
}

// TokenResponse is the wire representation of a pair, per RFC 6749 §5.1.
// ExpiresIn is the remaining lifetime in minutes at render time.
type TokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Mint creates a new pair with two independent secure-random tokens,
// expiring ttl from now. Scope and AccountID are carried verbatim.
func Mint(scope, accountID string, ttl time.Duration) TokenPair {
	return TokenPair{
		AccessToken:  newToken(),
		RefreshToken: newToken(),
		ExpiresAt:    time.Now().Add(ttl),
		Scope:        scope,
		AccountID:    accountID,
	}
}

func newToken() string {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		// An unreadable entropy source is not something we can serve
		// tokens without.
		panic("token generation: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Valid reports whether the pair carries both token strings. The zero
// TokenPair is not valid.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// Expired reports whether the access token is past its expiry.
func (p TokenPair) Expired() bool {
	return !p.ExpiresAt.After(time.Now())
}

// Refresh validates the presented refresh token against the pair and, on
// match, mints a replacement pair carrying the same scope and account.
// The new pair is not persisted here; that is the session layer's job.
func (p TokenPair) Refresh(presented string, ttl time.Duration) (TokenPair, error) {
	if presented == "" || presented != p.RefreshToken {
		return TokenPair{}, errors.ErrInvalidCredentials
	}
	return Mint(p.Scope, p.AccountID, ttl), nil
}

// Response renders the pair for the wire. The remaining lifetime is
// computed at render time, not mint time, so a pair re-rendered later
// reports what is actually left.
func (p TokenPair) Response() TokenResponse {
	remaining := int(time.Until(p.ExpiresAt).Minutes())
	if remaining < 0 {
		remaining = 0
	}
	return TokenResponse{
		TokenType:    "bearer",
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    remaining,
	}
}
