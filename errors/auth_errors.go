package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authentication core. Handlers translate these
// into OAuth2Error responses at the HTTP boundary; nothing below the
// boundary formats HTTP bodies.
var (
	// ErrInvalidCredentials covers bad passwords, unknown refresh tokens
	// and refresh tokens that do not match their stored pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials is returned for an access token past its expiry.
	ErrExpiredCredentials = errors.New("expired credentials")

	// ErrInvalidIdentifier is returned when a bearer string has no entry
	// in the token store.
	ErrInvalidIdentifier = errors.New("invalid session identifier")

	// ErrUnsupportedCredential is returned for credential shapes the realm
	// does not handle, including any registration attempt.
	ErrUnsupportedCredential = errors.New("unsupported credential type")

	// ErrAccountNotFound is returned by account repositories on a miss.
	ErrAccountNotFound = errors.New("account not found")
)

// OAuth2Error represents a standardized OAuth 2.0 error response body.
type OAuth2Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Standard OAuth2 error codes
const (
	InvalidRequest       = "invalid_request"
	InvalidGrant         = "invalid_grant"
	UnsupportedGrantType = "unsupported_grant_type"
	ServerError          = "server_error"
)

func NewInvalidRequest(description string) *OAuth2Error {
	return &OAuth2Error{
		Code:        InvalidRequest,
		Description: description,
	}
}

func NewInvalidGrant(description string) *OAuth2Error {
	return &OAuth2Error{
		Code:        InvalidGrant,
		Description: description,
	}
}

func NewUnsupportedGrantType() *OAuth2Error {
	return &OAuth2Error{
		Code:        UnsupportedGrantType,
		Description: "The authorization grant type is not supported",
	}
}

func NewServerError(description string) *OAuth2Error {
	return &OAuth2Error{
		Code:        ServerError,
		Description: description,
	}
}
