package middleware

import (
	"context"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
)

type contextKey struct{}

var subjectKey contextKey

// SessionRestorer is the slice of the session manager the middleware
// needs; the Subject resolves accounts through it.
type SessionRestorer interface {
	Restore(ctx context.Context, bearer string) (*domain.Account, error)
}

// Subject is the per-request holder of the bearer string and the lazily
// resolved identity. It lives exactly as long as the request.
type Subject struct {
	bearer   string
	sessions SessionRestorer

	once    sync.Once
	account *domain.Account
	err     error
}

// Bearer returns the raw bearer string, or "" when the request carried
// no Authorization header.
func (s *Subject) Bearer() string {
	return s.bearer
}

// Authenticated resolves the bearer into an account, hitting the token
// store at most once per request. Requests without a bearer fail with
// ErrInvalidIdentifier.
func (s *Subject) Authenticated(ctx context.Context) (*domain.Account, error) {
	s.once.Do(func() {
		if s.bearer == "" {
			s.err = errors.ErrInvalidIdentifier
			return
		}
		s.account, s.err = s.sessions.Restore(ctx, s.bearer)
	})
	return s.account, s.err
}

// Auth returns echo middleware that extracts the bearer token from the
// Authorization header and attaches a Subject to the request context. A
// missing or malformed header is not an error here; resolution failures
// surface only when a downstream handler asks for the identity.
func Auth(sessions SessionRestorer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := &Subject{
				bearer:   bearerToken(c.Request().Header.Get("Authorization")),
				sessions: sessions,
			}

			ctx := context.WithValue(c.Request().Context(), subjectKey, subject)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// SubjectFromContext retrieves the Subject the Auth middleware attached.
func SubjectFromContext(ctx context.Context) (*Subject, bool) {
	subject, ok := ctx.Value(subjectKey).(*Subject)
	return subject, ok
}

// CurrentSubject is SubjectFromContext for echo handlers.
func CurrentSubject(c echo.Context) (*Subject, bool) {
	return SubjectFromContext(c.Request().Context())
}
