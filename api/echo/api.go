package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/mathiasquintero/Vaporized/domain"
	"github.com/mathiasquintero/Vaporized/errors"
	"github.com/mathiasquintero/Vaporized/internal/metrics"
	"github.com/mathiasquintero/Vaporized/middleware"
	"github.com/mathiasquintero/Vaporized/services"
)

// GrantType enumeration for the supported OAuth2 grant types.
type GrantType string

const (
	GrantTypePassword     GrantType = "password"
	GrantTypeRefreshToken GrantType = "refresh_token"
)

// AuthAPI holds the dependencies of the token endpoints.
type AuthAPI struct {
	verifier  services.CredentialVerifier
	realm     *services.Realm
	sessions  *services.SessionManager
	accessTTL time.Duration
}

// NewAuthAPI initializes the authentication API. accessTTL is the
// lifetime granted to pairs minted through the password grant.
func NewAuthAPI(
	verifier services.CredentialVerifier,
	realm *services.Realm,
	sessions *services.SessionManager,
	accessTTL time.Duration,
) *AuthAPI {
	return &AuthAPI{
		verifier:  verifier,
		realm:     realm,
		sessions:  sessions,
		accessTTL: accessTTL,
	}
}

// RegisterRoutes registers the token endpoints.
func (a *AuthAPI) RegisterRoutes(e *echo.Echo) {
	e.POST("/oauth2/token", a.TokenHandler)
	e.POST("/oauth2/revoke", a.RevokeHandler)
	e.GET("/oauth2/userinfo", a.UserInfoHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// TokenHandler handles OAuth2 token requests. It dispatches on the
// grant_type form field and returns either a freshly minted token pair
// or a single structured error body; a failed attempt never leaks a
// partial token.
func (a *AuthAPI) TokenHandler(c echo.Context) error {
	grantType := c.FormValue("grant_type")

	var (
		response domain.TokenResponse
		err      error
	)

	switch GrantType(grantType) {
	case GrantTypePassword:
		response, err = a.handlePasswordGrant(c)
	case GrantTypeRefreshToken:
		response, err = a.handleRefreshTokenGrant(c)
	default:
		return c.JSON(http.StatusBadRequest, errors.NewUnsupportedGrantType())
	}

	if err != nil {
		if oauthErr, ok := err.(*errors.OAuth2Error); ok {
			if oauthErr.Code == errors.InvalidRequest {
				return c.JSON(http.StatusBadRequest, oauthErr)
			}
			return c.JSON(http.StatusUnauthorized, oauthErr)
		}

		log.Error().Err(err).Str("grant_type", grantType).Msg("token request failed")

		return c.JSON(http.StatusInternalServerError, errors.NewServerError("Failed to generate token"))
	}

	log.Info().
		Str("grant_type", grantType).
		Int("expires_in", response.ExpiresIn).
		Msg("token pair issued")

	return c.JSON(http.StatusOK, response)
}

func (a *AuthAPI) handlePasswordGrant(c echo.Context) (domain.TokenResponse, error) {
	username := c.FormValue("username")
	password := c.FormValue("password")
	scope := c.FormValue("scope")

	if username == "" || password == "" {
		return domain.TokenResponse{}, errors.NewInvalidRequest("username and password are required")
	}

	ctx := c.Request().Context()

	accountID, err := a.verifier.Verify(ctx, username, password)
	if err != nil {
		metrics.LoginFailureTotal.Inc()
		return domain.TokenResponse{}, errors.NewInvalidGrant("Invalid username or password")
	}

	pair := domain.Mint(scope, accountID, a.accessTTL)
	a.sessions.Create(ctx, pair)

	metrics.LoginSuccessTotal.Inc()
	metrics.TokensIssuedTotal.Inc()

	return pair.Response(), nil
}

func (a *AuthAPI) handleRefreshTokenGrant(c echo.Context) (domain.TokenResponse, error) {
	refreshToken := c.FormValue("refresh_token")
	if refreshToken == "" {
		return domain.TokenResponse{}, errors.NewInvalidRequest("refresh_token is required")
	}

	ctx := c.Request().Context()

	pair, err := a.realm.Authenticate(ctx, domain.RefreshIdentifier{Token: refreshToken})
	if err != nil {
		return domain.TokenResponse{}, errors.NewInvalidGrant("Invalid refresh token")
	}

	// Replace, don't add: the presented token still keys the old pair,
	// so tearing it down removes both stale keys before the new pair
	// goes in.
	a.sessions.Destroy(ctx, refreshToken)
	a.sessions.Create(ctx, pair)

	return pair.Response(), nil
}

// RevokeHandler destroys the session behind the presented token. Per
// RFC 7009 the endpoint returns 200 whether or not the token mapped to
// a live session.
func (a *AuthAPI) RevokeHandler(c echo.Context) error {
	token := c.FormValue("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, errors.NewInvalidRequest("token parameter is required"))
	}

	a.sessions.Destroy(c.Request().Context(), token)

	return c.NoContent(http.StatusOK)
}

// UserInfoHandler returns the account behind the request's bearer token.
// It relies on the Auth middleware having attached a Subject.
func (a *AuthAPI) UserInfoHandler(c echo.Context) error {
	subject, ok := middleware.CurrentSubject(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing_token"})
	}

	account, err := subject.Authenticated(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid_token"})
	}

	return c.JSON(http.StatusOK, account)
}
