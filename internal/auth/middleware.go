package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "motorlog/internal/errors"
	"motorlog/internal/repository"
)

const (
	// TokenCookieName is the cookie carrying the session token for browser flows.
	TokenCookieName = "token"
	// TokenLookup accepts the token from the Authorization header or the cookie.
	TokenLookup = "header:Authorization:Bearer ,cookie:" + TokenCookieName

	claimsContextKey   = "user"
	identityContextKey = "identity"
)

// TokenGuard returns middleware that extracts and verifies the session token.
// Verified claims are stored in the request context for IdentityLoader.
func TokenGuard(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: TokenLookup,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			appErr := apperrors.ErrInvalidToken
			if errors.Is(err, echojwt.ErrJWTMissing) {
				appErr = apperrors.ErrNoToken
			}
			httpErr := apperrors.MapErrorToHTTP(appErr)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// IdentityLoader returns middleware that resolves verified claims to an
// Identity and confirms the user record still exists. Tokens issued before a
// user was deleted are rejected here.
func IdentityLoader(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return unauthorized(apperrors.ErrNoToken)
			}

			identity, err := claims.Identity()
			if err != nil {
				return unauthorized(apperrors.ErrInvalidToken)
			}

			if _, err := userRepo.FindByID(c.Request().Context(), identity.UserID); err != nil {
				return unauthorized(apperrors.ErrUnauthorized)
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity returns the authenticated identity stored by IdentityLoader.
func CurrentIdentity(c echo.Context) (Identity, error) {
	identity, ok := c.Get(identityContextKey).(Identity)
	if !ok {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return identity, nil
}

func unauthorized(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
