package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "emsapi/internal/errors"
)

const (
	claimsContextKey   = "session_claims"
	identityContextKey = "identity"
)

// RequireSession verifies the session cookie and resolves it to an
// Identity, stored in both the echo context and the request context.
// Missing, forged, expired or destroyed sessions yield 401.
func RequireSession(m *SessionManager, cookieName string) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + cookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return m.tokens.Parse(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrUnauthorized
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return apperrors.ErrUnauthorized
			}
			id, err := m.Lookup(c.Request().Context(), claims)
			if errors.Is(err, ErrSessionNotFound) {
				return apperrors.ErrUnauthorized
			}
			if err != nil {
				return apperrors.Internal("resolve session", err)
			}

			c.Set(identityContextKey, id)
			c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
			return next(c)
		})
	}
}

// CurrentIdentity returns the identity set by RequireSession.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityContextKey).(Identity)
	if ok {
		return id, true
	}
	return IdentityFrom(c.Request().Context())
}
