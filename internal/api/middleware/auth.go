package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// SessionKey is the echo context key the resolved session lives under.
const SessionKey = "session"

// Auth resolves the bearer token against the session registry and injects
// the session into context. The token is the opaque login marker, not a
// signed credential: possession of a token the registry knows is the whole
// check.
func Auth(tokens ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := parts[1]

			// Structural check first; garbage never reaches the registry.
			if _, _, _, err := domain.DecodeSessionToken(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			rec, err := tokens.Get(c.Request().Context(), token)
			if err != nil || rec == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := rec.Session()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}
