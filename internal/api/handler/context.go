package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/api/middleware"
	"github.com/well2nest/hospital-system/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// fast-fails before any service call: an anonymous session here means the
// middleware did not run or the token resolved to nothing.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(domain.Session)
	if sess.IsAnonymous() {
		return domain.Anonymous, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return sess, nil
}
