package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/api/metrics"
	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenStore
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenStore) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin doctor patient pharmacist"`
}

type loginResponse struct {
	Token string           `json:"token"`
	Role  domain.Role      `json:"role"`
	User  *domain.Identity `json:"user"`
}

// Login authenticates against the collection backing the requested role and
// returns the opaque session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(req.Role, "success").Inc()

	rec, err := domain.NewSessionRecord(*sess.Identity, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := h.tokens.Put(c.Request().Context(), rec); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: rec.Token, Role: sess.Role, User: sess.Identity})
}

// Logout revokes the caller's token and clears the local session. Always
// succeeds, token known or not.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "no content"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := bearerToken(c); token != "" {
		_ = h.tokens.Delete(c.Request().Context(), token)
	}
	h.authService.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's current session.
//
// @Summary      Current session
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

func bearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
