package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type updateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Settings lists all site settings.
//
// @Summary      List site settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.SiteSetting
// @Router       /settings [get]
func (h *SettingsHandler) Settings(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	settings, err := h.settings.Settings(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSetting changes the value of one setting key.
//
// @Summary      Update a site setting
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Param        key   path  string                true  "Setting key"
// @Param        body  body  updateSettingRequest  true  "New value"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /settings/{key} [put]
func (h *SettingsHandler) UpdateSetting(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "setting key is required")
	}

	var req updateSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settings.UpdateSetting(c.Request().Context(), sess, key, req.Value); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminUsers lists administrator accounts.
//
// @Summary      List administrator accounts
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /admin-users [get]
func (h *SettingsHandler) AdminUsers(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	admins, err := h.settings.AdminUsers(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// SetAdminActive toggles an administrator account.
//
// @Summary      Activate or deactivate an administrator
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string            true  "Administrator id"
// @Param        body  body  setActiveRequest  true  "Active flag"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /admin-users/{id}/active [put]
func (h *SettingsHandler) SetAdminActive(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "administrator id is required")
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settings.SetAdminActive(c.Request().Context(), sess, id, *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
