package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Stats returns the dashboard statistics for the caller's role. The shape
// of the response depends on the role behind the token.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  any
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var stats any
	switch sess.Role {
	case domain.RoleAdmin:
		stats, err = h.dashboards.AdminStats(ctx, sess)
	case domain.RoleDoctor:
		stats, err = h.dashboards.DoctorStats(ctx, sess)
	case domain.RolePatient:
		stats, err = h.dashboards.PatientStats(ctx, sess)
	case domain.RolePharmacist:
		stats, err = h.dashboards.PharmacistStats(ctx, sess)
	default:
		return domain.ErrInvalidRole
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
