package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

type ScheduleHandler struct {
	schedules ports.ScheduleService
}

func NewScheduleHandler(schedules ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

type createScheduleRequest struct {
	DoctorID     string    `json:"doctor_id"`
	ScheduleDate time.Time `json:"schedule_date" validate:"required"`
	StartTime    string    `json:"start_time" validate:"required"`
	EndTime      string    `json:"end_time" validate:"required"`
	IsAvailable  bool      `json:"is_available"`
}

// List returns the schedule entries visible to the caller's role.
//
// @Summary      List doctor schedules
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.ScheduleEntry
// @Router       /schedules [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	entries, err := h.schedules.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Create adds an availability window.
//
// @Summary      Create a schedule entry
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createScheduleRequest  true  "Schedule details"
// @Success      201   {object}  domain.ScheduleEntry
// @Failure      400   {object}  map[string]string
// @Router       /schedules [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.schedules.Create(c.Request().Context(), sess, ports.CreateScheduleInput{
		DoctorID:     req.DoctorID,
		ScheduleDate: req.ScheduleDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}
