package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

type AppointmentHandler struct {
	appointments ports.AppointmentService
}

func NewAppointmentHandler(appointments ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

type createAppointmentRequest struct {
	PatientID       string    `json:"patient_id" validate:"required"`
	DoctorID        string    `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Reason          string    `json:"reason" validate:"required"`
	Notes           string    `json:"notes"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled no_show"`
}

// List returns the appointments visible to the caller's role.
//
// @Summary      List appointments
// @Tags         appointments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   domain.Appointment
// @Failure      401  {object}  map[string]string
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	appointments, err := h.appointments.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointments)
}

// Create books an appointment and raises its invoice.
//
// @Summary      Create an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string  "partial write: appointment committed, invoice failed"
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.appointments.Create(c.Request().Context(), sess, ports.CreateAppointmentInput{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appointment)
}

// UpdateStatus moves an appointment into a new status.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string                          true  "Appointment id"
// @Param        body  body  updateAppointmentStatusRequest  true  "New status"
// @Success      204   "no content"
// @Router       /appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.appointments.UpdateStatus(c.Request().Context(), sess, c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
