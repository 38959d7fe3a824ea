package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type PrescriptionHandler struct {
	prescriptions ports.PrescriptionService
}

func NewPrescriptionHandler(prescriptions ports.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions}
}

type prescriptionItemRequest struct {
	InventoryID string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type createPrescriptionRequest struct {
	PatientID   string                    `json:"patient_id" validate:"required"`
	DoctorID    string                    `json:"doctor_id"`
	Medications []prescriptionItemRequest `json:"medications" validate:"required,min=1,dive"`
	Notes       string                    `json:"notes"`
}

// List returns the prescriptions visible to the caller's role.
//
// @Summary      List prescriptions
// @Tags         prescriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Prescription
// @Router       /prescriptions [get]
func (h *PrescriptionHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	prescriptions, err := h.prescriptions.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prescriptions)
}

// Create writes a new prescription.
//
// @Summary      Create a prescription
// @Tags         prescriptions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createPrescriptionRequest  true  "Prescription details"
// @Success      201   {object}  domain.Prescription
// @Failure      400   {object}  map[string]string
// @Router       /prescriptions [post]
func (h *PrescriptionHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createPrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	medications := make([]domain.PrescriptionItem, 0, len(req.Medications))
	for _, m := range req.Medications {
		medications = append(medications, domain.PrescriptionItem{
			InventoryID: m.InventoryID,
			Name:        m.Name,
			Quantity:    m.Quantity,
		})
	}

	prescription, err := h.prescriptions.Create(c.Request().Context(), sess, ports.CreatePrescriptionInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Medications: medications,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, prescription)
}

// Fill marks a prescription filled and decrements stock.
//
// @Summary      Fill a prescription
// @Tags         prescriptions
// @Security     BearerAuth
// @Param        id  path  string  true  "Prescription id"
// @Success      204  "no content"
// @Failure      500  {object}  map[string]string  "partial write: fill committed, stock decrement failed"
// @Router       /prescriptions/{id}/fill [put]
func (h *PrescriptionHandler) Fill(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.prescriptions.Fill(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
