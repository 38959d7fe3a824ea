package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/well2nest/hospital-system/internal/core/ports"
)

type BillingHandler struct {
	billing ports.BillingService
}

func NewBillingHandler(billing ports.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

type createInvoiceRequest struct {
	PatientID     string    `json:"patient_id" validate:"required"`
	AppointmentID string    `json:"appointment_id"`
	TotalAmount   float64   `json:"total_amount" validate:"required,gt=0"`
	DueDate       time.Time `json:"due_date"`
}

type recordPaymentRequest struct {
	InvoiceID     string  `json:"invoice_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

// Invoices lists the invoices visible to the caller's role.
//
// @Summary      List invoices
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Invoice
// @Router       /invoices [get]
func (h *BillingHandler) Invoices(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	invoices, err := h.billing.Invoices(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Transactions lists the payments visible to the caller's role.
//
// @Summary      List transactions
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /transactions [get]
func (h *BillingHandler) Transactions(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	transactions, err := h.billing.Transactions(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactions)
}

// CreateInvoice raises an invoice outside the appointment flow.
//
// @Summary      Create an invoice
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  map[string]string
// @Router       /invoices [post]
func (h *BillingHandler) CreateInvoice(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invoice, err := h.billing.CreateInvoice(c.Request().Context(), sess, ports.CreateInvoiceInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		TotalAmount:   req.TotalAmount,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invoice)
}

// RecordPayment records a payment and marks its invoice paid.
//
// @Summary      Record a payment
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Transaction
// @Failure      500   {object}  map[string]string  "partial write: payment committed, invoice update failed"
// @Router       /payments [post]
func (h *BillingHandler) RecordPayment(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	transaction, err := h.billing.RecordPayment(c.Request().Context(), sess, ports.RecordPaymentInput{
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transaction)
}
