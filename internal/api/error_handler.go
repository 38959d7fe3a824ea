package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/api/metrics"
	"github.com/well2nest/hospital-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	// CreatedID names the row an earlier step committed when a write
	// sequence failed partway. Empty for clean failures.
	CreatedID string `json:"created_id,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces partial writes distinctly, with the committed row id.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// A partial write is not a clean failure: the first effect happened.
	var pw *domain.PartialWriteFailure
	if errors.As(err, &pw) {
		metrics.PartialWritesTotal.WithLabelValues(pw.Operation).Inc()
		log.Error().Err(pw.Err).Str("operation", pw.Operation).Str("created_id", pw.CreatedID).Msg("partial write")
		return http.StatusInternalServerError, errorResponse{Error: pw.Error(), CreatedID: pw.CreatedID}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Deliberately generic: wrong password, unknown email and
		// inactive account all read the same.
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, errorResponse{Error: "invalid role"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "record not found"}
	}

	// Gateway failures mean the remote store misbehaved, not us.
	var dae *domain.DataAccessError
	if errors.As(err, &dae) {
		log.Error().Err(dae.Err).Str("collection", dae.Collection).Str("operation", dae.Operation).Msg("gateway error")
		return http.StatusBadGateway, errorResponse{Error: "data access failed"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
