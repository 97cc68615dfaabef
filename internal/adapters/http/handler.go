package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

// Handler is the HTTP adapter entrypoint. It owns only the application
// service and the token verifier used by the auth middleware.
type Handler struct {
	service  *application.Service
	verifier ports.TokenVerifier
}

func NewHandler(service *application.Service, verifier ports.TokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	statusCode, code := mapDomainError(err)
	if statusCode >= 500 {
		httpLogger().ErrorContext(r.Context(), "http operation failed",
			"operation", operation,
			"outcome", "failure",
			"status_code", statusCode,
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeError(w, statusCode, code, errorMessage(statusCode, err), requestIDFromContext(r.Context()))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", nil)
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "ready", nil)
}

// parseTimePtr parses an optional RFC3339 timestamp from a request field.
func parseTimePtr(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", domain.ErrInvalidInput, field)
	}
	utc := t.UTC()
	return &utc, nil
}
