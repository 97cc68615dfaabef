package http

import (
	"encoding/json"
	"net/http"

	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/contracts"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req contracts.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}

	result, err := h.service.Login(r.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeDomainError(w, r, "login", err)
		return
	}
	writeSuccess(w, http.StatusOK, "login successful", result)
}

// setup provisions the demo admin accounts. Idempotent, intended for
// local and staging environments only.
func (h *Handler) setup(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.Seed(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "setup", err)
		return
	}
	writeSuccess(w, http.StatusOK, "setup complete", admins)
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}

	admin, err := h.service.CreateAdmin(r.Context(), actorFromContext(r.Context()), application.CreateAdminInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.AdminRole(req.Role),
	})
	if err != nil {
		h.writeDomainError(w, r, "create_admin", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "admin created", admin)
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		h.writeDomainError(w, r, "list_admins", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", admins)
}
