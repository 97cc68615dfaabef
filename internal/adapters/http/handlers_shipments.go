package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/contracts"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	estimatedDelivery, err := parseTimePtr("estimated_delivery", req.EstimatedDelivery)
	if err != nil {
		h.writeDomainError(w, r, "create_shipment", err)
		return
	}
	createdAt, err := parseTimePtr("created_at", req.CreatedAt)
	if err != nil {
		h.writeDomainError(w, r, "create_shipment", err)
		return
	}

	shipment, err := h.service.CreateShipment(r.Context(), actorFromContext(r.Context()), application.CreateShipmentInput{
		SenderInfo:         req.SenderInfo,
		ReceiverInfo:       req.ReceiverInfo,
		Origin:             req.Origin,
		Destination:        req.Destination,
		CustomerEmail:      req.CustomerEmail,
		ProductDescription: req.ProductDescription,
		ImageURLs:          req.ImageURLs,
		EstimatedDelivery:  estimatedDelivery,
		CreatedAt:          createdAt,
	})
	if err != nil {
		h.writeDomainError(w, r, "create_shipment", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "shipment created", shipment)
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.ListShipments(r.Context(), actorFromContext(r.Context()), r.URL.Query().Get("view_as"))
	if err != nil {
		h.writeDomainError(w, r, "list_shipments", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", shipments)
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	shipment, events, err := h.service.GetShipment(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "get_shipment", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", struct {
		Shipment domain.Shipment        `json:"shipment"`
		Events   []domain.ShipmentEvent `json:"events"`
	}{Shipment: shipment, Events: events})
}

func (h *Handler) updateShipment(w http.ResponseWriter, r *http.Request) {
	var req contracts.UpdateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	in := application.UpdateShipmentInput{
		Origin:             req.Origin,
		Destination:        req.Destination,
		SenderInfo:         req.SenderInfo,
		ReceiverInfo:       req.ReceiverInfo,
		CustomerEmail:      req.CustomerEmail,
		ProductDescription: req.ProductDescription,
		TrackingNumber:     req.TrackingNumber,
		ImageURLs:          req.ImageURLs,
	}
	if req.Status != nil {
		status := domain.ShipmentStatus(*req.Status)
		in.Status = &status
	}
	if req.EstimatedDelivery != nil {
		t, err := parseTimePtr("estimated_delivery", *req.EstimatedDelivery)
		if err != nil {
			h.writeDomainError(w, r, "update_shipment", err)
			return
		}
		in.EstimatedDelivery = t
	}
	if req.CreatedAt != nil {
		t, err := parseTimePtr("created_at", *req.CreatedAt)
		if err != nil {
			h.writeDomainError(w, r, "update_shipment", err)
			return
		}
		in.CreatedAt = t
	}

	shipment, err := h.service.UpdateShipment(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeDomainError(w, r, "update_shipment", err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment updated", shipment)
}

func (h *Handler) deleteShipment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShipment(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, "delete_shipment", err)
		return
	}
	writeSuccess(w, http.StatusOK, "shipment deleted", nil)
}

func (h *Handler) publicTracking(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.PublicTracking(r.Context(), chi.URLParam(r, "trackingNumber"))
	if err != nil {
		h.writeDomainError(w, r, "public_tracking", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", view)
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context(), actorFromContext(r.Context()), r.URL.Query().Get("view_as"))
	if err != nil {
		h.writeDomainError(w, r, "dashboard_stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", stats)
}

func (h *Handler) dashboardInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.service.UnreadInquiries(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		h.writeDomainError(w, r, "dashboard_inquiries", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", inquiries)
}
