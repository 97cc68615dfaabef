package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/contracts"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
)

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	timestamp, err := parseTimePtr("timestamp", req.Timestamp)
	if err != nil {
		h.writeDomainError(w, r, "create_event", err)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"), application.CreateEventInput{
		Status:      domain.ShipmentStatus(req.Status),
		Location:    req.Location,
		Description: req.Description,
		Timestamp:   timestamp,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		h.writeDomainError(w, r, "create_event", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "event created", event)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req contracts.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	in := application.EditEventInput{
		Location:    req.Location,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.Status != nil {
		status := domain.ShipmentStatus(*req.Status)
		in.Status = &status
	}
	if req.Timestamp != nil {
		t, err := parseTimePtr("timestamp", *req.Timestamp)
		if err != nil {
			h.writeDomainError(w, r, "update_event", err)
			return
		}
		in.Timestamp = t
	}

	event, err := h.service.EditEvent(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "eventId"), in)
	if err != nil {
		h.writeDomainError(w, r, "update_event", err)
		return
	}
	writeSuccess(w, http.StatusOK, "event updated", event)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "list_events", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", events)
}
