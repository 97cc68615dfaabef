package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/contracts"
)

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "list_messages", err)
		return
	}
	writeSuccess(w, http.StatusOK, "", messages)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	var req contracts.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", requestIDFromContext(r.Context()))
		return
	}

	message, err := h.service.PostMessage(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"), application.PostMessageInput{
		Content: req.Content,
	})
	if err != nil {
		h.writeDomainError(w, r, "post_message", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "message sent", message)
}

func (h *Handler) markMessagesRead(w http.ResponseWriter, r *http.Request) {
	marked, err := h.service.MarkClientMessagesRead(r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "mark_messages_read", err)
		return
	}
	writeSuccess(w, http.StatusOK, "messages marked read", map[string]int64{"marked": marked})
}
