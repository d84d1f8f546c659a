package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/service"
	"github.com/rs/zerolog/log"
)

// NotifyHandler serves the email and webhook delivery stubs
type NotifyHandler struct {
	notifier service.Notifier
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(notifier service.Notifier) *NotifyHandler {
	return &NotifyHandler{notifier: notifier}
}

// SendEmail handles POST /api/send-email
func (h *NotifyHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.accept(w, r, domain.EventEmailRequested); !ok {
		return
	}
	response.Raw(w, http.StatusOK, map[string]any{"ok": true})
}

// Webhook handles POST /api/webhook and echoes the payload back
func (h *NotifyHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, ok := h.accept(w, r, domain.EventWebhook)
	if !ok {
		return
	}
	response.Raw(w, http.StatusOK, map[string]any{"ok": true, "received": body})
}

func (h *NotifyHandler) accept(w http.ResponseWriter, r *http.Request, eventType string) (any, bool) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		publicFailure(w, msgInvalidPayload)
		return nil, false
	}

	event := domain.Event{Type: eventType, Payload: body, OccurredAt: time.Now().UTC()}
	if err := h.notifier.Notify(r.Context(), event); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("stub delivery failed")
	}
	return body, true
}
