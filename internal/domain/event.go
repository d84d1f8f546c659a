package domain

import "time"

// Event is handed to the notifier for outbound delivery
type Event struct {
	Type        string    `json:"type"`
	WorkspaceID string    `json:"workspace_id,omitempty"`
	Payload     any       `json:"payload,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated = "booking_created"
	EventContactCreated = "contact_created"
	EventEmailRequested = "email_requested"
	EventWebhook        = "webhook"
)
