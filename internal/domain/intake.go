package domain

import (
	"context"
	"time"
)

// ContactSubmission is the public contact form payload
type ContactSubmission struct {
	WorkspaceID   string `json:"wid"`
	WorkspaceSlug string `json:"ws"`
	Name          string `json:"name" validate:"required"`
	EmailOrPhone  string `json:"emailOrPhone" validate:"required"`
	Message       string `json:"message"`
}

// BookingSubmission is the public booking form payload
type BookingSubmission struct {
	WorkspaceID   string `json:"wid"`
	WorkspaceSlug string `json:"ws"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Service       string `json:"service"`
	StartAt       string `json:"startAt" validate:"required"`
}

// IntakeStore performs the writes of the intake workflows and staff replies
type IntakeStore interface {
	CreateContact(ctx context.Context, contact *Contact) error
	CreateBooking(ctx context.Context, booking *Booking) error
	CreateConversation(ctx context.Context, conversation *Conversation) error
	AppendMessages(ctx context.Context, messages []Message) error
	// UpdateConversation bumps last_message_at and, when pause is true, pauses automation.
	// It never clears the paused flag.
	UpdateConversation(ctx context.Context, conversationID string, lastMessageAt time.Time, pause bool) error
	WithinTx(ctx context.Context, fn func(store IntakeStore) error) error
}
