package domain

import (
	"context"
	"time"
)

// Direction of a message relative to the business
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Conversation is a thread of messages with one contact
type Conversation struct {
	ID               string     `json:"id"`
	WorkspaceID      string     `json:"workspace_id,omitempty"`
	ContactID        string     `json:"contact_id"`
	AutomationPaused bool       `json:"automation_paused"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
}

// ConversationSummary is the inbox list entry
type ConversationSummary struct {
	ID               string     `json:"id"`
	AutomationPaused bool       `json:"automation_paused"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
	ContactName      string     `json:"contact_name"`
	ContactEmail     string     `json:"contact_email"`
}

// Message belongs to a conversation. Direction and Channel may be dropped on write
// when the backing schema lacks those columns.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Direction      Direction `json:"direction,omitempty"`
	Channel        string    `json:"channel,omitempty"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReplyInput is a staff reply to a conversation
type ReplyInput struct {
	Body string `json:"body" validate:"required"`
}

// ConversationRepository defines read access to the inbox
type ConversationRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]ConversationSummary, error)
	Get(ctx context.Context, id string) (*Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
}
