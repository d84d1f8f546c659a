package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Optional columns per table, in the order they are given up
var (
	contactFragile      = []string{"message"}
	conversationFragile = []string{"workspace_id"}
	messageFragile      = []string{"channel", "direction"}
)

// IntakeRepository writes contacts, bookings, conversations and messages
type IntakeRepository struct {
	db     *DB
	q      querier
	writer *schema.Writer
}

// NewIntakeRepository creates a new intake repository. The writer should be
// built over a RowInserter on the same pool.
func NewIntakeRepository(db *DB, writer *schema.Writer) *IntakeRepository {
	return &IntakeRepository{db: db, q: db.Pool, writer: writer}
}

// CreateContact inserts a contact; the message column is optional
func (r *IntakeRepository) CreateContact(ctx context.Context, contact *domain.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}

	row := schema.Row{
		"id":           contact.ID,
		"workspace_id": contact.WorkspaceID,
		"name":         contact.Name,
		"email":        nullable(contact.Email),
		"phone":        nullable(contact.Phone),
	}
	var fragile []string
	if contact.Message != nil {
		row["message"] = nullable(*contact.Message)
		fragile = contactFragile
	}

	if err := r.writer.Insert(ctx, "contacts", []schema.Row{row}, fragile...); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// CreateBooking inserts a booking
func (r *IntakeRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	row := schema.Row{
		"id":           booking.ID,
		"workspace_id": booking.WorkspaceID,
		"contact_id":   booking.ContactID,
		"service_name": booking.ServiceName,
		"start_at":     booking.StartAt.UTC(),
	}
	if err := r.writer.Insert(ctx, "bookings", []schema.Row{row}); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// CreateConversation inserts a conversation; workspace_id is optional
func (r *IntakeRepository) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.NewString()
	}

	row := schema.Row{
		"id":                conversation.ID,
		"workspace_id":      conversation.WorkspaceID,
		"contact_id":        conversation.ContactID,
		"automation_paused": conversation.AutomationPaused,
	}
	if conversation.LastMessageAt != nil {
		row["last_message_at"] = conversation.LastMessageAt.UTC()
	}

	if err := r.writer.Insert(ctx, "conversations", []schema.Row{row}, conversationFragile...); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// AppendMessages inserts messages in one statement; channel and direction are optional
func (r *IntakeRepository) AppendMessages(ctx context.Context, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	rows := make([]schema.Row, len(messages))
	for i := range messages {
		m := &messages[i]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		row := schema.Row{
			"id":              m.ID,
			"conversation_id": m.ConversationID,
			"body":            m.Body,
		}
		if m.Direction != "" {
			row["direction"] = string(m.Direction)
		}
		if m.Channel != "" {
			row["channel"] = m.Channel
		}
		if !m.CreatedAt.IsZero() {
			row["created_at"] = m.CreatedAt.UTC()
		}
		rows[i] = row
	}

	if err := r.writer.Insert(ctx, "messages", rows, messageFragile...); err != nil {
		return fmt.Errorf("failed to append messages: %w", err)
	}
	return nil
}

// UpdateConversation bumps last_message_at and optionally pauses automation
func (r *IntakeRepository) UpdateConversation(ctx context.Context, conversationID string, lastMessageAt time.Time, pause bool) error {
	query := `
		UPDATE conversations
		SET last_message_at = $2,
		    automation_paused = automation_paused OR $3
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, conversationID, lastMessageAt.UTC(), pause)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// WithinTx runs fn against a repository bound to one transaction
func (r *IntakeRepository) WithinTx(ctx context.Context, fn func(store domain.IntakeStore) error) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(&IntakeRepository{
			db:     r.db,
			q:      tx,
			writer: r.writer.Using(NewRowInserter(tx)),
		})
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
