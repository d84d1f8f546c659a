package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/schema"
	"github.com/jackc/pgx/v5"
)

// ConversationRepository reads the inbox
type ConversationRepository struct {
	db   *DB
	caps capabilitySource
}

// NewConversationRepository creates a new conversation repository. caps may be nil.
func NewConversationRepository(db *DB, caps capabilitySource) *ConversationRepository {
	return &ConversationRepository{db: db, caps: caps}
}

// ListByWorkspace lists conversations with their contact, most recent first.
// Without a workspace_id column no conversation can be attributed, so none are listed.
func (r *ConversationRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.ConversationSummary, error) {
	conversations := []domain.ConversationSummary{}
	if currentCapabilities(r.caps).Missing("conversations", "workspace_id") {
		return conversations, nil
	}

	query := `
		SELECT c.id, c.automation_paused, c.last_message_at,
		       COALESCE(ct.name, ''), COALESCE(ct.email, '')
		FROM conversations c
		LEFT JOIN contacts ct ON ct.id = c.contact_id
		WHERE c.workspace_id = $1
		ORDER BY c.last_message_at DESC NULLS LAST
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.ConversationSummary
		if err := rows.Scan(&c.ID, &c.AutomationPaused, &c.LastMessageAt, &c.ContactName, &c.ContactEmail); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return conversations, nil
}

// Get retrieves a conversation by ID. A malformed ID is reported as not found.
func (r *ConversationRepository) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	err := r.db.Pool.QueryRow(ctx, getConversationQuery(currentCapabilities(r.caps)), id).Scan(
		&c.ID,
		&c.WorkspaceID,
		&c.ContactID,
		&c.AutomationPaused,
		&c.LastMessageAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasPgCode(err, pgInvalidTextRepresentation) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &c, nil
}

// ListMessages lists the messages of a conversation, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := r.db.Pool.Query(ctx, listMessagesQuery(currentCapabilities(r.caps)), conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var direction string
		if err := rows.Scan(&m.ID, &m.ConversationID, &direction, &m.Channel, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Direction = domain.Direction(direction)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

func getConversationQuery(caps *schema.Capabilities) string {
	return fmt.Sprintf(`
		SELECT id, %s, COALESCE(contact_id::text, ''), automation_paused, last_message_at
		FROM conversations
		WHERE id = $1
	`, optionalColumn(caps, "conversations", "workspace_id", "COALESCE(workspace_id::text, '')", "''::text"))
}

func listMessagesQuery(caps *schema.Capabilities) string {
	return fmt.Sprintf(`
		SELECT id, conversation_id, %s, %s, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`,
		optionalColumn(caps, "messages", "direction", "COALESCE(direction, '')", "''::text"),
		optionalColumn(caps, "messages", "channel", "COALESCE(channel, '')", "''::text"),
	)
}
