package service

import (
	"context"
	"strings"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	msgConversationNotFound = "Conversation not found."
	msgReplyRequired        = "Reply body is required."
	replyChannel            = "email"
)

// InboxService lists conversations and records staff replies
type InboxService struct {
	conversationRepo domain.ConversationRepository
	store            domain.IntakeStore
	now              func() time.Time
}

// NewInboxService creates a new inbox service
func NewInboxService(conversationRepo domain.ConversationRepository, store domain.IntakeStore) *InboxService {
	return &InboxService{
		conversationRepo: conversationRepo,
		store:            store,
		now:              time.Now,
	}
}

// ListConversations lists the workspace's conversations, most recent first
func (s *InboxService) ListConversations(ctx context.Context, workspaceID string) ([]domain.ConversationSummary, error) {
	conversations, err := s.conversationRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return conversations, nil
}

// ListMessages lists a conversation's messages oldest first
func (s *InboxService) ListMessages(ctx context.Context, workspaceID, conversationID string) ([]domain.Message, error) {
	if _, err := s.owned(ctx, workspaceID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.conversationRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return messages, nil
}

// Reply appends an outbound staff message and pauses automation on the conversation
func (s *InboxService) Reply(ctx context.Context, workspaceID, conversationID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewError(domain.CodeValidation, msgReplyRequired)
	}

	if _, err := s.owned(ctx, workspaceID, conversationID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	message := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Direction:      domain.DirectionOut,
		Channel:        replyChannel,
		Body:           body,
		CreatedAt:      now,
	}

	err := s.store.WithinTx(ctx, func(tx domain.IntakeStore) error {
		if err := tx.AppendMessages(ctx, []domain.Message{message}); err != nil {
			return err
		}
		return tx.UpdateConversation(ctx, conversationID, now, true)
	})
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("staff reply failed")
		return nil, domain.StoreFailure(err)
	}

	return &message, nil
}

// owned loads a conversation and checks it belongs to the workspace.
// Conversations stored without a workspace are reachable from any workspace.
func (s *InboxService) owned(ctx context.Context, workspaceID, conversationID string) (*domain.Conversation, error) {
	conv, err := s.conversationRepo.Get(ctx, conversationID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	if conv == nil || (conv.WorkspaceID != "" && conv.WorkspaceID != workspaceID) {
		return nil, domain.NewError(domain.CodeNotFound, msgConversationNotFound)
	}
	return conv, nil
}
