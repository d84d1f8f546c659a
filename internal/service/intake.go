package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/careops/internal/config"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

const (
	msgContactWorkspaceNotFound = "Workspace not found for this public link."
	msgBookingWorkspaceNotFound = "Workspace not found for this booking link."
	msgContactRequired          = "Name and email/phone are required."
	msgBookingRequired          = "Name, email, and booking date/time are required."
	msgInvalidStartAt           = "Invalid booking date/time."
)

// IntakeService turns public form submissions into contacts, bookings and conversations
type IntakeService struct {
	resolver *WorkspaceResolver
	store    domain.IntakeStore
	notifier Notifier
	cfg      config.IntakeConfig
	loc      *time.Location
	now      func() time.Time
}

// NewIntakeService creates a new intake service
func NewIntakeService(resolver *WorkspaceResolver, store domain.IntakeStore, notifier Notifier, cfg config.IntakeConfig) *IntakeService {
	return &IntakeService{
		resolver: resolver,
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		loc:      loadLocation(cfg.DefaultTimezone, time.UTC),
		now:      time.Now,
	}
}

// SubmitContact records a contact form submission: one contact, one conversation
// and the automated welcome message.
func (s *IntakeService) SubmitContact(ctx context.Context, in domain.ContactSubmission) (err error) {
	defer func() { metrics.RecordIntake("contact", outcome(err)) }()

	workspaceID, ok := s.resolver.Resolve(ctx, in.WorkspaceID, in.WorkspaceSlug)
	if !ok {
		return domain.NewError(domain.CodeWorkspaceNotFound, msgContactWorkspaceNotFound)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.EmailOrPhone = strings.TrimSpace(in.EmailOrPhone)
	in.Message = strings.TrimSpace(in.Message)
	if err := validate.Struct(in); err != nil {
		return domain.NewError(domain.CodeValidation, msgContactRequired)
	}

	contact := &domain.Contact{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Message:     &in.Message,
	}
	if strings.Contains(in.EmailOrPhone, "@") {
		contact.Email = in.EmailOrPhone
	} else {
		contact.Phone = in.EmailOrPhone
	}

	now := s.now().UTC()
	err = s.store.WithinTx(ctx, func(tx domain.IntakeStore) error {
		if err := tx.CreateContact(ctx, contact); err != nil {
			return err
		}
		conv, err := s.openConversation(ctx, tx, workspaceID, contact.ID, now)
		if err != nil {
			return err
		}
		return tx.AppendMessages(ctx, s.automated(conv, now, s.cfg.WelcomeMessage))
	})
	if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("contact submission failed")
		return domain.StoreFailure(err)
	}

	return nil
}

// SubmitBooking records a booking form submission and returns the new booking ID
func (s *IntakeService) SubmitBooking(ctx context.Context, in domain.BookingSubmission) (bookingID string, err error) {
	defer func() { metrics.RecordIntake("booking", outcome(err)) }()

	workspaceID, ok := s.resolver.Resolve(ctx, in.WorkspaceID, in.WorkspaceSlug)
	if !ok {
		return "", domain.NewError(domain.CodeWorkspaceNotFound, msgBookingWorkspaceNotFound)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.StartAt = strings.TrimSpace(in.StartAt)
	in.Service = strings.TrimSpace(in.Service)
	if err := validate.Struct(in); err != nil {
		return "", domain.NewError(domain.CodeValidation, msgBookingRequired)
	}
	if in.Service == "" {
		in.Service = s.cfg.DefaultService
	}

	startAt, ok := parseStartAt(in.StartAt, s.loc)
	if !ok {
		return "", domain.NewError(domain.CodeInvalidDatetime, msgInvalidStartAt)
	}

	contact := &domain.Contact{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        in.Name,
		Email:       in.Email,
	}
	booking := &domain.Booking{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		ServiceName: in.Service,
		StartAt:     startAt,
	}
	confirmation := fmt.Sprintf("Booking confirmed for %s at %s.", in.Service, startAt.In(s.loc).Format(confirmationLayout))

	now := s.now().UTC()
	err = s.store.WithinTx(ctx, func(tx domain.IntakeStore) error {
		if err := tx.CreateContact(ctx, contact); err != nil {
			return err
		}
		booking.ContactID = contact.ID
		if err := tx.CreateBooking(ctx, booking); err != nil {
			return err
		}
		conv, err := s.openConversation(ctx, tx, workspaceID, contact.ID, now)
		if err != nil {
			return err
		}
		return tx.AppendMessages(ctx, s.automated(conv, now, confirmation, s.cfg.IntakeReminder))
	})
	if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID).Msg("booking submission failed")
		return "", domain.StoreFailure(err)
	}

	event := domain.Event{
		Type:        domain.EventBookingCreated,
		WorkspaceID: workspaceID,
		Payload: map[string]any{
			"booking_id": booking.ID,
			"service":    booking.ServiceName,
			"start_at":   booking.StartAt,
			"email":      contact.Email,
		},
		OccurredAt: now,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("booking notification failed")
	}

	return booking.ID, nil
}

func (s *IntakeService) openConversation(ctx context.Context, tx domain.IntakeStore, workspaceID, contactID string, at time.Time) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:            uuid.NewString(),
		WorkspaceID:   workspaceID,
		ContactID:     contactID,
		LastMessageAt: &at,
	}
	if err := tx.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// automated builds the outbound messages for a freshly opened conversation, which is
// never paused. Timestamps are spaced by a microsecond to keep their order stable.
func (s *IntakeService) automated(conv *domain.Conversation, at time.Time, bodies ...string) []domain.Message {
	messages := make([]domain.Message, len(bodies))
	for i, body := range bodies {
		messages[i] = domain.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Direction:      domain.DirectionOut,
			Channel:        s.cfg.DefaultChannel,
			Body:           body,
			CreatedAt:      at.Add(time.Duration(i) * time.Microsecond),
		}
	}
	return messages
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := domain.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}
