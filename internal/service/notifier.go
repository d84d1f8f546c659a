package service

import (
	"context"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/rs/zerolog/log"
)

// Notifier delivers outbound events. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// LogNotifier stands in for real email and webhook delivery by logging the event
type LogNotifier struct{}

// NewLogNotifier creates a new logging notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the event and reports success
func (n *LogNotifier) Notify(_ context.Context, event domain.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	log.Info().
		Str("event", event.Type).
		Str("workspace_id", event.WorkspaceID).
		Interface("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("outbound delivery stubbed")
	return nil
}
