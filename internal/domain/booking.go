package domain

import (
	"context"
	"time"
)

// Booking is one appointment requested through the public booking form
type Booking struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	ContactID   string    `json:"contact_id"`
	ServiceName string    `json:"service_name"`
	StartAt     time.Time `json:"start_at"`
}

// BookingListItem is a booking joined with its contact for the staff list
type BookingListItem struct {
	ID           string    `json:"id"`
	ServiceName  string    `json:"service_name"`
	StartAt      time.Time `json:"start_at"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
}

// BookingRepository defines read access to bookings
type BookingRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]BookingListItem, error)
}
