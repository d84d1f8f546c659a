package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/careops/internal/domain"
)

// BookingRepository reads bookings
type BookingRepository struct {
	db *DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ListByWorkspace lists bookings with their contact, soonest first
func (r *BookingRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.BookingListItem, error) {
	query := `
		SELECT b.id, COALESCE(b.service_name, ''), b.start_at,
		       COALESCE(ct.name, ''), COALESCE(ct.email, '')
		FROM bookings b
		LEFT JOIN contacts ct ON ct.id = b.contact_id
		WHERE b.workspace_id = $1
		ORDER BY b.start_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.BookingListItem{}
	for rows.Next() {
		var b domain.BookingListItem
		if err := rows.Scan(&b.ID, &b.ServiceName, &b.StartAt, &b.ContactName, &b.ContactEmail); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}
