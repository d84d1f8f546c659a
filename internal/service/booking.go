package service

import (
	"context"

	"github.com/Rrens/careops/internal/domain"
)

// BookingService lists bookings for staff
type BookingService struct {
	bookingRepo domain.BookingRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo domain.BookingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo}
}

// List returns the workspace's bookings ordered by start time
func (s *BookingService) List(ctx context.Context, workspaceID string) ([]domain.BookingListItem, error) {
	bookings, err := s.bookingRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return bookings, nil
}
