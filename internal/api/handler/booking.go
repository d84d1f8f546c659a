package handler

import (
	"net/http"

	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/service"
)

// BookingHandler lists bookings
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List lists the workspace's bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bookings, err := h.bookings.List(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, bookings)
}
