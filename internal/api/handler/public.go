package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/careops/internal/api/response"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/service"
)

const msgInvalidPayload = "Invalid request payload."

// publicResult is the wire shape of the public form endpoints
type publicResult struct {
	OK        bool   `json:"ok"`
	BookingID string `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PublicHandler serves the unauthenticated contact and booking forms
type PublicHandler struct {
	intake *service.IntakeService
}

// NewPublicHandler creates a new public form handler
func NewPublicHandler(intake *service.IntakeService) *PublicHandler {
	return &PublicHandler{intake: intake}
}

// Contact handles POST /api/public/contact
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var input domain.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		publicFailure(w, msgInvalidPayload)
		return
	}

	if err := h.intake.SubmitContact(r.Context(), input); err != nil {
		publicFailure(w, err.Error())
		return
	}

	response.Raw(w, http.StatusOK, publicResult{OK: true})
}

// Book handles POST /api/public/book
func (h *PublicHandler) Book(w http.ResponseWriter, r *http.Request) {
	var input domain.BookingSubmission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		publicFailure(w, msgInvalidPayload)
		return
	}

	bookingID, err := h.intake.SubmitBooking(r.Context(), input)
	if err != nil {
		publicFailure(w, err.Error())
		return
	}

	response.Raw(w, http.StatusOK, publicResult{OK: true, BookingID: bookingID})
}

// public endpoints answer 400 for every failure
func publicFailure(w http.ResponseWriter, message string) {
	response.Raw(w, http.StatusBadRequest, publicResult{OK: false, Error: message})
}
