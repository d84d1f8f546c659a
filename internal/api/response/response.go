package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rrens/careops/internal/domain"
)

// Response is the staff API envelope
type Response struct {
	OK    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error any  `json:"error,omitempty"`
}

// Raw writes v as JSON without the envelope
func Raw(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	Raw(w, status, Response{
		OK:   status >= 200 && status < 300,
		Data: data,
	})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message any) {
	Raw(w, status, Response{
		OK:    false,
		Error: message,
	})
}

// FromError maps a coded error to its HTTP status. Uncoded errors are internal.
func FromError(w http.ResponseWriter, err error) {
	var e *domain.Error
	if !errors.As(err, &e) {
		InternalError(w, "internal server error")
		return
	}
	Error(w, StatusFor(e.Code), e.Message)
}

// StatusFor returns the HTTP status for an error code
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeInvalidDatetime, domain.CodeMalformedRequest,
		domain.CodeWorkspaceNotFound, domain.CodeActivationBlocked, domain.CodeWrite:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	case domain.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// TooManyRequests sends a 429 Too Many Requests response
func TooManyRequests(w http.ResponseWriter, message any) {
	Error(w, http.StatusTooManyRequests, message)
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(w http.ResponseWriter, message any) {
	Error(w, http.StatusServiceUnavailable, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message any) {
	Error(w, http.StatusInternalServerError, message)
}
