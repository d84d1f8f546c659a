package domain

import (
	"context"
	"errors"
)

// ErrorCode classifies failures reported back to callers
type ErrorCode string

const (
	CodeWorkspaceNotFound ErrorCode = "workspace_not_found"
	CodeValidation        ErrorCode = "validation_error"
	CodeWrite             ErrorCode = "write_error"
	CodeInvalidDatetime   ErrorCode = "invalid_datetime"
	CodeMalformedRequest  ErrorCode = "malformed_request"
	CodeStoreUnavailable  ErrorCode = "store_unavailable"
	CodeActivationBlocked ErrorCode = "activation_blocked"
	CodeNotFound          ErrorCode = "not_found"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeConflict          ErrorCode = "conflict"
)

// Sentinel errors returned by repositories
var (
	ErrNotFound  = errors.New("not found")
	ErrSlugTaken = errors.New("slug already taken")
)

// Error is a caller-visible failure with a taxonomy code and a human-readable message
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a coded error with a fixed message
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the taxonomy code carried by err, or "" when err is not a *Error
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// StoreFailure classifies an error returned by the backing store.
// Deadline expiry and cancellation are transient; everything else is a write error
// carrying the store's own message.
func StoreFailure(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Code: CodeStoreUnavailable, Message: "The data store is unavailable, please retry.", Err: err}
	}
	return &Error{Code: CodeWrite, Message: rootCause(err).Error(), Err: err}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
