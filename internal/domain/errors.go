package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("backend unavailable")
	ErrBadResponse     = errors.New("unexpected backend response")

	ErrSessionNotFound          = errors.New("browser session not found")
	ErrInvalidSessionTransition = errors.New("invalid session transition")
	ErrSuperseded               = errors.New("superseded by a newer request")
)

// APIError is the failure half of every backend call. Message is safe to show to the user;
// Detail carries the backend's own explanation when it sent one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage returns the message a page should show for err, or fallback when err
// carries none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// InvalidInput builds an APIError for a request rejected before it reached the backend.
func InvalidInput(op, message string) *APIError {
	return &APIError{Op: op, Message: message, Err: ErrInvalidInput}
}
