package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"plannr/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeSuperseded    = "superseded"
	ErrCodeBadGateway    = "bad_gateway"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// StatusFor classifies a service error into an HTTP status and envelope code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSuperseded):
		return http.StatusConflict, ErrCodeSuperseded
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, domain.ErrBadResponse):
		return http.StatusBadGateway, ErrCodeBadGateway
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return http.StatusBadRequest, ErrCodeBadRequest
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteServiceError writes err as a JSON envelope, using the user-facing message it carries
// or fallback.
func WriteServiceError(w http.ResponseWriter, err error, fallback string) {
	status, code := StatusFor(err)
	msg := domain.UserMessage(err, fallback)
	if errors.Is(err, domain.ErrSuperseded) {
		msg = "superseded by a newer request"
	}
	WriteJSONError(w, status, code, msg)
}
