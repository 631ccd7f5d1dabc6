package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkoskinen/inviteboard/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeMissingCount   = "MISSING_COUNT"
	CodeNotANumber     = "NOT_A_NUMBER"
	CodeNegativeCount  = "NEGATIVE_COUNT"
	CodeEntryNotFound  = "ENTRY_NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrEntryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEntryNotFound, "No entry for this user"}}
	case errors.Is(err, model.ErrMissingCount):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingCount, "Invite count is required"}}
	case errors.Is(err, model.ErrNotANumber):
		return &httpError{http.StatusBadRequest, APIError{CodeNotANumber, "Invite count must be a whole number"}}
	case errors.Is(err, model.ErrNegativeCount):
		return &httpError{http.StatusBadRequest, APIError{CodeNegativeCount, "Invite count must not be negative"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
