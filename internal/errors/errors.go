package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrMissingParameter = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 500 Internal Server Error
	ErrInternal = New(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ErrUploadTooLarge creates an error for uploads that exceed the
// configured size limit
func ErrUploadTooLarge(maxBytes int64) *APIError {
	return NewWithDetails(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
		"Uploaded file exceeds the size limit",
		map[string]interface{}{"max_bytes": maxBytes})
}

// ErrWorkbookUnreadable creates an error for files that could not be
// decoded as a spreadsheet
func ErrWorkbookUnreadable(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "WORKBOOK_UNREADABLE",
		"Unable to read the uploaded file. Make sure it is a valid .xlsx workbook.", err.Error())
}

// ErrHeaderNotDetected creates an error for sheets with no detectable
// header row
func ErrHeaderNotDetected() *APIError {
	return New(http.StatusBadRequest, "HEADER_NOT_FOUND",
		"Could not detect a header row in the sheet")
}

// ErrColumnsNotFound creates an error for requests where none of the
// requested columns were present in the detected header row
func ErrColumnsNotFound(requested, available []string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "COLUMNS_NOT_FOUND",
		"None of the requested columns were found in the sheet",
		map[string]interface{}{
			"requested_columns": requested,
			"available_columns": available,
		})
}
