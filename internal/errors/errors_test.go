package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
	assert.Nil(t, err.Details)

	withDetails := NewWithDetails(http.StatusNotFound, "NOT_FOUND", "missing", "resource")
	assert.Equal(t, "resource", withDetails.Details)
}

func TestErrColumnsNotFound(t *testing.T) {
	err := ErrColumnsNotFound([]string{"CURRENT USD"}, []string{"name", "total"})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "COLUMNS_NOT_FOUND", err.ErrorCode)

	details, ok := err.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{"CURRENT USD"}, details["requested_columns"])
	assert.Equal(t, []string{"name", "total"}, details["available_columns"])
}

func TestErrUploadTooLarge(t *testing.T) {
	err := ErrUploadTooLarge(512)

	assert.Equal(t, http.StatusRequestEntityTooLarge, err.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", err.ErrorCode)

	details, ok := err.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(512), details["max_bytes"])
}

func TestErrWorkbookUnreadable(t *testing.T) {
	err := ErrWorkbookUnreadable(fmt.Errorf("zip: not a valid zip file"))

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "WORKBOOK_UNREADABLE", err.ErrorCode)
	assert.Equal(t, "zip: not a valid zip file", err.Details)
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewParsingError("unable to decode workbook", cause)

	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Contains(t, err.Error(), "[PARSING]")
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)

	err.WithContext("file", "report.xlsx")
	assert.Equal(t, "report.xlsx", err.Context["file"])

	plain := NewAppValidationError("columns required")
	assert.Equal(t, "[VALIDATION] columns required", plain.Error())
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "invalid", "/api/summary").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := pd.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error_code":"VALIDATION_FAILED"`)
	assert.Contains(t, string(data), `"status":400`)
}
