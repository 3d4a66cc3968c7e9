package errors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.Default(), false)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/summary", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "header not found API error",
			err:        ErrHeaderNotDetected(),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeHeaderNotFound,
		},
		{
			name:       "columns not found API error",
			err:        ErrColumnsNotFound([]string{"a"}, []string{"b"}),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeColumnsNotFound,
		},
		{
			name:       "parsing app error",
			err:        NewParsingError("unable to decode workbook", fmt.Errorf("zip: not a valid zip file")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeWorkbookUnreadable,
		},
		{
			name:       "network app error",
			err:        NewNetworkError("sheets api unavailable", fmt.Errorf("dial tcp")),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeUpstream,
		},
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("something odd"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, r)
			require.NotNil(t, problem)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/summary", problem.Instance)
		})
	}
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/summary", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, ErrHeaderNotDetected())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"HEADER_NOT_FOUND"`)
}

func TestNotFoundHandler(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	h.NotFound(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":404`)
}
