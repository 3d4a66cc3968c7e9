package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsum/internal/services"
	"sheetsum/pkg/contracts"
)

func newHealthHandler() *HealthHandler {
	return NewHealthHandler(services.NewHealthService(nil), slog.Default())
}

func TestHealthEndpoints(t *testing.T) {
	h := newHealthHandler()
	router := h.Routes()

	tests := []struct {
		path string
		want string
	}{
		{"/", "healthy"},
		{"/ready", "ready"},
		{"/live", "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestVersionEndpoint(t *testing.T) {
	h := newHealthHandler()

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var info contracts.VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, contracts.Version, info.Version)
}
