package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsum/internal/config"
)

func newTestProviders(t *testing.T) *OTelProviders {
	t.Helper()
	cfg := config.ObservabilityConfig{
		ServiceName:   "sheetsum",
		EnableTracing: false,
		EnableMetrics: true,
	}

	providers, err := InitializeOTel(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })
	return providers
}

func scrape(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec
}

func TestInitializeOTelMetrics(t *testing.T) {
	providers := newTestProviders(t)

	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := CreateSummaryMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.SummariesTotal.Add(context.Background(), 1)

	rec := scrape(t, providers.PrometheusHTTP)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_info")
}

func TestInitializeOTelIsolatedRegistries(t *testing.T) {
	// Two provider sets in one process must not collide: each carries its
	// own registry, so both scrape endpoints keep working.
	first := newTestProviders(t)
	second := newTestProviders(t)

	firstRec := scrape(t, first.PrometheusHTTP)
	secondRec := scrape(t, second.PrometheusHTTP)

	assert.Equal(t, http.StatusOK, firstRec.Code, firstRec.Body.String())
	assert.Equal(t, http.StatusOK, secondRec.Code, secondRec.Body.String())
}
