package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetsum/pkg/contracts/api"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	// Keep tests hermetic regardless of the developer's environment.
	t.Setenv("SHEETSUM_CONFIG_FILE", "")
	t.Setenv("SHEETSUM_LOGGING_OUTPUT", "console")

	application, err := NewApplication()
	require.NoError(t, err)
	return application
}

func TestNewApplication(t *testing.T) {
	application := newTestApplication(t)

	assert.NotNil(t, application.Router)
	assert.NotNil(t, application.Server)
	assert.NotNil(t, application.SummaryService)
	assert.NotNil(t, application.HealthService)
	assert.Equal(t, ":8080", application.Server.Addr)
}

func TestRouterHealthAndVersion(t *testing.T) {
	application := newTestApplication(t)

	for _, path := range []string{"/api/health", "/api/health/live", "/api/health/ready", "/api/version"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":404`)
}

func TestRouterUnknownRouteUnderMountedHandler(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":404`)
	assert.Contains(t, rec.Body.String(), `"/errors/not-found"`)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":405`)
}

func TestRouterGridSummaryEndToEnd(t *testing.T) {
	application := newTestApplication(t)

	payload := `{
		"grid": [
			["Name", "CURRENT USD", "CURRENT CAD"],
			["A", "100", "50"],
			["B", "$200.50", "abc"],
			["C", "", "75,25"]
		],
		"columns": ["CURRENT USD", "CURRENT CAD", "MISSING"]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/summary/grid", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp api.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Summary, 2)
	assert.Equal(t, 300.50, resp.Summary[0].Sum)
	assert.Equal(t, 62.63, resp.Summary[1].Avg)
	assert.Equal(t, []string{"MISSING"}, resp.MissingColumns)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
