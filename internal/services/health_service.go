package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"sheetsum/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns the overall service health
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
			"uptime":     fmt.Sprintf("%.0fs", time.Since(s.startTime).Seconds()),
		},
	}
}

// LivenessCheck reports whether the process is alive
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]string {
	return map[string]string{"status": "alive"}
}

// ReadinessCheck reports whether the service can take traffic. The service
// has no external dependencies to wait on, so readiness follows liveness.
func (s *HealthService) ReadinessCheck(ctx context.Context) map[string]string {
	return map[string]string{"status": "ready"}
}

// Version returns the build information
func (s *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
