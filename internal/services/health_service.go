package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"nordpulse/internal/dataset"
	"nordpulse/internal/infrastructure"
)

// DatasetChecker is the part of DashboardService the health checks rely on
type DatasetChecker interface {
	SourceName() string
	Check(ctx context.Context) error
	CacheStats() dataset.CacheStats
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	checker   DatasetChecker
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// IsReady reports whether every service in a readiness status is ready
func (hs HealthStatus) IsReady() bool {
	return hs.Status == "ready"
}

// NewHealthService creates a new health service
func NewHealthService(version, buildTime, buildID string, checker DatasetChecker, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime),
		slog.String("build_id", buildID))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		buildID:   buildID,
		checker:   checker,
		startTime: time.Now(),
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready only when the dataset can be served
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	data := hs.checkDatasetHealth(ctx)
	status.Services["dataset"] = data
	if data.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "ReadinessCheck: dataset not ready",
			slog.String("message", data.Message))
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

// checkDatasetHealth loads the dataset through the cache
func (hs *HealthService) checkDatasetHealth(ctx context.Context) ServiceHealth {
	if hs.checker == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: ErrNoDatasetSource.Error(),
		}
	}

	details := map[string]interface{}{
		"source": hs.checker.SourceName(),
	}
	if err := hs.checker.Check(ctx); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: err.Error(),
			Details: details,
		}
	}

	details["cache"] = hs.checker.CacheStats()
	return ServiceHealth{
		Status:  "ready",
		Message: "Dataset is loaded",
		Details: details,
	}
}
