package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"salarylens/internal/infrastructure"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	estimator *salary.Estimator
	predictor *predictor.Predictor
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
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service. The estimator and predictor
// are checked by ReadinessCheck.
func NewHealthService(version, buildTime string, estimator *salary.Estimator, p *predictor.Predictor, logger *slog.Logger) *HealthService {
	logger = componentLogger(logger, "health_service")
	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		estimator: estimator,
		predictor: p,
		startTime: time.Now(),
		logger:    logger,
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

// ReadinessCheck reports ready once the rate tables are loaded
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"estimator": hs.checkEstimator(),
			"predictor": hs.checkPredictor(),
		},
	}

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready")
	}
	return status
}

// LivenessCheck returns liveness status with a runtime snapshot
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.ReadSystemStats(hs.startTime)
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":           stats.ProcessUptime.Seconds(),
			"go_version":       stats.GoVersion,
			"goroutines":       stats.GoRoutines,
			"heap_alloc_bytes": stats.HeapAlloc,
			"gc_count":         stats.GCCount,
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
	return result
}

func (hs *HealthService) checkEstimator() ServiceHealth {
	if hs.estimator == nil || hs.estimator.Tables() == nil {
		return ServiceHealth{Status: "not_ready", Message: "rate tables not loaded"}
	}
	return ServiceHealth{Status: "ready"}
}

func (hs *HealthService) checkPredictor() ServiceHealth {
	if hs.predictor == nil || hs.predictor.Weights() == nil {
		return ServiceHealth{Status: "not_ready", Message: "predictor weights not loaded"}
	}
	return ServiceHealth{Status: "ready"}
}
