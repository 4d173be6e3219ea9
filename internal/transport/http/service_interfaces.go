package http

import (
	"context"

	"salarylens/internal/predictor"
	"salarylens/internal/salary"
	"salarylens/internal/services"
)

// AnalysisServiceInterface defines the analyzer operations the handlers use
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, p salary.Profile) (*services.AnalysisResult, error)
	Suggest(ctx context.Context, annualLPA float64, exp salary.Experience) (*services.Suggestion, error)
	Report(ctx context.Context, p salary.Profile) (*services.Report, error)
	Chart(ctx context.Context, p salary.Profile, kind services.ChartKind) ([]byte, error)
}

// PredictorServiceInterface defines the predictor operations the handlers use
type PredictorServiceInterface interface {
	Predict(ctx context.Context, profile predictor.JobProfile) (*predictor.Estimate, error)
}

// HealthServiceInterface defines the health and version probes
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
