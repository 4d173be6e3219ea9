// Package services implements the application layer between the HTTP
// handlers and the salary domain packages.
//
// AnalysisService runs fair-pay analyses, suggestions and report rendering.
// PredictorService wraps the flat-rate salary predictor. HealthService
// backs the health endpoints.
//
// Services log through an injected *slog.Logger tagged with a component
// field, open a span per computation and record business metrics when a
// *infrastructure.BusinessMetrics is supplied. Domain errors are wrapped
// with the sentinels in errors.go so the transport layer can map them to
// status codes with errors.Is.
package services
