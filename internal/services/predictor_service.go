package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"salarylens/internal/infrastructure"
	"salarylens/internal/predictor"
)

// PredictorService wraps the flat-rate salary predictor.
type PredictorService struct {
	predictor *predictor.Predictor
	metrics   *infrastructure.BusinessMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewPredictorService creates a new predictor service. metrics may be nil.
func NewPredictorService(p *predictor.Predictor, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *PredictorService {
	return &PredictorService{
		predictor: p,
		metrics:   metrics,
		tracer:    otel.Tracer(infrastructure.MeterName),
		logger:    componentLogger(logger, "predictor_service"),
	}
}

// Predict estimates the annual salary for profile.
func (s *PredictorService) Predict(ctx context.Context, profile predictor.JobProfile) (*predictor.Estimate, error) {
	ctx, span := s.tracer.Start(ctx, "salary.predict",
		trace.WithAttributes(
			attribute.String("role", string(profile.Role)),
			attribute.Int("years", profile.Years),
			attribute.Int("skills", profile.Skills.Len()),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	est, err := s.predictor.Predict(profile)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "Prediction rejected",
			slog.String("role", string(profile.Role)))
		return nil, classify(err)
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"annual_lpa": est.AnnualLPA})
	infrastructure.RecordPredictionMetrics(ctx, s.metrics, string(profile.Role), est.AnnualLPA)

	s.logger.InfoContext(ctx, "Prediction completed",
		slog.String("role", string(profile.Role)),
		slog.String("education", string(profile.Education)),
		slog.String("location", string(profile.City)),
		slog.String("industry", string(profile.Industry)),
		slog.Int("years", profile.Years),
		slog.Int("skills", profile.Skills.Len()),
		slog.Float64("annual_lpa", est.AnnualLPA))

	return &est, nil
}
