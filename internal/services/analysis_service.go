package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"salarylens/internal/config"
	"salarylens/internal/exporter"
	"salarylens/internal/infrastructure"
	"salarylens/internal/salary"
)

// ChartKind selects one of the projection charts
type ChartKind string

const (
	ChartTakeHome ChartKind = "take-home"
	ChartPayout   ChartKind = "payout"
)

// AnalysisResult is the outcome of an analysis request. A request with an
// empty name is suppressed: nothing is computed and Analysis is nil.
type AnalysisResult struct {
	Suppressed bool             `json:"suppressed"`
	Analysis   *salary.Analysis `json:"analysis,omitempty"`
}

// Suggestion is the default take-home for a compensation and experience band
type Suggestion struct {
	AnnualLPA      float64           `json:"annual_lpa"`
	Experience     salary.Experience `json:"experience"`
	GrossMonthly   float64           `json:"gross_monthly"`
	SuggestedRatio float64           `json:"suggested_ratio"`
	TakeHome       float64           `json:"take_home"`
}

// Report is a rendered download
type Report struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AnalysisService runs salary analyses and renders their reports.
type AnalysisService struct {
	estimator *salary.Estimator
	exporter  *exporter.Exporter
	metrics   *infrastructure.BusinessMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewAnalysisService creates a new analysis service. metrics may be nil.
func NewAnalysisService(estimator *salary.Estimator, exp *exporter.Exporter, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		estimator: estimator,
		exporter:  exp,
		metrics:   metrics,
		tracer:    otel.Tracer(infrastructure.MeterName),
		logger:    componentLogger(logger, "analysis_service"),
	}
}

// Analyze computes the fair-pay assessment and hike projection for p.
func (s *AnalysisService) Analyze(ctx context.Context, p salary.Profile) (*AnalysisResult, error) {
	if strings.TrimSpace(p.Name) == "" {
		s.logger.DebugContext(ctx, "Analysis suppressed: empty name")
		return &AnalysisResult{Suppressed: true}, nil
	}

	a, err := s.analyze(ctx, p)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{Analysis: a}, nil
}

func (s *AnalysisService) analyze(ctx context.Context, p salary.Profile) (*salary.Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "salary.analyze",
		trace.WithAttributes(
			attribute.String("experience", p.Experience.String()),
			attribute.String("location", string(p.Location)),
			attribute.Bool("take_home.overridden", p.TakeHome != nil),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	start := time.Now()
	a, err := s.estimator.Analyze(p)
	duration := time.Since(start)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordAnalysisMetrics(ctx, s.metrics, p.Experience.String(), "", 0, duration, err)
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "Analysis rejected",
			slog.String("experience", p.Experience.String()),
			slog.Float64("annual_lpa", p.AnnualLPA))
		return nil, classify(err)
	}

	verdict := a.Assessment.Verdict.String()
	span.SetAttributes(
		attribute.String("verdict", verdict),
		attribute.Float64("ratio", a.Assessment.Ratio),
	)
	infrastructure.RecordAnalysisMetrics(ctx, s.metrics, p.Experience.String(), verdict, a.Assessment.Ratio, duration, nil)

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("experience", p.Experience.String()),
		slog.Float64("annual_lpa", p.AnnualLPA),
		slog.Float64("take_home", a.TakeHome),
		slog.Bool("overridden", a.Overridden),
		slog.Float64("ratio", a.Assessment.Ratio),
		slog.String("verdict", verdict),
		slog.Int("rows", len(a.Projections)))

	return a, nil
}

// Suggest returns the default take-home for annualLPA and exp.
func (s *AnalysisService) Suggest(ctx context.Context, annualLPA float64, exp salary.Experience) (*Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	takeHome, err := s.estimator.SuggestTakeHome(annualLPA, exp)
	if err != nil {
		return nil, classify(err)
	}

	s.logger.DebugContext(ctx, "Suggested take-home",
		slog.Float64("annual_lpa", annualLPA),
		slog.String("experience", exp.String()),
		slog.Float64("take_home", takeHome))

	return &Suggestion{
		AnnualLPA:      annualLPA,
		Experience:     exp,
		GrossMonthly:   salary.GrossMonthly(annualLPA),
		SuggestedRatio: s.estimator.SuggestedRatio(annualLPA, exp),
		TakeHome:       takeHome,
	}, nil
}

// Report renders the XLSX report for p. Unlike Analyze, an empty name is an
// error because it determines the file name.
func (s *AnalysisService) Report(ctx context.Context, p salary.Profile) (*Report, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrEmptyName
	}

	a, err := s.analyze(ctx, p)
	if err != nil {
		return nil, err
	}

	data, err := s.render(ctx, "xlsx", func() ([]byte, error) { return s.exporter.Workbook(a) })
	if err != nil {
		return nil, err
	}

	return &Report{
		FileName:    s.exporter.FileName(p.Name),
		ContentType: config.XLSXContentType,
		Data:        data,
	}, nil
}

// Chart renders one projection chart for p as PNG. Empty names are allowed
// since the chart carries no name.
func (s *AnalysisService) Chart(ctx context.Context, p salary.Profile, kind ChartKind) ([]byte, error) {
	var fn func([]salary.Projection) ([]byte, error)
	switch kind {
	case ChartTakeHome:
		fn = s.exporter.TakeHomeChart
	case ChartPayout:
		fn = s.exporter.PayoutChart
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}

	a, err := s.analyze(ctx, p)
	if err != nil {
		return nil, err
	}

	return s.render(ctx, strings.ReplaceAll(string(kind), "-", "_")+"_png", func() ([]byte, error) {
		return fn(a.Projections)
	})
}

// Bundle renders the workbook and both charts for p concurrently.
func (s *AnalysisService) Bundle(ctx context.Context, p salary.Profile) (*exporter.Bundle, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrEmptyName
	}

	a, err := s.analyze(ctx, p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	b, err := s.exporter.Bundle(ctx, a)
	if err != nil {
		infrastructure.RecordReportMetrics(ctx, s.metrics, "bundle", 0, time.Since(start), false)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classify(ctxErr)
		}
		infrastructure.RecordSystemError(ctx, s.metrics, "exporter", err)
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	size := len(b.Workbook) + len(b.TakeHomeChart) + len(b.PayoutChart)
	infrastructure.RecordReportMetrics(ctx, s.metrics, "bundle", size, time.Since(start), true)
	s.logger.InfoContext(ctx, "Report bundle rendered",
		slog.String("file_name", b.FileName),
		slog.Int("bytes", size))
	return b, nil
}

func (s *AnalysisService) render(ctx context.Context, kind string, fn func() ([]byte, error)) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "report.render", trace.WithAttributes(attribute.String("report.kind", kind)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, classify(err)
	}

	start := time.Now()
	data, err := fn()
	duration := time.Since(start)
	infrastructure.RecordReportMetrics(ctx, s.metrics, kind, len(data), duration, err == nil)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.RecordSystemError(ctx, s.metrics, "exporter", err)
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Report rendering failed",
			slog.String("kind", kind))
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	infrastructure.AddSpanEvent(ctx, "report.rendered", map[string]interface{}{"bytes": len(data)})
	s.logger.InfoContext(ctx, "Report rendered",
		slog.String("kind", kind),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", duration))
	return data, nil
}
