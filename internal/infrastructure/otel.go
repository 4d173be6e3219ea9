package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName    = "salarylens"
	ServiceVersion = "1.0.0"
	MeterName      = "salarylens"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("SALARYLENS_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	traceExporter := os.Getenv("SALARYLENS_TRACE_EXPORTER")
	if traceExporter == "" {
		traceExporter = "none"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		TraceExporter:  traceExporter,
		MetricExporter: "prometheus",
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}
}

// InitializeOTel initializes OpenTelemetry with comprehensive observability
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	// Create resource
	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger: logger,
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
	}

	// Initialize tracing
	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	// Initialize metrics
	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	// Set up global propagators for trace context
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialization complete",
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	}

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case "none":
		// Spans are still created so trace ids reach the logs
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	// Set global tracer provider
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		// Create Prometheus exporter
		exporter, err := prometheus.New()
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		// Create Prometheus HTTP handler
		providers.PrometheusHTTP = promhttp.Handler()

		// Create meter provider with Prometheus reader
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

		// Set global meter provider
		otel.SetMeterProvider(mp)

	case "none":
		// No exporter - metrics disabled
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))

	return nil
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	// HTTP metrics
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	// Analysis metrics
	analysesTotal, err := meter.Int64Counter(
		"salary_analyses_total",
		metric.WithDescription("Total number of salary analyses by experience band and verdict"),
	)
	if err != nil {
		return nil, err
	}

	analysisDuration, err := meter.Float64Histogram(
		"salary_analysis_duration_seconds",
		metric.WithDescription("Salary analysis duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	takeHomeRatio, err := meter.Float64Histogram(
		"salary_take_home_ratio",
		metric.WithDescription("Observed take-home to gross monthly ratio"),
	)
	if err != nil {
		return nil, err
	}

	analysisErrors, err := meter.Int64Counter(
		"salary_analysis_errors_total",
		metric.WithDescription("Total number of rejected salary analyses"),
	)
	if err != nil {
		return nil, err
	}

	// Predictor metrics
	predictionsTotal, err := meter.Int64Counter(
		"salary_predictions_total",
		metric.WithDescription("Total number of salary predictions by role"),
	)
	if err != nil {
		return nil, err
	}

	predictedLPA, err := meter.Float64Histogram(
		"salary_predicted_lpa",
		metric.WithDescription("Predicted annual salary in lakhs"),
	)
	if err != nil {
		return nil, err
	}

	// Report metrics
	reportsTotal, err := meter.Int64Counter(
		"salary_reports_total",
		metric.WithDescription("Total number of generated reports and charts"),
	)
	if err != nil {
		return nil, err
	}

	reportDuration, err := meter.Float64Histogram(
		"salary_report_duration_seconds",
		metric.WithDescription("Report and chart rendering duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reportBytes, err := meter.Int64Counter(
		"salary_report_bytes",
		metric.WithDescription("Total bytes of rendered reports and charts"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	// System metrics
	systemErrors, err := meter.Int64Counter(
		"system_errors_total",
		metric.WithDescription("Total number of system errors"),
	)
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		HTTPActiveRequests:  httpActiveRequests,

		AnalysesTotal:    analysesTotal,
		AnalysisDuration: analysisDuration,
		TakeHomeRatio:    takeHomeRatio,
		AnalysisErrors:   analysisErrors,

		PredictionsTotal: predictionsTotal,
		PredictedLPA:     predictedLPA,

		ReportsTotal:   reportsTotal,
		ReportDuration: reportDuration,
		ReportBytes:    reportBytes,

		SystemErrors: systemErrors,
	}, nil
}

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Analysis metrics
	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	TakeHomeRatio    metric.Float64Histogram
	AnalysisErrors   metric.Int64Counter

	// Predictor metrics
	PredictionsTotal metric.Int64Counter
	PredictedLPA     metric.Float64Histogram

	// Report metrics
	ReportsTotal   metric.Int64Counter
	ReportDuration metric.Float64Histogram
	ReportBytes    metric.Int64Counter

	// System metrics
	SystemErrors metric.Int64Counter
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}

	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}

// RecordAnalysisMetrics records one completed or rejected analysis
func RecordAnalysisMetrics(ctx context.Context, metrics *BusinessMetrics, experience, verdict string, ratio float64, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("experience", experience),
	}

	if err != nil {
		errorAttrs := append(attrs, attribute.String("error.type", fmt.Sprintf("%T", err)))
		metrics.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
		return
	}

	verdictAttrs := append(attrs, attribute.String("verdict", verdict))
	metrics.AnalysesTotal.Add(ctx, 1, metric.WithAttributes(verdictAttrs...))
	metrics.AnalysisDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	metrics.TakeHomeRatio.Record(ctx, ratio, metric.WithAttributes(attrs...))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("analysis.metrics_recorded",
			trace.WithAttributes(
				attribute.String("verdict", verdict),
				attribute.Float64("ratio", ratio),
				attribute.Float64("duration_seconds", duration.Seconds()),
			),
		)
	}
}

// RecordPredictionMetrics records one prediction
func RecordPredictionMetrics(ctx context.Context, metrics *BusinessMetrics, role string, lpa float64) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("role", role),
	}
	metrics.PredictionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.PredictedLPA.Record(ctx, lpa, metric.WithAttributes(attrs...))
}

// RecordReportMetrics records one rendered artifact; kind is "xlsx",
// "take_home_png", "payout_png" or "bundle"
func RecordReportMetrics(ctx context.Context, metrics *BusinessMetrics, kind string, size int, duration time.Duration, success bool) {
	if metrics == nil {
		return
	}

	statusAttr := attribute.String("status", "success")
	if !success {
		statusAttr = attribute.String("status", "failure")
	}
	attrs := []attribute.KeyValue{
		attribute.String("report.kind", kind),
		statusAttr,
	}

	metrics.ReportsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.ReportDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if success {
		metrics.ReportBytes.Add(ctx, int64(size), metric.WithAttributes(attrs[:1]...))
	}
}

// RecordSystemError records an unexpected failure
func RecordSystemError(ctx context.Context, metrics *BusinessMetrics, component string, err error) {
	if metrics == nil || err == nil {
		return
	}
	metrics.SystemErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("error.type", fmt.Sprintf("%T", err)),
	))
}
