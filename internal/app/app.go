package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salarylens/internal/config"
	apierrors "salarylens/internal/errors"
	"salarylens/internal/exporter"
	"salarylens/internal/infrastructure"
	customMiddleware "salarylens/internal/middleware"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	handlers "salarylens/internal/transport/http"
	"salarylens/pkg/contracts"
)

const systemMetricsInterval = 15 * time.Second

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	ErrorHandler  *apierrors.ErrorHandler
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	SystemMetrics *infrastructure.SystemMetricsCollector
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Analysis  *services.AnalysisService
	Predictor *services.PredictorService
	Health    *services.HealthService
	Options   services.Options
}

// NewApplication loads configuration, initializes the global logger and
// OpenTelemetry, and wires the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger, infrastructure.DefaultOTelConfig())
}

// New wires an application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger, otelCfg *infrastructure.OTelConfig) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.Int("report_year", cfg.Report.Year))

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	collector, err := infrastructure.NewSystemMetricsCollector(providers.Meter, systemMetricsInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to create system metrics collector: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development, handlers.ErrorMappings()...),
		OTelProviders: providers,
		Metrics:       metrics,
		SystemMetrics: collector,
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	if err := a.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}
	a.createServer()

	return a, nil
}

// initializeServices builds the domain objects from the rate card and
// wraps them in services
func (a *Application) initializeServices() error {
	tables, err := salary.NewTables(a.Config.Rates)
	if err != nil {
		return fmt.Errorf("failed to build salary tables: %w", err)
	}
	weights, err := predictor.NewWeights(a.Config.Rates.Predictor)
	if err != nil {
		return fmt.Errorf("failed to build predictor weights: %w", err)
	}

	estimator := salary.NewEstimator(tables)
	pred := predictor.New(weights)
	exp := exporter.New(a.Config.Report.Year, a.Config.Report.ChartWidth, a.Config.Report.ChartHeight)

	a.Services = &ServiceContainer{
		Analysis:  services.NewAnalysisService(estimator, exp, a.Metrics, a.Logger),
		Predictor: services.NewPredictorService(pred, a.Metrics, a.Logger),
		Health:    services.NewHealthService(contracts.Version, contracts.BuildTime, estimator, pred, a.Logger),
		Options:   services.FormOptions(a.Config.Rates.Predictor.MaxYears),
	}

	a.Logger.Info("Services initialized",
		slog.Int("hike_steps", a.Config.Rates.Hikes.Steps()),
		slog.Int("max_years", a.Config.Rates.Predictor.MaxYears))
	return nil
}

// setupRouter configures the router. Middleware order:
// RequestID → RealIP → OTel → ErrorMiddleware → SecureHeaders → CORS → RateLimit → Timeout
func (a *Application) setupRouter() error {
	r := chi.NewRouter()
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)

	// Prometheus metrics endpoint, outside the main group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	validator := customMiddleware.NewValidationMiddleware(a.Logger, a.ErrorHandler)
	svc := a.Services

	pages, err := handlers.NewPageHandler(svc.Analysis, svc.Predictor, svc.Options, a.Config.Report.Year, validator, a.ErrorHandler, a.Logger)
	if err != nil {
		return err
	}
	analysisHandler := handlers.NewAnalysisHandler(svc.Analysis, validator, a.ErrorHandler, a.Logger)
	predictorHandler := handlers.NewPredictorHandler(svc.Predictor, svc.Options, validator, a.ErrorHandler, a.Logger)
	healthHandler := handlers.NewHealthHandler(svc.Health, a.Logger)

	downloadAudit := customMiddleware.DownloadAudit(a.Logger)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)
		r.Use(apierrors.NewErrorMiddleware(a.ErrorHandler, a.Logger).Handler)
		r.Use(customMiddleware.DefaultSecureHeaders().Handler)
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Use(validator.ValidateRequest)
			r.Use(customMiddleware.ContentTypeValidator(a.ErrorHandler, "application/json"))

			r.Group(func(r chi.Router) {
				r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))
				healthHandler.RegisterRoutes(r)
				predictorHandler.RegisterRoutes(r)
			})

			// Report rendering gets the longer timeout
			r.Group(func(r chi.Router) {
				r.Use(customMiddleware.Timeout(a.Config.Server.ReportTimeout, a.Logger))
				analysisHandler.RegisterRoutes(r, downloadAudit)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(chimw.RequestSize(customMiddleware.DefaultMaxBodySize))
			r.Use(customMiddleware.Compress(5, "text/html"))
			r.Use(customMiddleware.Timeout(a.Config.Server.ReportTimeout, a.Logger))
			pages.RegisterRoutes(r, downloadAudit)
		})
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
	return nil
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the metrics collector and the HTTP server. A listen failure
// calls cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go a.SystemMetrics.Start(ctx)

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Server error")
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.SystemMetrics.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Error shutting down OpenTelemetry")
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(runCtx, cancel); err != nil {
		return err
	}

	<-runCtx.Done()
	a.Logger.Info("Received shutdown signal")

	// The run context is already done; shutdown needs a fresh one
	return a.Stop(context.Background())
}
