package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"nordpulse/internal/analytics"
	"nordpulse/internal/config"
	"nordpulse/internal/dataset"
	"nordpulse/internal/errors"
	"nordpulse/internal/exporter"
	"nordpulse/internal/infrastructure"
	customMiddleware "nordpulse/internal/middleware"
	"nordpulse/internal/services"
	handlers "nordpulse/internal/transport/http"
)

const (
	VERSION = config.AppVersion
	AppName = config.AppName + " - Sales Returns Dashboard"
)

var (
	// BuildTime is set at compile time
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(VERSION))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	ErrorHandler  *errors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Cache     *dataset.Cache
	Pipeline  *analytics.Pipeline
	Exporter  *exporter.ProductExporter
	Dashboard *services.DashboardService
	Health    *services.HealthService
}

// NewApplication loads configuration, initializes the logger and builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.String("build_id", BuildID))

	paths := cfg.ResolvedPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromConfig(cfg.Metrics), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	businessMetrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       businessMetrics,
		ErrorHandler:  errors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	app.initializeServices(paths)
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the loader, cache, pipeline and services
func (a *Application) initializeServices(paths *config.Paths) {
	cache := dataset.NewCache(
		dataset.NewLoader(a.Logger),
		a.Config.Dataset.CacheTTL,
		dataset.WithLogger(a.Logger),
		dataset.WithMetrics(a.Metrics),
	)

	pipeline := analytics.NewPipeline(a.Logger,
		analytics.PipelineConfig{TotalSystemComplaints: a.Config.Dataset.TotalSystemComplaints},
		analytics.WithPipelineMetrics(a.Metrics),
		analytics.WithTracer(a.OTelProviders.Tracer),
	)

	productExporter := exporter.NewProductExporter(paths, a.Logger)

	// A nil Source makes every dataset call fail with ErrNoDatasetSource
	var source dataset.Source
	if path := a.Config.DatasetPath(); path != "" {
		fileSource := dataset.NewFileSource(path)
		fileSource.Sheet = a.Config.Dataset.Sheet
		source = fileSource
	}

	dashboardService := services.NewDashboardService(source, cache, pipeline, productExporter, a.Logger,
		services.WithExportMetrics(a.Metrics))

	healthService := services.NewHealthService(VERSION, BuildTime, BuildID, dashboardService, a.Logger)

	a.Services = &ServiceContainer{
		Cache:     cache,
		Pipeline:  pipeline,
		Exporter:  productExporter,
		Dashboard: dashboardService,
		Health:    healthService,
	}
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(errors.RecoveryMiddleware(a.ErrorHandler))
	r.Use(customMiddleware.DefaultSecureHeaders().Handler)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			a.ErrorHandler,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	// Prometheus exposition stays outside /api so scrapes skip the request timeout
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
		r.Use(customMiddleware.Compress(5))

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.Services.Dashboard, a.Logger, a.ErrorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Get("/filters", dashboardHandler.GetFilters)

		r.With(customMiddleware.AuditLog(a.Logger)).Post("/dataset/reload", dashboardHandler.ReloadDataset)
	})
}

// getCORSConfig returns the CORS configuration for the API
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
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

// Start starts the HTTP server and warms the dataset cache
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("dataset", a.Services.Dashboard.SourceName()),
		slog.Duration("cache_ttl", a.Services.Cache.TTL()),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Server error")
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

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

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Error shutting down OpenTelemetry")
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		infrastructure.WithError(a.Logger, err).WarnContext(ctx, "Error closing log file")
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(infrastructure.EnsureTraceID(context.Background()))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	return a.Stop(context.Background())
}

// performStartupHealthCheck preloads the dataset so the first request hits the cache.
// A missing or broken dataset is reported but does not stop the server.
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	if err := a.Services.Dashboard.Check(ctx); err != nil {
		return fmt.Errorf("dataset %q not loaded: %w", a.Services.Dashboard.SourceName(), err)
	}

	stats := a.Services.Cache.Stats()
	a.Logger.InfoContext(ctx, "Startup health check passed",
		slog.Int("cached_datasets", stats.Entries))
	return nil
}
