package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"sheetsum/internal/config"
	apierrors "sheetsum/internal/errors"
	"sheetsum/internal/infrastructure"
	customMiddleware "sheetsum/internal/middleware"
	"sheetsum/internal/services"
	"sheetsum/internal/summary"
	handlers "sheetsum/internal/transport/http"
	"sheetsum/pkg/contracts"
)

// Application is the main application container. All components are wired
// together here at startup.
type Application struct {
	Config         *config.Config
	Router         *chi.Mux
	Server         *http.Server
	Logger         *slog.Logger
	OTelProviders  *infrastructure.OTelProviders
	SummaryService *services.SummaryService
	HealthService  *services.HealthService

	metrics      *infrastructure.SummaryMetrics
	errorHandler *apierrors.ErrorHandler
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", contracts.Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("level", cfg.Logging.Level))

	providers, err := infrastructure.InitializeOTel(cfg.Observability, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	var metrics *infrastructure.SummaryMetrics
	if providers.Meter != nil {
		metrics, err = infrastructure.CreateSummaryMetrics(providers.Meter)
		if err != nil {
			logger.Warn("failed to create metrics, continuing without",
				slog.String("error", err.Error()))
			metrics = nil
		}
	}

	summarizer := summary.NewSummarizer(logger, summary.Config{
		HeaderSearchDepth:    cfg.Summary.HeaderSearchDepth,
		IncludeExtendedStats: cfg.Summary.IncludeExtendedStats,
	})

	app := &Application{
		Config:         cfg,
		Logger:         logger,
		OTelProviders:  providers,
		SummaryService: services.NewSummaryService(summarizer, logger, metrics),
		HealthService:  services.NewHealthService(logger),
		metrics:        metrics,
		errorHandler:   apierrors.NewErrorHandler(logger, cfg.Logging.Level == "debug"),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Everything except /metrics runs with the full middleware chain.
	r.Group(func(r chi.Router) {
		if a.OTelProviders != nil && a.OTelProviders.Tracer != nil {
			otelMiddleware := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.metrics)
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: []string{"*"},
			Logger:         a.Logger,
		}))

		if a.Config.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.RateLimit.RPS,
				a.Config.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		r.NotFound(a.errorHandler.NotFound)
		r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

		a.setupAPIRoutes(r)
	})

	// Prometheus metrics endpoint stays outside the middleware group.
	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	summaryHandler := handlers.NewSummaryHandler(
		a.SummaryService, a.Logger, a.errorHandler, a.Config.Summary.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		// Subrouters do not inherit the root's problem handlers, so they
		// are registered again here before mounting; chi then propagates
		// them into the mounted handler routers.
		r.NotFound(a.errorHandler.NotFound)
		r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

		r.Mount("/summary", summaryHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)
	})
}

// createServer builds the HTTP server around the router
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until the context is cancelled or
// an interrupt signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "server listening",
			slog.String("address", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "server shutdown error",
			slog.String("error", err.Error()))
		return err
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.WarnContext(ctx, "observability shutdown error",
				slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()
	a.Logger.InfoContext(ctx, "application stopped")
	return nil
}
