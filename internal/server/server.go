package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"personal-ledger/internal/config"
	"personal-ledger/internal/database"
	"personal-ledger/internal/handlers"
	"personal-ledger/internal/middleware"
	"personal-ledger/internal/repositories"
	"personal-ledger/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

// Server owns the HTTP surface of the ledger
type Server struct {
	cfg       *config.Config
	echo      *echo.Echo
	logger    *slog.Logger
	bootstrap services.BootstrapServiceInterface
}

// Options tunes New. Zero values fall back to the process-wide defaults.
type Options struct {
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// New builds the services on db and registers every route
func New(cfg *config.Config, db *database.DB, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	metrics := services.NewPrometheusMetrics(registerer)
	store := repositories.NewStore(db.DB)

	ledgerService := services.NewLedgerService(store, metrics)
	summaryService := services.NewSummaryService(store.Transactions(), metrics)
	bootstrapService := services.NewBootstrapService(store, metrics)
	insightsService := services.NewInsightsService(summaryService, store.Transactions())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	if cfg.RateLimit.RequestsPerSecond > 0 {
		e.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	s := &Server{
		cfg:       cfg,
		echo:      e,
		logger:    logger,
		bootstrap: bootstrapService,
	}

	s.registerRoutes(routeHandlers{
		health:      handlers.NewHealthCheckHandler(db),
		users:       handlers.NewUserHandler(ledgerService),
		categories:  handlers.NewCategoryHandler(ledgerService),
		transaction: handlers.NewTransactionHandler(ledgerService),
		summary:     handlers.NewSummaryHandler(summaryService),
		insights:    handlers.NewInsightsHandler(insightsService),
		bootstrap:   handlers.NewBootstrapHandler(bootstrapService),
		metrics:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	})

	return s
}

type routeHandlers struct {
	health      *handlers.HealthCheckHandler
	users       *handlers.UserHandler
	categories  *handlers.CategoryHandler
	transaction *handlers.TransactionHandler
	summary     *handlers.SummaryHandler
	insights    *handlers.InsightsHandler
	bootstrap   *handlers.BootstrapHandler
	metrics     http.Handler
}

func (s *Server) registerRoutes(h routeHandlers) {
	s.echo.GET("/health", h.health.HealthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(h.metrics))

	v1 := s.echo.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", h.users.CreateUser)
	users.GET("", h.users.ListUsers)
	users.GET("/:id", h.users.GetUser)
	users.DELETE("/:id", h.users.DeleteUser)

	categories := v1.Group("/categories")
	categories.POST("", h.categories.CreateCategory)
	categories.GET("", h.categories.ListCategories)
	categories.GET("/:id", h.categories.GetCategory)
	categories.DELETE("/:id", h.categories.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.POST("", h.transaction.CreateTransaction)
	transactions.GET("", h.transaction.ListTransactions)
	transactions.GET("/:id", h.transaction.GetTransaction)
	transactions.DELETE("/:id", h.transaction.DeleteTransaction)

	summary := v1.Group("/summary")
	summary.GET("", h.summary.GetSummary)
	summary.GET("/income", h.summary.GetTotalIncome)
	summary.GET("/expense", h.summary.GetTotalExpense)
	summary.GET("/balance", h.summary.GetRemainingBalance)
	summary.GET("/categories", h.summary.GetCategoryBreakdown)

	insights := v1.Group("/insights")
	insights.GET("/spending", h.insights.GetSpendingSummary)
	insights.GET("/advice", h.insights.GetAdvice)

	v1.POST("/bootstrap", h.bootstrap.Bootstrap)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// SeedIfEnabled loads the demo data when Ledger.SeedOnStartup is set. An
// already populated store is not an error.
func (s *Server) SeedIfEnabled() error {
	if !s.cfg.Ledger.SeedOnStartup {
		return nil
	}

	result, err := s.bootstrap.Bootstrap()
	if stderrors.Is(err, services.ErrAlreadyBootstrapped) {
		s.logger.Info("ledger already has data, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed ledger: %w", err)
	}

	s.logger.Info("seeded demo ledger",
		"user_id", result.User.ID,
		"categories", len(result.Categories),
		"transactions", len(result.Transactions),
	)
	return nil
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.echo,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting ledger server", "address", srv.Addr, "environment", s.cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down ledger server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
