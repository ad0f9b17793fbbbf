package routes

import (
	"context"
	"net/http"

	"transaksi-api/internal/config"
	"transaksi-api/internal/database"
	"transaksi-api/internal/handlers"
	"transaksi-api/internal/middleware"
	"transaksi-api/internal/repositories"
	"transaksi-api/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "1M"

// Options carries everything the router needs to build its handlers.
type Options struct {
	Server   *config.ServerConfig
	Database *database.DB

	// Registry receives the request and transaction collectors. A fresh
	// registry is created when nil. /metrics serves it together with the
	// default registry.
	Registry *prometheus.Registry
}

// NewRouter builds the echo instance with middleware and routes registered.
// Background work started here, the rate limiter sweep, stops when ctx is done.
func NewRouter(ctx context.Context, opts Options) *echo.Echo {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = middleware.ClientIPExtractor(opts.Server.TrustProxy)
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	metrics := services.NewPrometheusMetrics(registry)

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.Metrics(metrics))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.Server.CORSAllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(middleware.SecurityHeaders())
	if opts.Server.RateLimitEnabled() {
		limiter := middleware.NewRateLimiter(opts.Server.RateLimitPerSecond, opts.Server.RateLimitBurst)
		go limiter.Run(ctx)
		e.Use(limiter.Middleware())
	}
	e.Use(echomw.BodyLimit(maxBodySize))

	transactionRepo := repositories.NewTransactionRepository(opts.Database)

	registerRoutes(e, routeHandlers{
		root:         handlers.NewRootHandler(),
		health:       handlers.NewHealthCheckHandler(opts.Database),
		transactions: handlers.NewTransactionHandler(transactionRepo, metrics),
		metrics:      promhttp.HandlerFor(prometheus.Gatherers{registry, prometheus.DefaultGatherer}, promhttp.HandlerOpts{}),
	})

	return e
}

type routeHandlers struct {
	root         *handlers.RootHandler
	health       *handlers.HealthCheckHandler
	transactions *handlers.TransactionHandler
	metrics      http.Handler
}

func registerRoutes(e *echo.Echo, h routeHandlers) {
	e.GET("/", h.root.Root)
	e.GET("/health", h.health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(h.metrics))

	e.POST("/transaksi", h.transactions.CreateTransaction)
	e.GET("/transaksi", h.transactions.ListTransactions)
}
