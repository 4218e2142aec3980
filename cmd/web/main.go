package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"shop-dashboard/internal/config"
	"shop-dashboard/internal/datagen"
	"shop-dashboard/internal/middleware"
	"shop-dashboard/internal/observability"
	"shop-dashboard/internal/server"
	"shop-dashboard/internal/services"
	"shop-dashboard/internal/ui/templates"
)

const (
	renderTimeout   = 10 * time.Second
	generateTimeout = 60 * time.Second
)

// newDashboardHandler renders the dashboard page with the current
// drill-down option lists.
func newDashboardHandler(dashboard *services.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		opts := dashboard.FilterOptions(nil)
		if err := templates.Dashboard(opts).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	start := time.Now()
	orders, err := datagen.Generate(ctx, datagen.Config{
		Seed:      cfg.Dataset.Seed,
		Orders:    cfg.Dataset.Orders,
		Customers: cfg.Dataset.Customers,
		Days:      cfg.Dataset.Days,
	})
	if err != nil {
		logger.Error("failed to generate dataset", "error", err)
		os.Exit(1)
	}

	dashboard := services.NewDashboard()
	dashboard.SetData(orders)
	logger.Info("dataset generated",
		"orders", len(orders),
		"duration", time.Since(start),
	)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: newDashboardHandler(dashboard),
	}

	srv := server.NewServer(dashboard, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down dashboard service")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
