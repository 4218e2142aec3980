package server

import (
	"log/slog"
	"net/http"

	"shop-dashboard/internal/handlers"
	"shop-dashboard/internal/services"
)

type Server struct {
	dashboard   *services.Dashboard
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(dashboard *services.Dashboard, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		dashboard:   dashboard,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(dashboard, logger),
		sseHandlers: handlers.NewSSEHandlers(dashboard, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard page and operational routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints; every one reads the filter from the query string
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/revenue-daily", s.apiHandlers.HandleRevenueDaily)
	s.mux.HandleFunc("GET /api/revenue-monthly", s.apiHandlers.HandleRevenueMonthly)
	s.mux.HandleFunc("GET /api/revenue-dow", s.apiHandlers.HandleRevenueWeekday)
	s.mux.HandleFunc("GET /api/top-products", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/breakdown/{dimension}", s.apiHandlers.HandleBreakdown)
	s.mux.HandleFunc("GET /api/filter-options", s.apiHandlers.HandleFilterOptions)

	// CSV export of the filtered view
	s.mux.HandleFunc("GET /export/orders.csv", s.apiHandlers.HandleExportCSV)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/refresh", s.sseHandlers.HandleRefresh)
	s.mux.HandleFunc("GET /sse/filter-options", s.sseHandlers.HandleFilterOptions)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
