package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"shop-dashboard/internal/errors"
	"shop-dashboard/internal/observability"
	"shop-dashboard/internal/services"
)

const (
	defaultTopProducts = 10
	maxTopProducts     = 100
	cacheMaxAge        = "public, max-age=60"
)

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *APIHandlers) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func cacheHeaders() map[string]string {
	return map[string]string{"Cache-Control": cacheMaxAge}
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.Summary(f), cacheHeaders())
}

func (h *APIHandlers) HandleRevenueDaily(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.RevenueByDay(f), cacheHeaders())
}

func (h *APIHandlers) HandleRevenueMonthly(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.RevenueByMonth(f), cacheHeaders())
}

func (h *APIHandlers) HandleRevenueWeekday(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.RevenueByWeekday(f), cacheHeaders())
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	limit, err := parseLimit(r, "limit", defaultTopProducts, maxTopProducts)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.TopProducts(f, limit), cacheHeaders())
}

// HandleBreakdown serves /api/breakdown/{dimension} for every categorical
// dimension the dashboard offers.
func (h *APIHandlers) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	dim, err := services.ParseDimension(r.PathValue("dimension"))
	if err != nil {
		h.writeErr(w, r, errors.ValidationWrap(err, "unknown breakdown dimension"))
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.Breakdown(f, dim), cacheHeaders())
}

// HandleFilterOptions serves the drill-down option lists. Subcategory
// options follow the category parameter.
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	selected := splitValues(r.URL.Query()["category"])
	errors.WriteSuccess(w, h.dashboard.FilterOptions(selected))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
