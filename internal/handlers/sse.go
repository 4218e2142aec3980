package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"shop-dashboard/internal/models"
	"shop-dashboard/internal/services"
)

var summaryCardsTemplate = template.Must(template.New("summaryCards").Parse(`
<div id="summary-cards" class="metric-grid">
{{if eq .OrderCount 0}}<div class="no-data">No orders match the selected filters. Adjust your selection.</div>{{else}}
<div class="metric-card"><span class="metric-label">Total Revenue</span><strong>${{printf "%.2f" .TotalRevenue}}</strong></div>
<div class="metric-card"><span class="metric-label">Orders</span><strong>{{.OrderCount}}</strong></div>
<div class="metric-card"><span class="metric-label">Avg Order Value</span><strong>${{printf "%.2f" .AvgOrderValue}}</strong></div>
<div class="metric-card"><span class="metric-label">Customers</span><strong>{{.CustomerCount}}</strong></div>
{{end}}
</div>`))

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderSummaryCards(s models.Summary) (string, error) {
	var buf strings.Builder
	err := summaryCardsTemplate.Execute(&buf, s)
	return buf.String(), err
}

// HandleRefresh recomputes every dashboard view for the filter carried in
// the query string and pushes the results over one SSE response: the summary
// cards as patched elements, the chart datasets as signals.
func (h *SSEHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		h.writeValidationEvent(w, r, err)
		return
	}

	sse := datastar.NewSSE(w, r)

	html, err := h.renderSummaryCards(h.dashboard.Summary(f))
	if err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}
	sse.PatchElements(html)

	signals, err := json.Marshal(map[string]any{
		"dailyRevenue":       h.dashboard.RevenueByDay(f),
		"monthlyRevenue":     h.dashboard.RevenueByMonth(f),
		"weekdayRevenue":     h.dashboard.RevenueByWeekday(f),
		"topProducts":        h.dashboard.TopProducts(f, defaultTopProducts),
		"categoryRevenue":    h.dashboard.Breakdown(f, services.DimCategory),
		"subcategoryRevenue": h.dashboard.Breakdown(f, services.DimSubcategory),
		"countryRevenue":     h.dashboard.Breakdown(f, services.DimCountry),
		"genderShare":        h.dashboard.Breakdown(f, services.DimGender),
		"ageGroupShare":      h.dashboard.Breakdown(f, services.DimAgeGroup),
		"paymentShare":       h.dashboard.Breakdown(f, services.DimPaymentMethod),
	})
	if err != nil {
		h.logger.Error("marshal dashboard signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// HandleFilterOptions pushes refreshed drill-down option lists as signals
// when the category selection changes.
func (h *SSEHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	selected := splitValues(r.URL.Query()["category"])

	sse := datastar.NewSSE(w, r)

	signals, err := json.Marshal(map[string]any{
		"filterOptions": h.dashboard.FilterOptions(selected),
	})
	if err != nil {
		h.logger.Error("marshal filter options", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// Validation failures on the SSE path still answer in event-stream form so
// the browser connection settles instead of surfacing a broken stream.
func (h *SSEHandlers) writeValidationEvent(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn("invalid filter on sse request", "error", err)

	sse := datastar.NewSSE(w, r)
	sse.PatchElements(`<div id="summary-cards" class="metric-grid"><div class="no-data">Invalid filter selection.</div></div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}
