package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-dashboard/internal/models"
)

func newTestSSEHandlers() *SSEHandlers {
	return NewSSEHandlers(createTestDashboard(), testLogger())
}

func TestNewSSEHandlers(t *testing.T) {
	h := newTestSSEHandlers()
	if h == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if h.dashboard == nil {
		t.Error("NewSSEHandlers() should set dashboard field")
	}
}

func TestSSEHandlers_renderSummaryCards(t *testing.T) {
	h := newTestSSEHandlers()

	html, err := h.renderSummaryCards(models.Summary{
		TotalRevenue:  1224,
		OrderCount:    2,
		AvgOrderValue: 612,
		CustomerCount: 2,
	})
	if err != nil {
		t.Fatalf("renderSummaryCards() failed: %v", err)
	}

	expectedContent := []string{
		`id="summary-cards"`,
		"Total Revenue",
		"$1224.00",
		"Avg Order Value",
		"$612.00",
		"Customers",
	}
	for _, content := range expectedContent {
		if !strings.Contains(html, content) {
			t.Errorf("expected HTML to contain %q", content)
		}
	}
}

func TestSSEHandlers_renderSummaryCards_NoData(t *testing.T) {
	h := newTestSSEHandlers()

	html, err := h.renderSummaryCards(models.Summary{})
	if err != nil {
		t.Fatalf("renderSummaryCards() failed: %v", err)
	}

	if !strings.Contains(html, "No orders match") {
		t.Error("zero-order summary should render the no-data state")
	}
	if strings.Contains(html, "Total Revenue") {
		t.Error("zero-order summary should not render metric cards")
	}
}

func TestSSEHandlers_HandleRefresh(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh?category=Electronics", nil)
	w := httptest.NewRecorder()

	h.HandleRefresh(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content-type = %q, should contain text/event-stream", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "summary-cards") {
		t.Error("refresh should patch the summary cards element")
	}
	for _, signal := range []string{"dailyRevenue", "topProducts", "categoryRevenue", "paymentShare"} {
		if !strings.Contains(body, signal) {
			t.Errorf("refresh should push signal %q", signal)
		}
	}
	// Only the Electronics order should surface in the patched summary.
	if !strings.Contains(body, "$1200.00") {
		t.Error("filtered summary should show Electronics revenue")
	}
}

func TestSSEHandlers_HandleRefresh_InvalidFilter(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh?start=bogus", nil)
	w := httptest.NewRecorder()

	h.HandleRefresh(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Invalid filter selection") {
		t.Error("invalid filter should patch an error state, got: " + body)
	}
}

func TestSSEHandlers_HandleFilterOptions(t *testing.T) {
	h := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/filter-options?category=Books", nil)
	w := httptest.NewRecorder()

	h.HandleFilterOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "filterOptions") {
		t.Error("expected filterOptions signal")
	}
	if !strings.Contains(body, "Fiction") {
		t.Error("expected drill-down subcategory in signal payload")
	}
	if strings.Contains(body, "Laptops") {
		t.Error("subcategories outside the selected category should not appear")
	}
}
