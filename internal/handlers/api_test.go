package handlers

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"shop-dashboard/internal/models"
	"shop-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func createTestDashboard() *services.Dashboard {
	d := services.NewDashboard()
	d.SetData([]models.Order{
		{
			OrderID: "O1", CustomerID: "C1",
			OrderDate: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			Category:  "Electronics", Subcategory: "Laptops", ProductName: "Ultrabook Pro 14",
			Country: "Germany", Gender: "Female", Age: 29, PaymentMethod: "Credit Card",
			Quantity: 1, UnitPrice: 1200, TotalAmount: 1200,
		},
		{
			OrderID: "O2", CustomerID: "C2",
			OrderDate: time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC),
			Category:  "Books", Subcategory: "Fiction", ProductName: "Mystery Novel",
			Country: "Japan", Gender: "Male", Age: 44, PaymentMethod: "PayPal",
			Quantity: 2, UnitPrice: 12, TotalAmount: 24,
		},
	})
	return d
}

func newTestAPIHandlers() *APIHandlers {
	return NewAPIHandlers(createTestDashboard(), testLogger())
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	return response
}

func TestAPIHandlers_HandleSummary(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	response := decodeSuccess(t, w)
	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected summary object in response")
	}
	if revenue := data["total_revenue"].(float64); revenue != 1224 {
		t.Errorf("total_revenue = %f, want 1224", revenue)
	}
	if count := data["order_count"].(float64); count != 2 {
		t.Errorf("order_count = %f, want 2", count)
	}
}

func TestAPIHandlers_HandleSummary_Filtered(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?category=Books", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]interface{})
	if revenue := data["total_revenue"].(float64); revenue != 24 {
		t.Errorf("filtered total_revenue = %f, want 24", revenue)
	}
}

func TestAPIHandlers_HandleSummary_InvalidDate(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?start=15-01-2024", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if success, ok := response["success"].(bool); !ok || success {
		t.Error("expected success=false in error response")
	}
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatal("expected error object in response")
	}
	if code := errObj["code"].(string); code != "VALIDATION_ERROR" {
		t.Errorf("error code = %s, want VALIDATION_ERROR", code)
	}
}

func TestAPIHandlers_HandleSummary_EndBeforeStart(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/summary?start=2024-02-01&end=2024-01-01", nil)
	w := httptest.NewRecorder()

	h.HandleSummary(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIHandlers_HandleTopProducts_Limit(t *testing.T) {
	h := newTestAPIHandlers()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
	}{
		{"default limit", "", http.StatusOK, 2},
		{"explicit limit", "?limit=1", http.StatusOK, 1},
		{"limit above max clamps", "?limit=5000", http.StatusOK, 2},
		{"invalid limit", "?limit=zero", http.StatusBadRequest, 0},
		{"negative limit", "?limit=-2", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/top-products"+tt.query, nil)
			w := httptest.NewRecorder()

			h.HandleTopProducts(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			response := decodeSuccess(t, w)
			data := response["data"].([]interface{})
			if len(data) != tt.wantLen {
				t.Errorf("got %d products, want %d", len(data), tt.wantLen)
			}
		})
	}
}

func TestAPIHandlers_HandleBreakdown(t *testing.T) {
	h := newTestAPIHandlers()

	for _, dim := range []string{"category", "subcategory", "country", "gender", "age-group", "payment-method"} {
		t.Run(dim, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/breakdown/"+dim, nil)
			req.SetPathValue("dimension", dim)
			w := httptest.NewRecorder()

			h.HandleBreakdown(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			response := decodeSuccess(t, w)
			data, ok := response["data"].([]interface{})
			if !ok || len(data) == 0 {
				t.Fatal("expected non-empty breakdown data")
			}
			entry := data[0].(map[string]interface{})
			if _, ok := entry["value"]; !ok {
				t.Error("breakdown entry missing value field")
			}
			if _, ok := entry["revenue"]; !ok {
				t.Error("breakdown entry missing revenue field")
			}
		})
	}
}

func TestAPIHandlers_HandleBreakdown_UnknownDimension(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/breakdown/shoe-size", nil)
	req.SetPathValue("dimension", "shoe-size")
	w := httptest.NewRecorder()

	h.HandleBreakdown(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIHandlers_HandleFilterOptions(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/filter-options?category=Books", nil)
	w := httptest.NewRecorder()

	h.HandleFilterOptions(w, req)

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]interface{})
	subs := data["subcategories"].([]interface{})
	if len(subs) != 1 || subs[0].(string) != "Fiction" {
		t.Errorf("drill-down subcategories = %v, want [Fiction]", subs)
	}
}

func TestAPIHandlers_HandleExportCSV(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/export/orders.csv?category=Electronics", nil)
	w := httptest.NewRecorder()

	h.HandleExportCSV(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("content-type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="orders.csv"` {
		t.Errorf("content-disposition = %q", cd)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[1][0] != "O1" {
		t.Errorf("exported order id = %s, want O1", rows[1][0])
	}
}

func TestAPIHandlers_HandleExportCSV_InvalidFilter(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/export/orders.csv?start=bogus", nil)
	w := httptest.NewRecorder()

	h.HandleExportCSV(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]interface{})
	if status := data["status"].(string); status != "healthy" {
		t.Errorf("status = %q, want healthy", status)
	}
	if ts := data["timestamp"].(string); ts == "" {
		t.Error("expected non-empty timestamp")
	} else if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("invalid timestamp format: %v", err)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	h := newTestAPIHandlers()

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	response := decodeSuccess(t, w)
	data := response["data"].(map[string]interface{})
	if rc := data["record_count"].(float64); rc != 2 {
		t.Errorf("record_count = %f, want 2", rc)
	}
}

func TestAPIHandlers_CacheHeaders(t *testing.T) {
	h := newTestAPIHandlers()

	endpoints := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"summary", h.HandleSummary},
		{"revenue-daily", h.HandleRevenueDaily},
		{"revenue-monthly", h.HandleRevenueMonthly},
		{"revenue-dow", h.HandleRevenueWeekday},
		{"top-products", h.HandleTopProducts},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			ep.handler(w, req)

			if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=60" {
				t.Errorf("cache-control = %q, want 'public, max-age=60'", cc)
			}
		})
	}
}
