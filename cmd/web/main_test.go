package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"shop-dashboard/internal/models"
	"shop-dashboard/internal/server"
	"shop-dashboard/internal/services"
)

func newTestDashboard() *services.Dashboard {
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
		{
			OrderID: "O3", CustomerID: "C1",
			OrderDate: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			Category:  "Books", Subcategory: "Non-Fiction", ProductName: "Biography",
			Country: "Germany", Gender: "Female", Age: 29, PaymentMethod: "Gift Card",
			Quantity: 1, UnitPrice: 20, TotalAmount: 20,
		},
	})
	return d
}

func newTestServer() *server.Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	dashboard := newTestDashboard()
	templateHandlers := &server.TemplateHandlers{Dashboard: newDashboardHandler(dashboard)}
	return server.NewServer(dashboard, logger, templateHandlers)
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/summary", http.StatusOK, "application/json"},
		{"/api/revenue-daily", http.StatusOK, "application/json"},
		{"/api/revenue-monthly", http.StatusOK, "application/json"},
		{"/api/revenue-dow", http.StatusOK, "application/json"},
		{"/api/top-products", http.StatusOK, "application/json"},
		{"/api/breakdown/category", http.StatusOK, "application/json"},
		{"/api/breakdown/payment-method", http.StatusOK, "application/json"},
		{"/api/filter-options", http.StatusOK, "application/json"},
		{"/export/orders.csv", http.StatusOK, "text/csv"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

// The same filter parameters must produce consistent views across endpoints.
func TestServer_FilteredViewsAgree(t *testing.T) {
	srv := newTestServer()
	query := "?category=Books"

	get := func(path string) map[string]interface{} {
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", path+query, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, w.Code)
		}
		var response map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		return response
	}

	summary := get("/api/summary")["data"].(map[string]interface{})
	wantRevenue := summary["total_revenue"].(float64)

	var breakdownTotal float64
	for _, entry := range get("/api/breakdown/country")["data"].([]interface{}) {
		breakdownTotal += entry.(map[string]interface{})["revenue"].(float64)
	}
	if breakdownTotal != wantRevenue {
		t.Errorf("country breakdown sums to %f, summary says %f", breakdownTotal, wantRevenue)
	}

	// CSV row count must match the summary's order count.
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/export/orders.csv"+query, nil))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if got, want := len(lines)-1, int(summary["order_count"].(float64)); got != want {
		t.Errorf("CSV exports %d rows, summary counts %d orders", got, want)
	}
}

func TestServer_SSERoutes(t *testing.T) {
	srv := newTestServer()

	for _, route := range []string{"/sse/refresh", "/sse/filter-options"} {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
		})
	}
}

func TestServer_ErrorHandling(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/api/summary", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
		{"DELETE", "/health", http.StatusMethodNotAllowed},
		{"GET", "/api/breakdown/unknown-dim", http.StatusBadRequest},
		{"GET", "/api/summary?start=nonsense", http.StatusBadRequest},
		{"GET", "/no-such-page", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

// Test dashboard template rendering
func TestDashboardPage(t *testing.T) {
	dashboard := newTestDashboard()
	handler := newDashboardHandler(dashboard)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	expectedComponents := []string{
		"E-commerce Sales Dashboard",
		"Filter Options",
		"Sales Over Time",
		"Sales by Category",
		"Top 10 Products",
		"Sales by Day of Week",
		"Gender Distribution",
		"Payment Methods",
		"Download filtered CSV",
	}
	for _, component := range expectedComponents {
		if !strings.Contains(body, component) {
			t.Errorf("dashboard should contain %q", component)
		}
	}

	// Filter selects are populated server-side from the dataset.
	for _, option := range []string{"Electronics", "Books", "Germany", "Japan", "Credit Card"} {
		if !strings.Contains(body, option) {
			t.Errorf("dashboard should offer filter option %q", option)
		}
	}
}
