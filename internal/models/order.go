package models

import "time"

// Order is one synthetic e-commerce transaction. The dataset is generated
// once at startup and never mutated; filtering produces derived views.
type Order struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	OrderDate     time.Time `json:"order_date"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	ProductName   string    `json:"product_name"`
	Country       string    `json:"country"`
	Gender        string    `json:"gender"`
	Age           int       `json:"age"`
	PaymentMethod string    `json:"payment_method"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalAmount   float64   `json:"total_amount"`
}

// AgeGroup maps a customer age onto the dashboard's demographic buckets.
func AgeGroup(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	case age <= 64:
		return "55-64"
	default:
		return "65+"
	}
}

// Filter is a user-selected set of constraints. Dimensions combine with AND,
// values within a dimension with OR. An empty slice means the dimension is
// unconstrained. Zero Start/End mean an open-ended date range.
type Filter struct {
	Start          time.Time
	End            time.Time
	Categories     []string
	Subcategories  []string
	Genders        []string
	AgeGroups      []string
	Countries      []string
	PaymentMethods []string
}

// IsZero reports whether the filter applies no constraints at all.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() &&
		len(f.Categories) == 0 && len(f.Subcategories) == 0 &&
		len(f.Genders) == 0 && len(f.AgeGroups) == 0 &&
		len(f.Countries) == 0 && len(f.PaymentMethods) == 0
}

// Summary holds the headline metrics for a filtered view.
type Summary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
	CustomerCount int     `json:"customer_count"`
}

// TimePoint is one bucket of a revenue-over-time series. Period is a day
// ("2023-01-15"), a month ("2023-01") or a weekday name depending on the
// series it belongs to.
type TimePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// ProductSales aggregates one product's performance under the active filter.
type ProductSales struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Revenue     float64 `json:"revenue"`
	Units       int     `json:"units"`
	Orders      int     `json:"orders"`
}

// DimensionSlice is a count/revenue breakdown entry for one value of a
// categorical dimension (category, country, gender, ...).
type DimensionSlice struct {
	Value   string  `json:"value"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// FilterOptions lists the selectable values per dimension. Subcategories are
// restricted to the selected categories (drill-down); the rest always cover
// the whole dataset.
type FilterOptions struct {
	MinDate        string   `json:"min_date"`
	MaxDate        string   `json:"max_date"`
	Categories     []string `json:"categories"`
	Subcategories  []string `json:"subcategories"`
	Genders        []string `json:"genders"`
	AgeGroups      []string `json:"age_groups"`
	Countries      []string `json:"countries"`
	PaymentMethods []string `json:"payment_methods"`
}
