package services

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"shop-dashboard/internal/models"
)

// Dimension names a categorical breakdown axis.
type Dimension string

const (
	DimCategory      Dimension = "category"
	DimSubcategory   Dimension = "subcategory"
	DimCountry       Dimension = "country"
	DimGender        Dimension = "gender"
	DimAgeGroup      Dimension = "age-group"
	DimPaymentMethod Dimension = "payment-method"
)

// ParseDimension validates a client-supplied dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimCategory, DimSubcategory, DimCountry, DimGender, DimAgeGroup, DimPaymentMethod:
		return d, nil
	}
	return "", fmt.Errorf("unknown breakdown dimension %q", s)
}

// Dashboard holds the immutable in-memory order dataset and answers every
// filtered query by a full recomputation over it. There is no derived state
// to invalidate: each request scans, aggregates, and returns.
type Dashboard struct {
	mu          sync.RWMutex
	orders      []models.Order
	subsByCat   map[string][]string
	generatedAt time.Time
	logger      *slog.Logger
}

func NewDashboard() *Dashboard {
	return &Dashboard{
		subsByCat: make(map[string][]string),
		logger:    slog.Default(),
	}
}

// SetData installs the dataset and indexes the category/subcategory
// hierarchy used by the drill-down filter.
func (d *Dashboard) SetData(orders []models.Order) {
	subs := make(map[string]map[string]struct{})
	for _, o := range orders {
		if subs[o.Category] == nil {
			subs[o.Category] = make(map[string]struct{})
		}
		subs[o.Category][o.Subcategory] = struct{}{}
	}

	subsByCat := make(map[string][]string, len(subs))
	for cat, set := range subs {
		names := make([]string, 0, len(set))
		for s := range set {
			names = append(names, s)
		}
		slices.Sort(names)
		subsByCat[cat] = names
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = orders
	d.subsByCat = subsByCat
	d.generatedAt = time.Now()
}

// matcher is a Filter compiled into set lookups. Subcategory selections that
// do not belong to the selected categories have already been dropped, so a
// stale drill-down choice can never constrain the result.
type matcher struct {
	start, end     time.Time // end is exclusive
	categories     map[string]struct{}
	subcategories  map[string]struct{}
	genders        map[string]struct{}
	ageGroups      map[string]struct{}
	countries      map[string]struct{}
	paymentMethods map[string]struct{}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (d *Dashboard) compile(f models.Filter) matcher {
	m := matcher{
		start:          f.Start,
		categories:     toSet(f.Categories),
		genders:        toSet(f.Genders),
		ageGroups:      toSet(f.AgeGroups),
		countries:      toSet(f.Countries),
		paymentMethods: toSet(f.PaymentMethods),
	}
	if !f.End.IsZero() {
		m.end = f.End.AddDate(0, 0, 1) // inclusive end date
	}

	if len(f.Subcategories) > 0 {
		valid := make(map[string]struct{})
		if m.categories == nil {
			for _, names := range d.subsByCat {
				for _, s := range names {
					valid[s] = struct{}{}
				}
			}
		} else {
			for cat := range m.categories {
				for _, s := range d.subsByCat[cat] {
					valid[s] = struct{}{}
				}
			}
		}
		kept := make(map[string]struct{}, len(f.Subcategories))
		for _, s := range f.Subcategories {
			if _, ok := valid[s]; ok {
				kept[s] = struct{}{}
			}
		}
		if len(kept) > 0 {
			m.subcategories = kept
		}
	}
	return m
}

func inSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func (m matcher) matches(o models.Order) bool {
	if !m.start.IsZero() && o.OrderDate.Before(m.start) {
		return false
	}
	if !m.end.IsZero() && !o.OrderDate.Before(m.end) {
		return false
	}
	return inSet(m.categories, o.Category) &&
		inSet(m.subcategories, o.Subcategory) &&
		inSet(m.genders, o.Gender) &&
		inSet(m.ageGroups, models.AgeGroup(o.Age)) &&
		inSet(m.countries, o.Country) &&
		inSet(m.paymentMethods, o.PaymentMethod)
}

// Filter returns the orders satisfying every constraint. The result is a
// fresh slice; callers may not assume any particular capacity.
func (d *Dashboard) Filter(f models.Filter) []models.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.compile(f)
	result := make([]models.Order, 0, len(d.orders)/4)
	for _, o := range d.orders {
		if m.matches(o) {
			result = append(result, o)
		}
	}
	return result
}

// Summary computes the headline metrics for the filtered view. An empty
// result is a defined state: all metrics are zero, never NaN.
func (d *Dashboard) Summary(f models.Filter) models.Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.compile(f)
	var s models.Summary
	customers := make(map[string]struct{})
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		s.TotalRevenue += o.TotalAmount
		s.OrderCount++
		customers[o.CustomerID] = struct{}{}
	}
	s.CustomerCount = len(customers)
	if s.OrderCount > 0 {
		s.AvgOrderValue = s.TotalRevenue / float64(s.OrderCount)
	}
	return s
}

// RevenueByDay buckets revenue per calendar day, chronologically sorted.
func (d *Dashboard) RevenueByDay(f models.Filter) []models.TimePoint {
	return d.timeSeries(f, func(t time.Time) string { return t.Format(time.DateOnly) })
}

// RevenueByMonth buckets revenue per calendar month, chronologically sorted.
func (d *Dashboard) RevenueByMonth(f models.Filter) []models.TimePoint {
	return d.timeSeries(f, func(t time.Time) string { return t.Format("2006-01") })
}

func (d *Dashboard) timeSeries(f models.Filter, bucket func(time.Time) string) []models.TimePoint {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.compile(f)
	groups := make(map[string]*models.TimePoint)
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		key := bucket(o.OrderDate)
		tp := groups[key]
		if tp == nil {
			tp = &models.TimePoint{Period: key}
			groups[key] = tp
		}
		tp.Revenue += o.TotalAmount
		tp.Orders++
	}

	result := make([]models.TimePoint, 0, len(groups))
	for _, tp := range groups {
		result = append(result, *tp)
	}
	slices.SortFunc(result, func(a, b models.TimePoint) int {
		return strings.Compare(a.Period, b.Period)
	})
	return result
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// RevenueByWeekday buckets revenue per day of week, Monday first.
func (d *Dashboard) RevenueByWeekday(f models.Filter) []models.TimePoint {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.compile(f)
	groups := make(map[time.Weekday]*models.TimePoint)
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		wd := o.OrderDate.Weekday()
		tp := groups[wd]
		if tp == nil {
			tp = &models.TimePoint{Period: wd.String()}
			groups[wd] = tp
		}
		tp.Revenue += o.TotalAmount
		tp.Orders++
	}

	result := make([]models.TimePoint, 0, len(groups))
	for _, wd := range weekdayOrder {
		if tp := groups[wd]; tp != nil {
			result = append(result, *tp)
		}
	}
	return result
}

// TopProducts returns the limit best sellers by revenue under the filter.
func (d *Dashboard) TopProducts(f models.Filter, limit int) []models.ProductSales {
	d.mu.RLock()
	defer d.mu.RUnlock()

	m := d.compile(f)
	groups := make(map[string]*models.ProductSales)
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		ps := groups[o.ProductName]
		if ps == nil {
			ps = &models.ProductSales{
				ProductName: o.ProductName,
				Category:    o.Category,
				Subcategory: o.Subcategory,
			}
			groups[o.ProductName] = ps
		}
		ps.Revenue += o.TotalAmount
		ps.Units += o.Quantity
		ps.Orders++
	}

	result := make([]models.ProductSales, 0, len(groups))
	for _, ps := range groups {
		result = append(result, *ps)
	}
	slices.SortFunc(result, func(a, b models.ProductSales) int {
		if a.Revenue != b.Revenue {
			if a.Revenue > b.Revenue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ProductName, b.ProductName)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Breakdown aggregates order count and revenue per value of dim.
func (d *Dashboard) Breakdown(f models.Filter, dim Dimension) []models.DimensionSlice {
	d.mu.RLock()
	defer d.mu.RUnlock()

	key := dimensionKey(dim)
	m := d.compile(f)
	groups := make(map[string]*models.DimensionSlice)
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		v := key(o)
		ds := groups[v]
		if ds == nil {
			ds = &models.DimensionSlice{Value: v}
			groups[v] = ds
		}
		ds.Orders++
		ds.Revenue += o.TotalAmount
	}

	result := make([]models.DimensionSlice, 0, len(groups))
	for _, ds := range groups {
		result = append(result, *ds)
	}
	slices.SortFunc(result, func(a, b models.DimensionSlice) int {
		if a.Revenue != b.Revenue {
			if a.Revenue > b.Revenue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Value, b.Value)
	})
	return result
}

func dimensionKey(dim Dimension) func(models.Order) string {
	switch dim {
	case DimCategory:
		return func(o models.Order) string { return o.Category }
	case DimSubcategory:
		return func(o models.Order) string { return o.Subcategory }
	case DimCountry:
		return func(o models.Order) string { return o.Country }
	case DimGender:
		return func(o models.Order) string { return o.Gender }
	case DimAgeGroup:
		return func(o models.Order) string { return models.AgeGroup(o.Age) }
	case DimPaymentMethod:
		return func(o models.Order) string { return o.PaymentMethod }
	default:
		return func(models.Order) string { return "" }
	}
}

// FilterOptions lists the selectable values per dimension. When
// selectedCategories is non-empty, subcategories are narrowed to those
// belonging to the selection (drill-down).
func (d *Dashboard) FilterOptions(selectedCategories []string) models.FilterOptions {
	d.mu.RLock()
	defer d.mu.RUnlock()

	opts := models.FilterOptions{
		Categories:     make([]string, 0, len(d.subsByCat)),
		Subcategories:  []string{},
		Genders:        []string{},
		AgeGroups:      []string{},
		Countries:      []string{},
		PaymentMethods: []string{},
	}

	for cat := range d.subsByCat {
		opts.Categories = append(opts.Categories, cat)
	}
	slices.Sort(opts.Categories)

	cats := opts.Categories
	if len(selectedCategories) > 0 {
		cats = make([]string, 0, len(selectedCategories))
		for _, c := range selectedCategories {
			if _, ok := d.subsByCat[c]; ok {
				cats = append(cats, c)
			}
		}
	}
	for _, c := range cats {
		opts.Subcategories = append(opts.Subcategories, d.subsByCat[c]...)
	}
	slices.Sort(opts.Subcategories)

	genders := make(map[string]struct{})
	ageGroups := make(map[string]struct{})
	countries := make(map[string]struct{})
	payments := make(map[string]struct{})
	var minDate, maxDate time.Time
	for _, o := range d.orders {
		genders[o.Gender] = struct{}{}
		ageGroups[models.AgeGroup(o.Age)] = struct{}{}
		countries[o.Country] = struct{}{}
		payments[o.PaymentMethod] = struct{}{}
		if minDate.IsZero() || o.OrderDate.Before(minDate) {
			minDate = o.OrderDate
		}
		if o.OrderDate.After(maxDate) {
			maxDate = o.OrderDate
		}
	}
	opts.Genders = sortedKeys(genders)
	opts.AgeGroups = sortedKeys(ageGroups)
	opts.Countries = sortedKeys(countries)
	opts.PaymentMethods = sortedKeys(payments)
	if !minDate.IsZero() {
		opts.MinDate = minDate.Format(time.DateOnly)
		opts.MaxDate = maxDate.Format(time.DateOnly)
	}
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Stats exposes dataset shape for the admin surface.
func (d *Dashboard) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	customers := make(map[string]struct{})
	countries := make(map[string]struct{})
	products := make(map[string]struct{})
	for _, o := range d.orders {
		customers[o.CustomerID] = struct{}{}
		countries[o.Country] = struct{}{}
		products[o.ProductName] = struct{}{}
	}

	return map[string]any{
		"record_count": len(d.orders),
		"generated_at": d.generatedAt,
		"categories":   len(d.subsByCat),
		"customers":    len(customers),
		"countries":    len(countries),
		"products":     len(products),
	}
}
