package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shop-dashboard/internal/errors"
	"shop-dashboard/internal/models"
)

// parseFilter builds a Filter from the request query string. Multi-select
// dimensions accept repeated parameters and comma-separated lists; dates use
// YYYY-MM-DD. A malformed value is a validation error, never a crash or a
// silently widened filter.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	var f models.Filter

	if s := q.Get("start"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return f, errors.ValidationWrap(err, fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", s))
		}
		f.Start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return f, errors.ValidationWrap(err, fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", s))
		}
		f.End = t
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return f, errors.Validation("end date must not precede start date")
	}

	f.Categories = splitValues(q["category"])
	f.Subcategories = splitValues(q["subcategory"])
	f.Genders = splitValues(q["gender"])
	f.AgeGroups = splitValues(q["age_group"])
	f.Countries = splitValues(q["country"])
	f.PaymentMethods = splitValues(q["payment_method"])

	return f, nil
}

func splitValues(raw []string) []string {
	var values []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// parseLimit reads an optional positive integer query parameter, clamped to
// maxValue.
func parseLimit(r *http.Request, key string, defaultValue, maxValue int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Validation(fmt.Sprintf("invalid %s %q, expected a positive integer", key, s))
	}
	if n > maxValue {
		n = maxValue
	}
	return n, nil
}
