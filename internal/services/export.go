package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"shop-dashboard/internal/models"
)

var exportHeader = []string{
	"order_id", "customer_id", "order_date", "category", "subcategory",
	"product_name", "country", "gender", "age", "payment_method",
	"quantity", "unit_price", "total_amount",
}

// ExportCSV streams the currently filtered rows as CSV. The export contains
// exactly the rows a client would see under the same filter via the API.
func (d *Dashboard) ExportCSV(ctx context.Context, w io.Writer, f models.Filter) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	m := d.compile(f)
	written := 0
	for _, o := range d.orders {
		if !m.matches(o) {
			continue
		}
		if written%1000 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		row := []string{
			o.OrderID,
			o.CustomerID,
			o.OrderDate.Format(time.DateTime),
			o.Category,
			o.Subcategory,
			o.ProductName,
			o.Country,
			o.Gender,
			strconv.Itoa(o.Age),
			o.PaymentMethod,
			strconv.Itoa(o.Quantity),
			strconv.FormatFloat(o.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		written++
	}

	cw.Flush()
	return cw.Error()
}
