package datagen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shop-dashboard/internal/models"
)

const (
	batchSize  = 5000
	maxWorkers = 8
)

// Config controls the shape of the synthetic dataset.
type Config struct {
	Seed      int64
	Orders    int
	Customers int       // size of the repeat-customer pool
	Days      int       // historical window length
	EndDate   time.Time // last day of the window; zero means today
}

// Generate builds a synthetic order dataset. Batches are produced in
// parallel, each from its own deterministically derived RNG, so the same
// Config always yields the same dataset.
func Generate(ctx context.Context, cfg Config) ([]models.Order, error) {
	if cfg.Orders <= 0 {
		return nil, fmt.Errorf("order count must be positive, got %d", cfg.Orders)
	}
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("window days must be positive, got %d", cfg.Days)
	}
	if cfg.Customers <= 0 {
		cfg.Customers = cfg.Orders/4 + 1
	}
	end := cfg.EndDate
	if end.IsZero() {
		end = time.Now().UTC()
	}
	end = end.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(cfg.Days - 1))

	orders := make([]models.Order, cfg.Orders)

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for offset := 0; offset < cfg.Orders; offset += batchSize {
		lo, hi := offset, offset+batchSize
		if hi > cfg.Orders {
			hi = cfg.Orders
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rng := rand.New(rand.NewSource(cfg.Seed + int64(lo)))
			for i := lo; i < hi; i++ {
				orders[i] = makeOrder(rng, cfg, start)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate orders: %w", err)
	}
	return orders, nil
}

func makeOrder(rng *rand.Rand, cfg Config, start time.Time) models.Order {
	cat := catalog[rng.Intn(len(catalog))]
	sub := cat.subcategories[rng.Intn(len(cat.subcategories))]
	prod := sub.products[rng.Intn(len(sub.products))]

	quantity := 1 + rng.Intn(3)
	if rng.Intn(10) == 0 {
		quantity += rng.Intn(5) // occasional bulk order
	}
	unitPrice := roundCents(prod.minPrice + rng.Float64()*(prod.maxPrice-prod.minPrice))

	day := rng.Intn(cfg.Days)
	when := start.AddDate(0, 0, day).
		Add(time.Duration(rng.Intn(24)) * time.Hour).
		Add(time.Duration(rng.Intn(60)) * time.Minute)

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// math/rand readers never fail; fall back to a positional id anyway.
		return models.Order{OrderID: fmt.Sprintf("ord-%d", rng.Int63())}
	}

	return models.Order{
		OrderID:       id.String(),
		CustomerID:    fmt.Sprintf("CUST-%05d", rng.Intn(cfg.Customers)),
		OrderDate:     when,
		Category:      cat.name,
		Subcategory:   sub.name,
		ProductName:   prod.name,
		Country:       countries[rng.Intn(len(countries))],
		Gender:        pickGender(rng),
		Age:           18 + rng.Intn(58),
		PaymentMethod: paymentMethods[rng.Intn(len(paymentMethods))],
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   roundCents(unitPrice * float64(quantity)),
	}
}

func pickGender(rng *rand.Rand) string {
	// Roughly even split with a small share of Other.
	switch n := rng.Intn(100); {
	case n < 48:
		return genders[0]
	case n < 96:
		return genders[1]
	default:
		return genders[2]
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
