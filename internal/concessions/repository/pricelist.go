package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cinehall/pkg/logger"
	"cinehall/pkg/store"
)

// PriceListRepository reads the concession price list stream. Lines follow
// the "PRODUCT_KEY : price" format; malformed lines are skipped with a
// warning.
type PriceListRepository interface {
	Load(ctx context.Context) (map[string]float64, error)
	Seed(ctx context.Context) error
}

type priceListRepository struct {
	store store.Store
	log   *logger.Logger
}

func NewPriceListRepository(st store.Store, log *logger.Logger) PriceListRepository {
	return &priceListRepository{
		store: st,
		log:   log,
	}
}

func (r *priceListRepository) Load(ctx context.Context) (map[string]float64, error) {
	lines, err := r.store.ReadLines(ctx, store.PriceListKey)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(lines))
	for _, line := range lines {
		key, price, ok := parsePriceLine(line)
		if !ok {
			r.log.Warn("Skipping malformed price list line", "line", line)
			continue
		}
		prices[key] = price
	}
	return prices, nil
}

func parsePriceLine(line string) (string, float64, bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", 0, false
	}

	key := strings.TrimSpace(parts[0])
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || key == "" || price <= 0 {
		return "", 0, false
	}
	return key, price, true
}

// Seed installs the stock price list when none exists yet.
func (r *priceListRepository) Seed(ctx context.Context) error {
	exists, err := r.store.Exists(ctx, store.PriceListKey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	defaults := []struct {
		key   string
		price float64
	}{
		{"POPCORN_SMALL", 45.00},
		{"POPCORN_MEDIUM", 60.00},
		{"POPCORN_LARGE", 75.00},
		{"SODA_SMALL", 30.00},
		{"SODA_MEDIUM", 40.00},
		{"SODA_LARGE", 50.00},
		{"NACHOS_REGULAR", 70.00},
		{"NACHOS_LARGE", 90.00},
		{"COMBO_A", 180.00},
		{"COMBO_B", 200.00},
		{"COMBO_C", 230.00},
		{"COMBO_D", 150.00},
	}

	for _, d := range defaults {
		if err := r.store.AppendLine(ctx, store.PriceListKey, fmt.Sprintf("%s : %.2f", d.key, d.price)); err != nil {
			return err
		}
	}

	r.log.Info("Price list seeded", "products", len(defaults))
	return nil
}
