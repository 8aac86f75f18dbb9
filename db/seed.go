package db

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/entities"
)

// EnsureSeedData inserts the sample catalog if it is not there yet. It is
// idempotent, so running it on every startup is safe; there is no separate
// manual seed path.
func EnsureSeedData(ctx context.Context, db *DB) error {
	sampleProducts := []entities.Product{
		{
			Name:        "Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       decimal.RequireFromString("99.99"),
			Stock:       15,
		},
		{
			Name:        "Smart Watch",
			Description: "Fitness tracking smart watch with heart rate monitor",
			Price:       decimal.RequireFromString("199.99"),
			Stock:       20,
		},
		{
			Name:        "Laptop Stand",
			Description: "Adjustable aluminum laptop stand for better ergonomics",
			Price:       decimal.RequireFromString("49.99"),
			Stock:       25,
		},
	}

	for _, product := range sampleProducts {
		_, err := db.Conn.NamedExecContext(ctx, `
			INSERT INTO products (name, description, price, stock)
			VALUES (:name, :description, :price, :stock)
			ON CONFLICT (name) DO NOTHING`,
			product,
		)
		if err != nil {
			return fmt.Errorf("could not seed product %s: %w", product.Name, err)
		}
	}

	return nil
}
