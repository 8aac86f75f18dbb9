package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/entities"
	"storefront/orders"
)

type IProductRepository interface {
	Reserve(ctx context.Context, productID string, quantity int) (entities.Reservation, error)
	Restock(ctx context.Context, productID string, quantity int) error
	GetAll(ctx context.Context) ([]entities.Product, error)
}

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{
		db: db,
	}
}

// Reserve decrements stock only when enough is left. The guard and the
// decrement are one UPDATE statement, so two concurrent reservations against
// the same product cannot both pass the check: Postgres serializes them on
// the row lock and the loser sees the already-decremented stock.
func (pr ProductRepository) Reserve(ctx context.Context, productID string, quantity int) (entities.Reservation, error) {
	var reservation entities.Reservation
	err := pr.db.Conn.QueryRowxContext(ctx, `
		UPDATE products
		SET stock = stock - $2
		WHERE product_id = $1 AND stock >= $2
		RETURNING name, price`,
		productID, quantity,
	).Scan(&reservation.ProductName, &reservation.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Reservation{}, pr.classifyReserveMiss(ctx, productID)
	}
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("could not reserve stock: %w", err)
	}

	return reservation, nil
}

// classifyReserveMiss tells a missing product apart from one that exists but
// has too little stock left.
func (pr ProductRepository) classifyReserveMiss(ctx context.Context, productID string) error {
	var exists bool
	err := pr.db.Conn.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`, productID)
	if err != nil {
		return fmt.Errorf("could not check if product exists: %w", err)
	}

	if !exists {
		return fmt.Errorf("%w: %s", orders.ErrProductNotFound, productID)
	}
	return fmt.Errorf("%w: product %s", orders.ErrInsufficientStock, productID)
}

// Restock is the compensating re-increment after a failed order commit.
func (pr ProductRepository) Restock(ctx context.Context, productID string, quantity int) error {
	res, err := pr.db.Conn.ExecContext(ctx, `
		UPDATE products SET stock = stock + $2 WHERE product_id = $1`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("could not restock product: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check restock result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", orders.ErrProductNotFound, productID)
	}
	return nil
}

func (pr ProductRepository) GetAll(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := pr.db.Conn.SelectContext(ctx, &products, `
		SELECT product_id, name, description, price, stock
		FROM products
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("could not get products: %w", err)
	}

	return products, nil
}
