package db

import (
	"context"
	"fmt"

	"storefront/entities"
	"storefront/orders"
)

type IOrderRepository interface {
	Create(ctx context.Context, order entities.Order) error
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus) (entities.Order, error)
	Stats(ctx context.Context) (entities.OrderStats, error)
}

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{
		db: db,
	}
}

const orderColumns = `
	order_number, user_id, username, email, product_id, product_name,
	unit_price, quantity,
	delivery_street AS "delivery.street",
	delivery_city AS "delivery.city",
	delivery_zip_code AS "delivery.zip_code",
	delivery_phone AS "delivery.phone",
	total_amount, payment_method, status, created_at`

// Create persists the order. The order_number primary key makes uniqueness a
// hard constraint: a colliding insert is rejected, never overwritten.
func (or OrderRepository) Create(ctx context.Context, order entities.Order) error {
	_, err := or.db.Conn.NamedExecContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, username, email, product_id, product_name,
			unit_price, quantity,
			delivery_street, delivery_city, delivery_zip_code, delivery_phone,
			total_amount, payment_method, status
		) VALUES (
			:order_number, :user_id, :username, :email, :product_id, :product_name,
			:unit_price, :quantity,
			:delivery.street, :delivery.city, :delivery.zip_code, :delivery.phone,
			:total_amount, :payment_method, :status
		)`,
		order,
	)
	if isErrorUniqueViolation(err) {
		return fmt.Errorf("%w: %s", orders.ErrDuplicateOrderNumber, order.OrderNumber)
	}
	if err != nil {
		return fmt.Errorf("could not save order: %w", err)
	}
	return nil
}

func (or OrderRepository) ListByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	var result []entities.Order
	err := or.db.Conn.SelectContext(ctx, &result, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get orders for user: %w", err)
	}

	return result, nil
}

func (or OrderRepository) ListAll(ctx context.Context) ([]entities.Order, error) {
	var result []entities.Order
	err := or.db.Conn.SelectContext(ctx, &result, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("could not get orders: %w", err)
	}

	return result, nil
}

func (or OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus) (entities.Order, error) {
	res, err := or.db.Conn.ExecContext(ctx, `
		UPDATE orders SET status = $2 WHERE order_number = $1`,
		orderNumber, status)
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not update order status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not check status update result: %w", err)
	}
	if rows == 0 {
		return entities.Order{}, fmt.Errorf("order %s does not exist", orderNumber)
	}

	var order entities.Order
	err = or.db.Conn.GetContext(ctx, &order, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_number = $1`, orderNumber)
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get updated order: %w", err)
	}

	return order, nil
}

func (or OrderRepository) Stats(ctx context.Context) (entities.OrderStats, error) {
	var stats entities.OrderStats
	err := or.db.Conn.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_revenue
		FROM orders`)
	if err != nil {
		return entities.OrderStats{}, fmt.Errorf("could not get order stats: %w", err)
	}

	err = or.db.Conn.SelectContext(ctx, &stats.RecentOrders, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT 5`)
	if err != nil {
		return entities.OrderStats{}, fmt.Errorf("could not get recent orders: %w", err)
	}

	return stats, nil
}
