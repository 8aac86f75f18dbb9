package http

import (
	"context"

	"storefront/entities"
	"storefront/orders"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orders.PlaceOrderRequest) (orders.PlaceOrderResult, error)
}

type ProductRepository interface {
	GetAll(ctx context.Context) ([]entities.Product, error)
}

type OrderRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus) (entities.Order, error)
	Stats(ctx context.Context) (entities.OrderStats, error)
}

type Handler struct {
	orderPlacer OrderPlacer
	productRepo ProductRepository
	orderRepo   OrderRepository
}
