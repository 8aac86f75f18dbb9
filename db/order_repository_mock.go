package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/entities"
	"storefront/orders"
)

type OrderRepositoryMock struct {
	mock   sync.Mutex
	orders map[string]entities.Order

	// CreateErr forces persistence failures to exercise compensation.
	CreateErr error
}

func NewOrderRepositoryMock() *OrderRepositoryMock {
	return &OrderRepositoryMock{
		orders: map[string]entities.Order{},
	}
}

func (or *OrderRepositoryMock) Create(ctx context.Context, order entities.Order) error {
	or.mock.Lock()
	defer or.mock.Unlock()

	if or.CreateErr != nil {
		return or.CreateErr
	}
	if _, ok := or.orders[order.OrderNumber]; ok {
		return fmt.Errorf("%w: %s", orders.ErrDuplicateOrderNumber, order.OrderNumber)
	}

	or.orders[order.OrderNumber] = order
	return nil
}

func (or *OrderRepositoryMock) ListByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	or.mock.Lock()
	defer or.mock.Unlock()

	var result []entities.Order
	for _, order := range or.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (or *OrderRepositoryMock) ListAll(ctx context.Context) ([]entities.Order, error) {
	or.mock.Lock()
	defer or.mock.Unlock()

	result := make([]entities.Order, 0, len(or.orders))
	for _, order := range or.orders {
		result = append(result, order)
	}
	sortNewestFirst(result)
	return result, nil
}

func (or *OrderRepositoryMock) UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus) (entities.Order, error) {
	or.mock.Lock()
	defer or.mock.Unlock()

	order, ok := or.orders[orderNumber]
	if !ok {
		return entities.Order{}, fmt.Errorf("order %s does not exist", orderNumber)
	}

	order.Status = status
	or.orders[orderNumber] = order
	return order, nil
}

func (or *OrderRepositoryMock) Stats(ctx context.Context) (entities.OrderStats, error) {
	all, _ := or.ListAll(ctx)

	stats := entities.OrderStats{TotalOrders: len(all)}
	for _, order := range all {
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
	}
	if len(all) > 5 {
		all = all[:5]
	}
	stats.RecentOrders = all
	return stats, nil
}

// Count reports how many orders were committed.
func (or *OrderRepositoryMock) Count() int {
	or.mock.Lock()
	defer or.mock.Unlock()

	return len(or.orders)
}

// Get returns a committed order for assertions.
func (or *OrderRepositoryMock) Get(orderNumber string) (entities.Order, bool) {
	or.mock.Lock()
	defer or.mock.Unlock()

	order, ok := or.orders[orderNumber]
	return order, ok
}

func sortNewestFirst(result []entities.Order) {
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			// ULIDs sort by creation time, newest last.
			return result[i].OrderNumber > result[j].OrderNumber
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
}
