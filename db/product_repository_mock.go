package db

import (
	"context"
	"fmt"
	"sync"

	"storefront/entities"
	"storefront/orders"
)

// ProductRepositoryMock keeps the ledger in memory with the same contract as
// the Postgres repository: the check and the decrement happen under one lock.
type ProductRepositoryMock struct {
	mock     sync.Mutex
	products map[string]entities.Product

	RestockErr error
}

func NewProductRepositoryMock(products ...entities.Product) *ProductRepositoryMock {
	byID := make(map[string]entities.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}
	return &ProductRepositoryMock{
		products: byID,
	}
}

func (pr *ProductRepositoryMock) Reserve(ctx context.Context, productID string, quantity int) (entities.Reservation, error) {
	pr.mock.Lock()
	defer pr.mock.Unlock()

	product, ok := pr.products[productID]
	if !ok {
		return entities.Reservation{}, fmt.Errorf("%w: %s", orders.ErrProductNotFound, productID)
	}
	if product.Stock < quantity {
		return entities.Reservation{}, fmt.Errorf("%w: product %s", orders.ErrInsufficientStock, productID)
	}

	product.Stock -= quantity
	pr.products[productID] = product

	return entities.Reservation{
		ProductName: product.Name,
		UnitPrice:   product.Price,
	}, nil
}

func (pr *ProductRepositoryMock) Restock(ctx context.Context, productID string, quantity int) error {
	pr.mock.Lock()
	defer pr.mock.Unlock()

	if pr.RestockErr != nil {
		return pr.RestockErr
	}

	product, ok := pr.products[productID]
	if !ok {
		return fmt.Errorf("%w: %s", orders.ErrProductNotFound, productID)
	}

	product.Stock += quantity
	pr.products[productID] = product
	return nil
}

func (pr *ProductRepositoryMock) GetAll(ctx context.Context) ([]entities.Product, error) {
	pr.mock.Lock()
	defer pr.mock.Unlock()

	result := make([]entities.Product, 0, len(pr.products))
	for _, product := range pr.products {
		result = append(result, product)
	}
	return result, nil
}

// Stock reports the current counter for assertions.
func (pr *ProductRepositoryMock) Stock(productID string) int {
	pr.mock.Lock()
	defer pr.mock.Unlock()

	return pr.products[productID].Stock
}
