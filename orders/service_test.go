package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/db"
	"storefront/entities"
	"storefront/orders"
)

type publisherMock struct {
	mock sync.Mutex

	Err       error
	Published []entities.OrderConfirmationRequested
}

func (p *publisherMock) PublishOrderConfirmation(ctx context.Context, msg entities.OrderConfirmationRequested) error {
	p.mock.Lock()
	defer p.mock.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Published = append(p.Published, msg)
	return nil
}

func (p *publisherMock) PublishedCount() int {
	p.mock.Lock()
	defer p.mock.Unlock()

	return len(p.Published)
}

func sampleProduct(stock int, price string) entities.Product {
	return entities.Product{
		ProductID:   uuid.NewString(),
		Name:        "Wireless Headphones",
		Description: "High-quality wireless headphones with noise cancellation",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
	}
}

func sampleRequest(productID string, quantity int) orders.PlaceOrderRequest {
	return orders.PlaceOrderRequest{
		UserID:    uuid.NewString(),
		Username:  "alice",
		Email:     "alice@example.com",
		ProductID: productID,
		Quantity:  quantity,
		DeliveryAddress: entities.DeliveryAddress{
			Street:  "1 Main St",
			City:    "Springfield",
			ZipCode: "12345",
			Phone:   "555-0100",
		},
	}
}

func TestPlaceOrderComputesTotalServerSide(t *testing.T) {
	product := sampleProduct(5, "10.00")
	productRepo := db.NewProductRepositoryMock(product)
	orderRepo := db.NewOrderRepositoryMock()
	publisher := &publisherMock{}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	result, err := svc.PlaceOrder(context.Background(), sampleRequest(product.ProductID, 3))
	require.NoError(t, err)

	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("30.00")),
		"expected total 30.00, got %s", result.TotalAmount)
	assert.Equal(t, orders.NotificationQueued, result.NotificationStatus)
	assert.Equal(t, 2, productRepo.Stock(product.ProductID))

	order, ok := orderRepo.Get(result.OrderNumber)
	require.True(t, ok, "order %s not persisted", result.OrderNumber)
	assert.Equal(t, product.Name, order.ProductName)
	assert.True(t, order.UnitPrice.Equal(product.Price))
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, entities.OrderStatusConfirmed, order.Status)
	assert.Equal(t, entities.PaymentMethodCashOnDelivery, order.PaymentMethod)

	require.Equal(t, 1, publisher.PublishedCount())
	msg := publisher.Published[0]
	assert.Equal(t, result.OrderNumber, msg.OrderNumber)
	assert.Equal(t, "alice@example.com", msg.Email)
	assert.True(t, msg.TotalAmount.Equal(result.TotalAmount))
	assert.NotEmpty(t, msg.Header.ID)
}

func TestPlaceOrderConcurrentReservations(t *testing.T) {
	const (
		stock    = 10
		quantity = 2
		callers  = 25
	)
	product := sampleProduct(stock, "19.99")
	productRepo := db.NewProductRepositoryMock(product)
	orderRepo := db.NewOrderRepositoryMock()
	publisher := &publisherMock{}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, stockFailures int

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlaceOrder(context.Background(), sampleRequest(product.ProductID, quantity))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, orders.ErrInsufficientStock):
				stockFailures++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// exactly floor(stock/quantity) callers may win
	assert.Equal(t, stock/quantity, successes)
	assert.Equal(t, callers-stock/quantity, stockFailures)
	assert.Equal(t, 0, productRepo.Stock(product.ProductID))
	assert.Equal(t, successes, orderRepo.Count())
	assert.GreaterOrEqual(t, productRepo.Stock(product.ProductID), 0, "stock must never go negative")
}

func TestPlaceOrderExactlyOneWinner(t *testing.T) {
	product := sampleProduct(1, "99.99")
	productRepo := db.NewProductRepositoryMock(product)
	orderRepo := db.NewOrderRepositoryMock()
	publisher := &publisherMock{}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.PlaceOrder(context.Background(), sampleRequest(product.ProductID, 1))
			results <- err
		}()
	}

	var successes, stockFailures int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			successes++
		} else if errors.Is(err, orders.ErrInsufficientStock) {
			stockFailures++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 0, productRepo.Stock(product.ProductID))
}

func TestPlaceOrderCompensatesOnPersistenceFailure(t *testing.T) {
	product := sampleProduct(5, "10.00")
	productRepo := db.NewProductRepositoryMock(product)
	orderRepo := db.NewOrderRepositoryMock()
	orderRepo.CreateErr = errors.New("connection reset by peer")
	publisher := &publisherMock{}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	_, err := svc.PlaceOrder(context.Background(), sampleRequest(product.ProductID, 2))
	require.ErrorIs(t, err, orders.ErrCommitFailed)

	assert.Equal(t, 5, productRepo.Stock(product.ProductID), "reserved stock must be restored")
	assert.Equal(t, 0, orderRepo.Count(), "no order may exist after a failed commit")
	assert.Equal(t, 0, publisher.PublishedCount(), "nothing may be enqueued after a failed commit")
}

func TestPlaceOrderSucceedsWhenQueueUnavailable(t *testing.T) {
	product := sampleProduct(5, "10.00")
	productRepo := db.NewProductRepositoryMock(product)
	orderRepo := db.NewOrderRepositoryMock()
	publisher := &publisherMock{Err: errors.New("notification queue not ready")}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	result, err := svc.PlaceOrder(context.Background(), sampleRequest(product.ProductID, 1))
	require.NoError(t, err, "enqueue failure must not fail the order")

	assert.Equal(t, orders.NotificationDelayed, result.NotificationStatus)
	assert.Equal(t, 4, productRepo.Stock(product.ProductID))
	assert.Equal(t, 1, orderRepo.Count())
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	productRepo := db.NewProductRepositoryMock()
	orderRepo := db.NewOrderRepositoryMock()
	publisher := &publisherMock{}
	svc := orders.NewService(productRepo, orderRepo, publisher)

	_, err := svc.PlaceOrder(context.Background(), sampleRequest(uuid.NewString(), 1))
	require.ErrorIs(t, err, orders.ErrProductNotFound)
	assert.Equal(t, 0, orderRepo.Count())
	assert.Equal(t, 0, publisher.PublishedCount())
}

func TestPlaceOrderValidation(t *testing.T) {
	product := sampleProduct(5, "10.00")

	testCases := []struct {
		name   string
		mutate func(req *orders.PlaceOrderRequest)
	}{
		{
			name:   "zero quantity",
			mutate: func(req *orders.PlaceOrderRequest) { req.Quantity = 0 },
		},
		{
			name:   "negative quantity",
			mutate: func(req *orders.PlaceOrderRequest) { req.Quantity = -3 },
		},
		{
			name:   "missing product id",
			mutate: func(req *orders.PlaceOrderRequest) { req.ProductID = "" },
		},
		{
			name:   "missing email",
			mutate: func(req *orders.PlaceOrderRequest) { req.Email = "" },
		},
		{
			name:   "missing street",
			mutate: func(req *orders.PlaceOrderRequest) { req.DeliveryAddress.Street = "" },
		},
		{
			name:   "missing city",
			mutate: func(req *orders.PlaceOrderRequest) { req.DeliveryAddress.City = "" },
		},
		{
			name:   "missing zip code",
			mutate: func(req *orders.PlaceOrderRequest) { req.DeliveryAddress.ZipCode = "" },
		},
		{
			name:   "missing phone",
			mutate: func(req *orders.PlaceOrderRequest) { req.DeliveryAddress.Phone = "" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			productRepo := db.NewProductRepositoryMock(product)
			orderRepo := db.NewOrderRepositoryMock()
			publisher := &publisherMock{}
			svc := orders.NewService(productRepo, orderRepo, publisher)

			req := sampleRequest(product.ProductID, 1)
			tc.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			require.ErrorIs(t, err, orders.ErrInvalidInput)

			assert.Equal(t, 5, productRepo.Stock(product.ProductID), "validation failures must be side-effect free")
			assert.Equal(t, 0, orderRepo.Count())
			assert.Equal(t, 0, publisher.PublishedCount())
		})
	}
}
