// Package orders holds the order commit pipeline: validate, reserve stock,
// persist the order, enqueue the confirmation.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/entities"
	"storefront/logging"
	"storefront/metrics"
)

type InventoryLedger interface {
	Reserve(ctx context.Context, productID string, quantity int) (entities.Reservation, error)
	Restock(ctx context.Context, productID string, quantity int) error
}

type OrderStore interface {
	Create(ctx context.Context, order entities.Order) error
}

type NotificationPublisher interface {
	PublishOrderConfirmation(ctx context.Context, msg entities.OrderConfirmationRequested) error
}

type PlaceOrderRequest struct {
	UserID          string
	Username        string
	Email           string
	ProductID       string
	Quantity        int
	DeliveryAddress entities.DeliveryAddress
}

const (
	// NotificationQueued means the confirmation message reached the queue.
	NotificationQueued = "queued"
	// NotificationDelayed means the enqueue failed; the order still stands
	// and the confirmation will not arrive until operators intervene.
	NotificationDelayed = "delayed"
)

type PlaceOrderResult struct {
	OrderNumber        string
	TotalAmount        decimal.Decimal
	NotificationStatus string
}

type Service struct {
	ledger        InventoryLedger
	store         OrderStore
	notifications NotificationPublisher
}

func NewService(ledger InventoryLedger, store OrderStore, notifications NotificationPublisher) Service {
	if ledger == nil {
		panic("missing inventory ledger")
	}
	if store == nil {
		panic("missing order store")
	}
	if notifications == nil {
		panic("missing notification publisher")
	}
	return Service{
		ledger:        ledger,
		store:         store,
		notifications: notifications,
	}
}

// PlaceOrder runs the commit pipeline for a single purchase. On any failure
// before the reservation no state changes; if persisting the order fails the
// reserved stock is re-incremented. The enqueue step never fails the order.
func (s Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlaceOrderResult, error) {
	if err := validate(req); err != nil {
		metrics.OrdersPlaced.WithLabelValues("invalid_input").Inc()
		return PlaceOrderResult{}, err
	}

	reservation, err := s.ledger.Reserve(ctx, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			metrics.OrdersPlaced.WithLabelValues("product_not_found").Inc()
		case errors.Is(err, ErrInsufficientStock):
			metrics.OrdersPlaced.WithLabelValues("insufficient_stock").Inc()
		default:
			metrics.OrdersPlaced.WithLabelValues("reserve_failed").Inc()
		}
		return PlaceOrderResult{}, err
	}

	// The total comes from the price held server-side at reservation time,
	// never from the request.
	totalAmount := reservation.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	order := entities.Order{
		OrderNumber:     entities.NewOrderNumber(),
		UserID:          req.UserID,
		Username:        req.Username,
		Email:           req.Email,
		ProductID:       req.ProductID,
		ProductName:     reservation.ProductName,
		UnitPrice:       reservation.UnitPrice,
		Quantity:        req.Quantity,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     totalAmount,
		PaymentMethod:   entities.PaymentMethodCashOnDelivery,
		Status:          entities.OrderStatusConfirmed,
	}

	err = s.store.Create(ctx, order)
	if errors.Is(err, ErrDuplicateOrderNumber) {
		// Should not happen with ULID order numbers; one retry with a fresh
		// identifier before giving up.
		order.OrderNumber = entities.NewOrderNumber()
		err = s.store.Create(ctx, order)
	}
	if err != nil {
		s.compensate(ctx, req.ProductID, req.Quantity, err)
		metrics.OrdersPlaced.WithLabelValues("commit_failed").Inc()
		return PlaceOrderResult{}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	notificationStatus := NotificationQueued
	if err := s.notifications.PublishOrderConfirmation(ctx, entities.OrderConfirmationRequested{
		Header:      entities.NewEventHeader(),
		OrderNumber: order.OrderNumber,
		Email:       order.Email,
		Username:    order.Username,
		ProductName: order.ProductName,
		TotalAmount: order.TotalAmount,
	}); err != nil {
		// The order is already committed; a lost confirmation is a tolerated
		// degradation, not a failure of the order.
		logging.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
		}).Warn("Confirmation enqueue failed, order placed without notification")
		metrics.ConfirmationEnqueueFailures.Inc()
		notificationStatus = NotificationDelayed
	} else {
		metrics.ConfirmationsEnqueued.Inc()
	}

	metrics.OrdersPlaced.WithLabelValues("ok").Inc()
	return PlaceOrderResult{
		OrderNumber:        order.OrderNumber,
		TotalAmount:        totalAmount,
		NotificationStatus: notificationStatus,
	}, nil
}

func (s Service) compensate(ctx context.Context, productID string, quantity int, cause error) {
	logger := logging.FromContext(ctx).WithFields(logrus.Fields{
		"product_id": productID,
		"quantity":   quantity,
	})
	logger.WithError(cause).Error("Order persistence failed, restoring reserved stock")

	if err := s.ledger.Restock(ctx, productID, quantity); err != nil {
		// Best effort: the reservation stays lost until operators reconcile.
		logger.WithError(err).Error("Could not restore reserved stock")
	}
}

func validate(req PlaceOrderRequest) error {
	if req.ProductID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr := req.DeliveryAddress
	if addr.Street == "" || addr.City == "" || addr.ZipCode == "" || addr.Phone == "" {
		return fmt.Errorf("%w: all delivery address fields are required", ErrInvalidInput)
	}
	return nil
}
