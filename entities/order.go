package entities

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

const PaymentMethodCashOnDelivery = "Cash on Delivery"

type DeliveryAddress struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	ZipCode string `json:"zip_code" db:"zip_code"`
	Phone   string `json:"phone" db:"phone"`
}

// Order is the committed record of a purchase. The product fields are a
// snapshot taken at reservation time; later catalog changes do not touch it.
// Only Status is mutable, and only through the admin path.
type Order struct {
	OrderNumber     string          `json:"order_number" db:"order_number"`
	UserID          string          `json:"user_id" db:"user_id"`
	Username        string          `json:"username" db:"username"`
	Email           string          `json:"email" db:"email"`
	ProductID       string          `json:"product_id" db:"product_id"`
	ProductName     string          `json:"product_name" db:"product_name"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity        int             `json:"quantity" db:"quantity"`
	DeliveryAddress DeliveryAddress `json:"delivery_address" db:"delivery"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	Status          OrderStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// OrderStats backs the admin dashboard.
type OrderStats struct {
	TotalOrders  int             `json:"total_orders" db:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue" db:"total_revenue"`
	RecentOrders []Order         `json:"recent_orders" db:"-"`
}

var (
	orderEntropyMu sync.Mutex
	orderEntropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewOrderNumber returns a human-readable, time-ordered order identifier.
// A ULID combines a millisecond timestamp with 80 random bits, so two calls
// within the same millisecond still never collide; the entropy source is
// monotonic and guarded by a mutex for concurrent callers.
func NewOrderNumber() string {
	orderEntropyMu.Lock()
	defer orderEntropyMu.Unlock()

	return "ORD" + ulid.MustNew(ulid.Timestamp(time.Now()), orderEntropy).String()
}
