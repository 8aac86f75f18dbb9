package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

// OrderConfirmationRequested is enqueued once per committed order and consumed
// at least once: the consumer may see it again if it crashes before the ack,
// so sending the same confirmation twice must stay harmless.
type OrderConfirmationRequested struct {
	Header EventHeader `json:"header"`

	OrderNumber string          `json:"order_number"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	ProductName string          `json:"product_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
