package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/entities"
	"storefront/message/event"
)

type pingerStub struct {
	failures int
	calls    int
}

func (p *pingerStub) Ping(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func sampleConfirmation() entities.OrderConfirmationRequested {
	return entities.OrderConfirmationRequested{
		Header:      entities.NewEventHeader(),
		OrderNumber: entities.NewOrderNumber(),
		Email:       "carol@example.com",
		Username:    "carol",
		ProductName: "Wireless Headphones",
		TotalAmount: decimal.RequireFromString("99.99"),
	}
}

func TestPublishBeforeConnectDoesNotBlock(t *testing.T) {
	logger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	publisher := NewNotificationPublisher(event.NewBus(pubSub))

	require.Equal(t, StateDisconnected, publisher.State())

	err := publisher.PublishOrderConfirmation(context.Background(), sampleConfirmation())
	require.ErrorIs(t, err, ErrQueueNotReady)
}

func TestPublishAfterQueueBecomesReady(t *testing.T) {
	logger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	publisher := NewNotificationPublisher(event.NewBus(pubSub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// broker answers only on the third probe
	publisher.Connect(ctx, &pingerStub{failures: 2})
	assert.Equal(t, StateConnecting, publisher.State())

	require.Eventually(
		t,
		func() bool { return publisher.State() == StateReady },
		5*time.Second,
		50*time.Millisecond,
	)

	require.NoError(t, publisher.PublishOrderConfirmation(ctx, sampleConfirmation()))
}
