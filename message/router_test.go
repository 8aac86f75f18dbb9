package message

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/entities"
	"storefront/mail"
	"storefront/message/event"
)

func newGoChannelProcessorConfig(pubSub *gochannel.GoChannel, logger watermill.LoggerAdapter) cqrs.EventProcessorConfig {
	return cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return "events." + params.EventName, nil
		},
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (watermillMessage.Subscriber, error) {
			return pubSub, nil
		},
		Marshaler: cqrs.JSONMarshaler{GenerateName: cqrs.StructName},
		Logger:    logger,
	}
}

// A send that fails transiently must be redelivered until it succeeds, and
// acknowledged exactly then.
func TestSendOrderConfirmationRedelivered(t *testing.T) {
	logger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	sender := &mail.SenderMock{FailFirst: 1}
	router := NewWatermillRouter(
		newGoChannelProcessorConfig(pubSub, logger),
		event.NewHandler(sender),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	bus := event.NewBus(pubSub)
	msg := entities.OrderConfirmationRequested{
		Header:      entities.NewEventHeader(),
		OrderNumber: entities.NewOrderNumber(),
		Email:       "alice@example.com",
		Username:    "alice",
		ProductName: "Smart Watch",
		TotalAmount: decimal.RequireFromString("199.99"),
	}
	require.NoError(t, bus.Publish(ctx, msg))

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			assert.Len(t, sender.Sent(), 1, "confirmation not delivered yet")
		},
		10*time.Second,
		100*time.Millisecond,
	)

	assert.Equal(t, 2, sender.Attempts(), "expected one failed attempt before the successful one")

	sent := sender.Sent()[0]
	assert.Equal(t, "alice@example.com", sent.To)
	assert.Equal(t, "Order Confirmation - "+msg.OrderNumber, sent.Subject)
	assert.Contains(t, sent.Body, "Hi alice,")
	assert.Contains(t, sent.Body, msg.OrderNumber)
	assert.Contains(t, sent.Body, "Smart Watch")
	assert.Contains(t, sent.Body, "$199.99")
}

func TestSendOrderConfirmationDuplicateDeliveryIsHarmless(t *testing.T) {
	logger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	sender := &mail.SenderMock{}
	router := NewWatermillRouter(
		newGoChannelProcessorConfig(pubSub, logger),
		event.NewHandler(sender),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	bus := event.NewBus(pubSub)
	msg := entities.OrderConfirmationRequested{
		Header:      entities.NewEventHeader(),
		OrderNumber: entities.NewOrderNumber(),
		Email:       "bob@example.com",
		Username:    "bob",
		ProductName: "Laptop Stand",
		TotalAmount: decimal.RequireFromString("49.99"),
	}

	// the queue may deliver the same message twice
	require.NoError(t, bus.Publish(ctx, msg))
	require.NoError(t, bus.Publish(ctx, msg))

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			assert.Len(t, sender.Sent(), 2)
		},
		10*time.Second,
		100*time.Millisecond,
	)

	sent := sender.Sent()
	assert.Equal(t, sent[0], sent[1], "redelivered message must render the identical email")
}
