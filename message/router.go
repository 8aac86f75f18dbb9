package message

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"

	"storefront/message/event"
)

// NewWatermillRouter wires the notification consumer onto the queue. Handlers
// ack by returning nil; an error nacks the message and the queue redelivers.
func NewWatermillRouter(
	eventProcessorConfig cqrs.EventProcessorConfig,
	eventsHandler event.Handler,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(router, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	err = eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"SendOrderConfirmation",
			eventsHandler.SendOrderConfirmation,
		),
	)
	if err != nil {
		panic(err)
	}

	return router
}
