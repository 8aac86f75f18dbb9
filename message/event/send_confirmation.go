package event

import (
	"context"
	"fmt"

	"storefront/entities"
	"storefront/logging"
	"storefront/mail"
	"storefront/metrics"
)

// SendOrderConfirmation renders and sends the confirmation email. Returning
// an error leaves the message unacked so the queue redelivers it; there is no
// consumer-local retry state. Poison messages are a queue-level concern.
func (h Handler) SendOrderConfirmation(ctx context.Context, event *entities.OrderConfirmationRequested) error {
	logging.FromContext(ctx).WithField("order_number", event.OrderNumber).Info("Sending order confirmation")

	subject, body := mail.RenderConfirmation(*event)

	if err := h.mailSender.Send(ctx, event.Email, subject, body); err != nil {
		metrics.ConfirmationSendFailures.Inc()
		return fmt.Errorf("could not send confirmation for order %s: %w", event.OrderNumber, err)
	}

	metrics.ConfirmationsSent.Inc()
	return nil
}
