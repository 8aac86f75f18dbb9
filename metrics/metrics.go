// Package metrics registers the prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})

	ConfirmationsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_confirmations_enqueued_total",
		Help: "Confirmation messages successfully handed to the queue.",
	})

	ConfirmationEnqueueFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_confirmation_enqueue_failures_total",
		Help: "Confirmation messages lost because the queue was unavailable.",
	})

	ConfirmationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_confirmations_sent_total",
		Help: "Confirmation emails delivered to the mail collaborator.",
	})

	ConfirmationSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_confirmation_send_failures_total",
		Help: "Confirmation email attempts that failed and will be redelivered.",
	})
)
