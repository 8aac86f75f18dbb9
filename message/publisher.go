package message

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"storefront/entities"
	"storefront/logging"
)

// ErrQueueNotReady is returned when a publish is attempted before the broker
// connection is established. Callers treat it as a non-fatal condition.
var ErrQueueNotReady = errors.New("notification queue not ready")

type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateReady
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// NotificationPublisher fronts the event bus with an explicit connection
// state. The broker connection is established asynchronously at startup, and
// order placement must not block or fail while it is still coming up, so a
// publish before Ready returns ErrQueueNotReady immediately.
type NotificationPublisher struct {
	bus   *cqrs.EventBus
	state atomic.Int32
}

func NewNotificationPublisher(bus *cqrs.EventBus) *NotificationPublisher {
	if bus == nil {
		panic("missing event bus")
	}
	return &NotificationPublisher{bus: bus}
}

// Connect probes the broker in the background until it answers or ctx ends.
func (p *NotificationPublisher) Connect(ctx context.Context, pinger Pinger) {
	p.state.Store(int32(StateConnecting))

	go func() {
		backoff := 250 * time.Millisecond
		for {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := pinger.Ping(pingCtx)
			cancel()

			if err == nil {
				p.state.Store(int32(StateReady))
				logging.FromContext(ctx).Info("Notification queue ready")
				return
			}

			select {
			case <-ctx.Done():
				p.state.Store(int32(StateDisconnected))
				return
			case <-time.After(backoff):
			}
			if backoff < 5*time.Second {
				backoff *= 2
			}
		}
	}()
}

func (p *NotificationPublisher) State() ConnState {
	return ConnState(p.state.Load())
}

func (p *NotificationPublisher) PublishOrderConfirmation(ctx context.Context, msg entities.OrderConfirmationRequested) error {
	if state := p.State(); state != StateReady {
		return fmt.Errorf("%w: connection state %s", ErrQueueNotReady, state)
	}

	return p.bus.Publish(ctx, msg)
}
