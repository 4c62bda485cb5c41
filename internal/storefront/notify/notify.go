// Package notify fans state-change notifications out to logs, metrics and
// the storefront event stream.
package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// Change is one notification together with the state it produced
type Change struct {
	SessionID    string
	Action       string
	Notification state.Notification
	State        state.State
}

// Notifier receives changes. Implementations must not block for long and
// must not fail the dispatch that produced the change.
type Notifier interface {
	Notify(ctx context.Context, change Change)
}

// Listener adapts notifiers to a store listener, emitting one Change per
// notification in the dispatch result
func Listener(sessionID string, notifiers ...Notifier) state.Listener {
	return func(ctx context.Context, _, next state.State, action state.Action, res state.Result) {
		for _, n := range res.Notifications {
			change := Change{
				SessionID:    sessionID,
				Action:       action.Name(),
				Notification: n,
				State:        next,
			}
			for _, notifier := range notifiers {
				notifier.Notify(ctx, change)
			}
		}
	}
}

// LogNotifier writes each change to the structured log
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, c Change) {
	logger.Info(ctx).
		Str("session_id", c.SessionID).
		Str("action", c.Action).
		Str("kind", string(c.Notification.Kind)).
		Str("product_id", c.Notification.ProductID).
		Int("cart_count", state.CartCount(c.State)).
		Msg(c.Notification.Message)
}

// MetricsNotifier counts notifications by kind
type MetricsNotifier struct {
	counter *prometheus.CounterVec
}

// NewMetricsNotifier registers its counter on reg
func NewMetricsNotifier(reg prometheus.Registerer) *MetricsNotifier {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notifications_total",
			Help: "Total number of storefront notifications by kind",
		},
		[]string{"kind"},
	)
	reg.MustRegister(counter)
	return &MetricsNotifier{counter: counter}
}

func (m *MetricsNotifier) Notify(_ context.Context, c Change) {
	m.counter.WithLabelValues(string(c.Notification.Kind)).Inc()
}

// EventPublisher publishes storefront events
type EventPublisher interface {
	PublishStorefrontEvent(ctx context.Context, event kafka.StorefrontEvent) error
}

// EventNotifier forwards changes to the storefront event stream. Publish
// failures are logged and dropped.
type EventNotifier struct {
	publisher EventPublisher
}

// NewEventNotifier creates an EventNotifier
func NewEventNotifier(publisher EventPublisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (e *EventNotifier) Notify(ctx context.Context, c Change) {
	event := kafka.StorefrontEvent{
		EventType:      EventType(c.Notification.Kind),
		SessionID:      c.SessionID,
		ProductID:      c.Notification.ProductID,
		Quantity:       c.Notification.Quantity,
		CartItems:      state.CartCount(c.State),
		CartSubtotal:   state.ComputeTotals(c.State.Cart, state.ShippingPolicy{}).Subtotal,
		FavoritesCount: len(c.State.Favorites),
		OrderID:        c.Notification.OrderID,
		Message:        c.Notification.Message,
	}

	if err := e.publisher.PublishStorefrontEvent(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session_id", c.SessionID).
			Str("event_type", event.EventType).
			Msg("Dropping storefront event")
	}
}

// EventType maps a notification kind onto the coarser event stream type
func EventType(kind state.NotificationKind) string {
	switch kind {
	case state.FavoriteAdded, state.FavoriteRemoved:
		return kafka.EventTypeFavoritesUpdated
	case state.OrderPlaced:
		return kafka.EventTypeOrderCompleted
	default:
		return kafka.EventTypeCartUpdated
	}
}
