package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/kafka"
)

type recordingNotifier struct {
	changes []Change
}

func (r *recordingNotifier) Notify(_ context.Context, c Change) {
	r.changes = append(r.changes, c)
}

type fakePublisher struct {
	events []kafka.StorefrontEvent
	err    error
}

func (f *fakePublisher) PublishStorefrontEvent(_ context.Context, e kafka.StorefrontEvent) error {
	f.events = append(f.events, e)
	return f.err
}

var basil = domain.Product{ID: "basil", Name: "Sweet Basil", Price: 600, InStock: true}

func TestListenerFansOutNotifications(t *testing.T) {
	rec := &recordingNotifier{}
	store := state.NewStore(state.InitialState(""))
	store.Subscribe(Listener("s1", rec, LogNotifier{}))

	store.Dispatch(context.Background(), state.AddToCart{Product: basil, Quantity: 2})
	store.Dispatch(context.Background(), state.Navigate{Category: "cart"})
	store.Dispatch(context.Background(), state.ToggleFavorite{Product: basil})

	require.Len(t, rec.changes, 2, "navigation produces no notification")
	assert.Equal(t, "s1", rec.changes[0].SessionID)
	assert.Equal(t, "add_to_cart", rec.changes[0].Action)
	assert.Equal(t, state.CartAdded, rec.changes[0].Notification.Kind)
	assert.Equal(t, 2, state.CartCount(rec.changes[0].State))
	assert.Equal(t, state.FavoriteAdded, rec.changes[1].Notification.Kind)
}

func TestEventType(t *testing.T) {
	assert.Equal(t, kafka.EventTypeCartUpdated, EventType(state.CartAdded))
	assert.Equal(t, kafka.EventTypeCartUpdated, EventType(state.CartCleared))
	assert.Equal(t, kafka.EventTypeFavoritesUpdated, EventType(state.FavoriteRemoved))
	assert.Equal(t, kafka.EventTypeOrderCompleted, EventType(state.OrderPlaced))
}

func TestEventNotifier(t *testing.T) {
	pub := &fakePublisher{}
	store := state.NewStore(state.InitialState(""))
	store.Subscribe(Listener("s1", NewEventNotifier(pub)))

	store.Dispatch(context.Background(), state.AddToCart{Product: basil, Quantity: 3})
	store.Dispatch(context.Background(), state.ClearCart{OrderID: "ORD-ABCD1234"})

	require.Len(t, pub.events, 2)
	assert.Equal(t, kafka.StorefrontEvent{
		EventType:    kafka.EventTypeCartUpdated,
		SessionID:    "s1",
		ProductID:    "basil",
		Quantity:     3,
		CartItems:    3,
		CartSubtotal: 1800,
		Message:      "Sweet Basil added to cart",
	}, pub.events[0])
	assert.Equal(t, kafka.EventTypeOrderCompleted, pub.events[1].EventType)
	assert.Equal(t, "ORD-ABCD1234", pub.events[1].OrderID)
	assert.Zero(t, pub.events[1].CartItems)
}

func TestEventNotifierSwallowsPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	store := state.NewStore(state.InitialState(""))
	store.Subscribe(Listener("s1", NewEventNotifier(pub)))

	assert.NotPanics(t, func() {
		store.Dispatch(context.Background(), state.AddToCart{Product: basil})
	})
	assert.Len(t, store.State().Cart, 1)
}

func TestMetricsNotifier(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsNotifier(reg)

	store := state.NewStore(state.InitialState(""))
	store.Subscribe(Listener("s1", m))
	store.Dispatch(context.Background(), state.AddToCart{Product: basil})
	store.Dispatch(context.Background(), state.AddToCart{Product: basil})
	store.Dispatch(context.Background(), state.RemoveItem{ProductID: "basil"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.counter.WithLabelValues(string(state.CartAdded))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.counter.WithLabelValues(string(state.CartRemoved))))
}
