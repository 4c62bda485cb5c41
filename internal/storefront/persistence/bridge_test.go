package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/storefront/state"
)

type failingSlotStore struct {
	saves int
}

func (f *failingSlotStore) Load(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (f *failingSlotStore) Save(context.Context, string, string, []byte) error {
	f.saves++
	return errors.New("quota exceeded")
}

func (f *failingSlotStore) Ping(context.Context) error { return errors.New("down") }
func (f *failingSlotStore) Close() error               { return nil }

func fern() domain.Product {
	return domain.Product{ID: "fern", Name: "Boston Fern", Price: 1200, InStock: true}
}

func TestBridgeRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlotStore()

	store := state.NewStore(state.InitialState(""))
	store.Subscribe(NewBridge(slots, "s1").Listener())

	store.Dispatch(ctx, state.AddToCart{Product: fern(), Quantity: 2})
	store.Dispatch(ctx, state.ToggleFavorite{Product: fern()})

	restored := NewBridge(slots, "s1").Restore(ctx)
	require.Len(t, restored.Cart, 1)
	assert.Equal(t, "fern", restored.Cart[0].Product.ID)
	assert.Equal(t, 2, restored.Cart[0].Quantity)
	require.Len(t, restored.Favorites, 1)
	assert.Equal(t, "Boston Fern", restored.Favorites[0].Name)

	other := NewBridge(slots, "s2").Restore(ctx)
	assert.Empty(t, other.Cart)
	assert.Empty(t, other.Favorites)
}

func TestBridgeWritesPlainJSONArrays(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlotStore()

	store := state.NewStore(state.InitialState(""))
	store.Subscribe(NewBridge(slots, "s1").Listener())
	store.Dispatch(ctx, state.AddToCart{Product: fern(), Quantity: 1})

	raw, err := slots.Load(ctx, "s1", SlotCart)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.EqualValues(t, 1, decoded[0]["quantity"])
	assert.Equal(t, "fern", decoded[0]["product"].(map[string]any)["id"])

	_, err = slots.Load(ctx, "s1", SlotFavorites)
	assert.ErrorIs(t, err, ErrSlotNotFound, "favorites untouched by cart changes")
}

func TestBridgeClearedCartIsEmptyArray(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlotStore()

	store := state.NewStore(state.InitialState(""))
	store.Subscribe(NewBridge(slots, "s1").Listener())
	store.Dispatch(ctx, state.AddToCart{Product: fern(), Quantity: 1})
	store.Dispatch(ctx, state.ClearCart{})

	raw, err := slots.Load(ctx, "s1", SlotCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestBridgeRestoreMalformedSlots(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlotStore()
	require.NoError(t, slots.Save(ctx, "s1", SlotCart, []byte(`{not json`)))
	require.NoError(t, slots.Save(ctx, "s1", SlotFavorites, []byte(`null`)))

	restored := NewBridge(slots, "s1").Restore(ctx)

	assert.NotNil(t, restored.Cart)
	assert.Empty(t, restored.Cart)
	assert.NotNil(t, restored.Favorites)
	assert.Empty(t, restored.Favorites)
}

func TestBridgeSwallowsStorageErrors(t *testing.T) {
	ctx := context.Background()
	slots := &failingSlotStore{}
	bridge := NewBridge(slots, "s1")

	restored := bridge.Restore(ctx)
	assert.Empty(t, restored.Cart)
	assert.Empty(t, restored.Favorites)

	store := state.NewStore(state.InitialState(""))
	store.Subscribe(bridge.Listener())

	assert.NotPanics(t, func() {
		store.Dispatch(ctx, state.AddToCart{Product: fern(), Quantity: 1})
		store.Dispatch(ctx, state.Navigate{Category: "cart"})
	})
	assert.Len(t, store.State().Cart, 1, "in-memory state still updates")
	assert.Equal(t, 1, slots.saves, "navigation does not touch storage")
}
