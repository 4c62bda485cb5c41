package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/pkg/logger"
)

// Bridge connects one session's store to its slots. Storage problems never
// reach the shopper: they are logged and the session carries on in memory.
type Bridge struct {
	slots     SlotStore
	sessionID string
}

// NewBridge creates a bridge for sessionID
func NewBridge(slots SlotStore, sessionID string) *Bridge {
	return &Bridge{slots: slots, sessionID: sessionID}
}

// Restore reads both slots into a Restore action. Missing, unreadable or
// malformed slots yield empty collections.
func (b *Bridge) Restore(ctx context.Context) state.Restore {
	action := state.Restore{
		Cart:      []state.CartItem{},
		Favorites: []domain.Product{},
	}

	if raw, ok := b.load(ctx, SlotCart); ok {
		var cart []state.CartItem
		if err := json.Unmarshal(raw, &cart); err != nil {
			b.logDecodeError(ctx, SlotCart, err)
		} else if cart != nil {
			action.Cart = cart
		}
	}

	if raw, ok := b.load(ctx, SlotFavorites); ok {
		var favorites []domain.Product
		if err := json.Unmarshal(raw, &favorites); err != nil {
			b.logDecodeError(ctx, SlotFavorites, err)
		} else if favorites != nil {
			action.Favorites = favorites
		}
	}

	return action
}

// Listener writes the full collection whenever a dispatch changed it
func (b *Bridge) Listener() state.Listener {
	return func(ctx context.Context, _, next state.State, _ state.Action, res state.Result) {
		if res.CartChanged {
			b.save(ctx, SlotCart, next.Cart)
		}
		if res.FavoritesChanged {
			b.save(ctx, SlotFavorites, next.Favorites)
		}
	}
}

func (b *Bridge) load(ctx context.Context, slot string) ([]byte, bool) {
	raw, err := b.slots.Load(ctx, b.sessionID, slot)
	if errors.Is(err, ErrSlotNotFound) {
		return nil, false
	}
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session_id", b.sessionID).
			Str("slot", slot).
			Msg("Failed to read persisted slot")
		return nil, false
	}
	return raw, true
}

func (b *Bridge) save(ctx context.Context, slot string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Error(ctx).Err(err).Str("slot", slot).Msg("Failed to encode slot")
		return
	}

	if err := b.slots.Save(ctx, b.sessionID, slot, raw); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session_id", b.sessionID).
			Str("slot", slot).
			Msg("Failed to persist slot")
	}
}

func (b *Bridge) logDecodeError(ctx context.Context, slot string, err error) {
	logger.Warn(ctx).
		Err(err).
		Str("session_id", b.sessionID).
		Str("slot", slot).
		Msg("Discarding malformed slot")
}
