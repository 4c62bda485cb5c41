// Package persistence mirrors a session's cart and favorites into durable
// key/value slots and restores them when the session starts.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Slot names. The stored values are JSON arrays of cart lines and products.
const (
	SlotCart      = "cart"
	SlotFavorites = "favorites"
)

// ErrSlotNotFound is returned by Load when nothing was saved under the key
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a string key/value store scoped by session id
type SlotStore interface {
	Load(ctx context.Context, sessionID, slot string) ([]byte, error)
	Save(ctx context.Context, sessionID, slot string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

func slotKey(sessionID, slot string) string {
	return fmt.Sprintf("storefront:%s:%s", sessionID, slot)
}

// MemorySlotStore keeps slots in process memory
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotStore creates an empty in-memory slot store
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string][]byte)}
}

func (m *MemorySlotStore) Load(_ context.Context, sessionID, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[slotKey(sessionID, slot)]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlotStore) Save(_ context.Context, sessionID, slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slotKey(sessionID, slot)] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlotStore) Ping(context.Context) error { return nil }

func (m *MemorySlotStore) Close() error { return nil }
