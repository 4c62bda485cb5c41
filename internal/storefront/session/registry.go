// Package session keeps one state store per shopper. Each store is the single
// writer for its shopper's state; the registry only maps ids to stores.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/storefront/notify"
	"github.com/tair/storefront/internal/storefront/persistence"
	"github.com/tair/storefront/internal/storefront/state"
	"github.com/tair/storefront/pkg/logger"
)

// Session is one shopper's store
type Session struct {
	ID        string
	Store     *state.Store
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry creates, restores and looks up sessions
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	slots     persistence.SlotStore
	notifiers []notify.Notifier
	now       func() time.Time

	activeSessions prometheus.Gauge
	cartItems      prometheus.Gauge
}

// NewRegistry creates a registry whose sessions persist to slots and report
// changes to notifiers
func NewRegistry(slots persistence.SlotStore, reg prometheus.Registerer, notifiers ...notify.Notifier) *Registry {
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Number of sessions held in memory",
	})
	cartItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_items",
		Help: "Units across all in-memory carts",
	})
	reg.MustRegister(activeSessions, cartItems)

	return &Registry{
		sessions:       make(map[string]*Session),
		slots:          slots,
		notifiers:      notifiers,
		now:            time.Now,
		activeSessions: activeSessions,
		cartItems:      cartItems,
	}
}

// Get returns an existing in-memory session
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()

	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating it from the persisted
// slots and the URL fragment when it is not in memory. An empty id gets a
// fresh one. created reports whether a new session was built.
func (r *Registry) GetOrCreate(ctx context.Context, id, fragment string) (s *Session, created bool) {
	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := r.Get(id); ok {
		return s, false
	}

	// Restoring reads storage, so build outside the lock and let the first
	// writer win if two requests race on the same id.
	fresh := r.build(ctx, id, fragment)

	r.mu.Lock()
	if existing, ok := r.sessions[id]; ok {
		r.mu.Unlock()
		existing.touch(r.now())
		return existing, false
	}
	r.sessions[id] = fresh
	r.mu.Unlock()

	r.activeSessions.Inc()
	r.cartItems.Add(float64(state.CartCount(fresh.Store.State())))

	logger.Debug(ctx).
		Str("session_id", id).
		Int("cart_count", state.CartCount(fresh.Store.State())).
		Msg("Session created")

	return fresh, true
}

func (r *Registry) build(ctx context.Context, id, fragment string) *Session {
	store := state.NewStore(state.InitialState(fragment))

	bridge := persistence.NewBridge(r.slots, id)
	store.Dispatch(ctx, bridge.Restore(ctx))

	store.Subscribe(bridge.Listener())
	store.Subscribe(r.cartItemsListener())
	if len(r.notifiers) > 0 {
		store.Subscribe(notify.Listener(id, r.notifiers...))
	}

	now := r.now()
	return &Session{ID: id, Store: store, CreatedAt: now, lastSeen: now}
}

func (r *Registry) cartItemsListener() state.Listener {
	return func(_ context.Context, prev, next state.State, _ state.Action, res state.Result) {
		if res.CartChanged {
			r.cartItems.Add(float64(state.CartCount(next) - state.CartCount(prev)))
		}
	}
}

// Len is the number of in-memory sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions idle for longer than idle. Their cart and favorites
// stay in the slot store and come back on the next request.
func (r *Registry) Evict(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var evicted []*Session
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			evicted = append(evicted, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		r.activeSessions.Dec()
		r.cartItems.Sub(float64(state.CartCount(s.Store.State())))
	}
	return len(evicted)
}

// RunJanitor evicts idle sessions every interval until ctx is done
func (r *Registry) RunJanitor(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(idle); n > 0 {
				logger.Info(ctx).Int("evicted", n).Int("remaining", r.Len()).Msg("Evicted idle sessions")
			}
		}
	}
}
