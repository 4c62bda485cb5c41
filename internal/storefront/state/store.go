package state

import (
	"context"
	"sync"
)

// Listener observes every dispatch after the new state is committed.
// Listeners run synchronously in subscription order and must not dispatch
// on the store that called them.
type Listener func(ctx context.Context, prev, next State, action Action, res Result)

// Store owns one state and serializes every change to it
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn Listener
}

// NewStore creates a store holding the initial state
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &listenerEntry{fn: fn}
	s.listeners = append(s.listeners, entry)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l == entry {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch reduces the action and notifies listeners. Dispatches on one store
// never interleave, so listeners observe changes in dispatch order.
func (s *Store) Dispatch(ctx context.Context, action Action) (State, Result) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	return s.dispatchLocked(ctx, action)
}

// DispatchWith lets decide inspect the current state and choose the action
// atomically with its dispatch. A nil action dispatches nothing and reports false.
func (s *Store) DispatchWith(ctx context.Context, decide func(current State) Action) (State, Result, bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	action := decide(s.State())
	if action == nil {
		return s.State(), Result{}, false
	}
	next, res := s.dispatchLocked(ctx, action)
	return next, res, true
}

func (s *Store) dispatchLocked(ctx context.Context, action Action) (State, Result) {
	s.mu.Lock()
	prev := s.state
	next, res := Reduce(prev, action)
	s.state = next
	listeners := make([]*listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(ctx, prev, next, action, res)
	}
	return next, res
}
