// Package store is a minimal reducer-based state container. It satisfies
// component.Dispatcher so component callbacks can dispatch actions into it.
package store

import (
	"log"
	"sync"
)

// Reducer returns the next state for an action; it must not mutate prev
type Reducer[S any] func(prev S, action any) S

// Store holds application state behind a read/write lock
type Store[S any] struct {
	mu      sync.RWMutex
	state   S
	reducer Reducer[S]
	version uint64

	changes chan struct{}
}

// New creates a store with an initial state
func New[S any](initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		changes: make(chan struct{}, 1),
	}
}

// State returns the current state value
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version counts applied dispatches
func (s *Store[S]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// View runs fn with the read lock held
// fn must not call Dispatch
func (s *Store[S]) View(fn func(S)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Dispatch reduces action into the state and signals Changes
func (s *Store[S]) Dispatch(action any) {
	if action == nil {
		return
	}
	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	s.version++
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
		// a signal is already pending
	}
	log.Printf("store: dispatched %T", action)
}

// Changes receives after one or more dispatches
func (s *Store[S]) Changes() <-chan struct{} {
	return s.changes
}
