// Package store holds the reducer-driven domain state containers. Each
// store is the single source of truth the presentation layer reads for
// its domain; the query cache feeds it but is never read directly.
//
// Reducers are pure: (state, action) -> (state, warning). A non-empty
// warning means the action targeted something that no longer exists — a
// benign race between two legitimate user actions — and the state came
// back unchanged. The container logs it and moves on; it is never a
// crash.
package store

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

func warningAction(a any) string { return fmt.Sprintf("%T", a) }

// Reducer computes the next state. It must not mutate its input.
type Reducer[S, A any] func(S, A) (S, string)

// Store serializes all state transitions through Dispatch. Reads get a
// snapshot value; subscribers run synchronously after each transition.
type Store[S, A any] struct {
	mu     sync.RWMutex
	state  S
	reduce Reducer[S, A]
	log    zerolog.Logger

	subMu   sync.Mutex
	subs    map[int]func(S)
	nextSub int
}

func New[S, A any](initial S, reduce Reducer[S, A], log zerolog.Logger) *Store[S, A] {
	return &Store[S, A]{
		state:  initial,
		reduce: reduce,
		log:    log,
		subs:   make(map[int]func(S)),
	}
}

// Dispatch applies one action. Transitions are applied in the order
// Dispatch is called; callers needing strict cross-action ordering await
// each mutation before issuing the next.
func (s *Store[S, A]) Dispatch(action A) {
	s.mu.Lock()
	next, warn := s.reduce(s.state, action)
	if warn != "" {
		s.log.Warn().Str("action", warningAction(action)).Msg(warn)
	}
	s.state = next
	s.mu.Unlock()

	s.subMu.Lock()
	for _, fn := range s.subs {
		fn(next)
	}
	s.subMu.Unlock()
}

// State returns the current state snapshot.
func (s *Store[S, A]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to run after every transition, and returns a
// cancel function. A cancelled subscriber never fires again — the
// liveness check for callers whose lifetime ends before a request
// settles.
func (s *Store[S, A]) Subscribe(fn func(S)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}
