package query

import (
	"context"
	"sync"
)

// Mutation tracks the lifecycle of one write operation and applies its
// invalidation set on success. Unlike reads, mutations are never
// deduplicated: every Do issues its own call and its own invalidation.
type Mutation[T any] struct {
	cache       *Cache
	run         func(context.Context) (T, error)
	invalidates []Key

	mu      sync.Mutex
	pending bool
	settled bool
	err     error
}

// NewMutation binds a write call to the cache prefixes it logically
// affects. The invalidation set is fixed at construction; it is an
// explicit table, never inferred.
func NewMutation[T any](c *Cache, run func(context.Context) (T, error), invalidates ...Key) *Mutation[T] {
	return &Mutation[T]{cache: c, run: run, invalidates: invalidates}
}

// Do executes the mutation. On success every bound prefix is marked
// invalid so the next read refetches. No optimistic state is written
// anywhere: callers apply results to stores only after Do returns.
func (m *Mutation[T]) Do(ctx context.Context) (T, error) {
	m.mu.Lock()
	m.pending = true
	m.settled = false
	m.mu.Unlock()

	v, err := m.run(ctx)

	if err == nil {
		for _, prefix := range m.invalidates {
			m.cache.Invalidate(prefix)
		}
	}

	m.mu.Lock()
	m.pending = false
	m.settled = true
	m.err = err
	m.mu.Unlock()
	return v, err
}

// Pending reports whether a Do is in flight; UIs disable controls while
// it is.
func (m *Mutation[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Settled reports whether at least one Do has completed.
func (m *Mutation[T]) Settled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settled
}

// Err returns the error of the most recently settled Do.
func (m *Mutation[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
