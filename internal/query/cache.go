// Package query owns all caching, deduplication, staleness, and retry
// policy for backend reads, and invalidation bookkeeping for writes.
// Callers hand it a fetch function per key; it decides whether the
// network is touched at all.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle of one cache key.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

type entry struct {
	status    Status
	value     any
	hasValue  bool
	fetchedAt time.Time
	invalid   bool

	err     error
	errKind ErrorKind

	// generation fences late responses: a fetch commits its result only
	// if no newer fetch or invalidation was issued for the key meanwhile.
	generation uint64
}

// Cache is the in-process query cache. All transitions happen under mu;
// network calls happen outside it, deduplicated per key by the
// singleflight group.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group

	retries int
	now     func() time.Time
	log     zerolog.Logger
}

type CacheOption func(*Cache)

// WithRetries overrides the automatic retry budget for retryable
// failures (default 1).
func WithRetries(n int) CacheOption {
	return func(c *Cache) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithClock replaces the time source; tests use this to step through
// staleness windows.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

func WithCacheLogger(log zerolog.Logger) CacheOption {
	return func(c *Cache) { c.log = log }
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		retries: 1,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Status returns the current lifecycle state of key.
func (c *Cache) Status(key Key) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StatusIdle
	}
	return e.status
}

// LastError returns the most recent fetch error for key and its kind,
// or nil if the last fetch succeeded.
func (c *Cache) LastError(key Key) (error, ErrorKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, KindNone
	}
	return e.err, e.errKind
}

// Invalidate marks every key under prefix so the next read refetches
// instead of serving the cached payload. The cached value itself is kept
// for stale-while-revalidate display. In-flight fetches for the touched
// keys are superseded: their results are discarded on arrival.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, e := range c.entries {
		if !key.HasPrefix(prefix) {
			continue
		}
		e.invalid = true
		e.generation++
		n++
	}
	c.log.Debug().Str("prefix", string(prefix)).Int("keys", n).Msg("cache invalidated")
	return n
}

// Get returns the value for key, fetching it through fetch when needed.
//
//   - A successful value younger than staleness is returned without any
//     network call.
//   - A stale or invalidated value is returned immediately while one
//     background refetch runs (stale-while-revalidate).
//   - A miss or error state fetches synchronously, with the configured
//     retry budget applied to retryable failures only.
//
// Concurrent Gets for the same key collapse into a single network call.
// All values stored under one key must be of the same type T.
func Get[T any](ctx context.Context, c *Cache, key Key, staleness time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.hasValue && !e.invalid && c.now().Sub(e.fetchedAt) < staleness {
		v := e.value.(T)
		c.mu.Unlock()
		return v, nil
	}
	if e.hasValue {
		// Serve the last known value and revalidate behind the caller.
		v := e.value.(T)
		c.mu.Unlock()
		go func() {
			_, _ = c.fetchShared(context.WithoutCancel(ctx), key, wrapFetch(fetch))
		}()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.fetchShared(ctx, key, wrapFetch(fetch))
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func wrapFetch[T any](fetch func(context.Context) (T, error)) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}

// fetchShared runs one deduplicated fetch for key and commits the
// outcome unless the request was superseded while in flight.
func (c *Cache) fetchShared(ctx context.Context, key Key, fetch func(context.Context) (any, error)) (any, error) {
	v, err, _ := c.group.Do(string(key), func() (any, error) {
		c.mu.Lock()
		e := c.entryLocked(key)
		e.status = StatusLoading
		e.generation++
		gen := e.generation
		c.mu.Unlock()

		v, err := c.fetchWithRetry(ctx, fetch)

		c.mu.Lock()
		defer c.mu.Unlock()
		if e.generation != gen {
			// Superseded by an invalidation issued mid-flight; the next
			// read reconciles with the server.
			c.log.Debug().Str("key", string(key)).Msg("discarding superseded response")
			return v, err
		}
		if err != nil {
			e.err = err
			e.errKind = Classify(err)
			if e.hasValue {
				// Keep showing the previous payload; the error is
				// surfaced next to it, not instead of it.
				e.status = StatusSuccess
			} else {
				e.status = StatusError
			}
			return v, err
		}
		e.value = v
		e.hasValue = true
		e.fetchedAt = c.now()
		e.invalid = false
		e.status = StatusSuccess
		e.err = nil
		e.errKind = KindNone
		return v, nil
	})
	return v, err
}

func (c *Cache) fetchWithRetry(ctx context.Context, fetch func(context.Context) (any, error)) (any, error) {
	v, err := fetch(ctx)
	for attempt := 0; err != nil && attempt < c.retries && Retryable(err); attempt++ {
		c.log.Debug().Err(err).Int("attempt", attempt+1).Msg("retrying fetch")
		v, err = fetch(ctx)
	}
	return v, err
}
