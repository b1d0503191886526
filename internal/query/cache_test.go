package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
)

func TestGetFreshHitSkipsFetch(t *testing.T) {
	t.Parallel()
	c := NewCache()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "payload", nil
	}

	v, err := Get(context.Background(), c, NewKey("user", "u1"), time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)

	v, err = Get(context.Background(), c, NewKey("user", "u1"), time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "payload", v)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StatusSuccess, c.Status(NewKey("user", "u1")))
}

func TestGetDistinctParamsDistinctKeys(t *testing.T) {
	t.Parallel()
	c := NewCache()
	var calls atomic.Int32
	fetch := func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	a, err := Get(context.Background(), c, NewKey("recipes", "search", "pasta"), time.Minute, fetch)
	require.NoError(t, err)
	b, err := Get(context.Background(), c, NewKey("recipes", "search", "salad"), time.Minute, fetch)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConcurrentGetsCollapseToOneFetch(t *testing.T) {
	t.Parallel()
	c := NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Get(context.Background(), c, Key("meals/plan/u1"), time.Minute, fetch)
			if err != nil {
				t.Errorf("get %d: %v", i, err)
				return
			}
			results[i] = v
		}(i)
	}
	// Give the goroutines time to pile onto the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestStaleValueServedWhileRevalidating(t *testing.T) {
	t.Parallel()
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := NewCache(WithClock(clock))

	var calls atomic.Int32
	var refetchOnce sync.Once
	refetched := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "first", nil
		}
		defer refetchOnce.Do(func() { close(refetched) })
		return "second", nil
	}

	key := NewKey("grocery", "shopping_list", "u1", 7)
	v, err := Get(context.Background(), c, key, 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	mu.Lock()
	now = now.Add(6 * time.Minute)
	mu.Unlock()

	// Stale: the old payload comes back immediately, the refetch runs
	// behind the caller.
	v, err = Get(context.Background(), c, key, 5*time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	select {
	case <-refetched:
	case <-time.After(2 * time.Second):
		t.Fatal("background revalidation never ran")
	}

	// The singleflight slot frees asynchronously after the commit; poll
	// until the refreshed payload is visible.
	require.Eventually(t, func() bool {
		v, err := Get(context.Background(), c, key, 5*time.Minute, fetch)
		return err == nil && v == "second"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRetryBudgetAppliesToRetryableOnly(t *testing.T) {
	t.Parallel()

	t.Run("5xx retried once", func(t *testing.T) {
		t.Parallel()
		c := NewCache()
		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "", &api.HTTPError{Status: 503, Body: "unavailable"}
		}
		_, err := Get(context.Background(), c, Key("analytics/health/u1"), time.Minute, fetch)
		require.Error(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, StatusError, c.Status(Key("analytics/health/u1")))
	})

	t.Run("404 never retried", func(t *testing.T) {
		t.Parallel()
		c := NewCache()
		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "", &api.HTTPError{Status: 404, Body: "no plan"}
		}
		_, err := Get(context.Background(), c, Key("meals/plan/nobody"), time.Minute, fetch)
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
		_, kind := c.LastError(Key("meals/plan/nobody"))
		assert.Equal(t, KindHTTP4xx, kind)
	})

	t.Run("network error retried", func(t *testing.T) {
		t.Parallel()
		c := NewCache(WithRetries(2))
		var calls atomic.Int32
		fetch := func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "", &api.NetworkError{Err: errors.New("connection refused")}
		}
		_, err := Get(context.Background(), c, Key("user/u1"), time.Minute, fetch)
		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestErrorAfterSuccessKeepsPayload(t *testing.T) {
	t.Parallel()
	c := NewCache()
	var calls atomic.Int32
	failed := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) > 1 {
			defer func() {
				select {
				case <-failed:
				default:
					close(failed)
				}
			}()
			return "", &api.HTTPError{Status: 500, Body: "boom"}
		}
		return "good", nil
	}

	key := NewKey("sustainability", "u1", "month")
	_, err := Get(context.Background(), c, key, time.Minute, fetch)
	require.NoError(t, err)

	c.Invalidate(Key("sustainability"))

	// Invalidated but present: the stale payload is still served while
	// the failing revalidation happens in the background.
	v, err := Get(context.Background(), c, key, time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "good", v)

	select {
	case <-failed:
	case <-time.After(2 * time.Second):
		t.Fatal("revalidation never ran")
	}

	require.Eventually(t, func() bool {
		err, kind := c.LastError(key)
		return err != nil && kind == KindHTTP5xx
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, StatusSuccess, c.Status(key))
}

func TestInvalidateMatchesSegmentBoundaries(t *testing.T) {
	t.Parallel()
	c := NewCache()
	fetch := func(ctx context.Context) (string, error) { return "v", nil }
	for _, key := range []Key{"grocery/shopping_list/u1/7", "grocery/predict/u1/milk", "groceries/other"} {
		_, err := Get(context.Background(), c, key, time.Minute, fetch)
		require.NoError(t, err)
	}

	n := c.Invalidate(Key("grocery"))
	assert.Equal(t, 2, n)

	// Repeating the mutation marks the same keys again; nothing is
	// deduplicated away.
	n = c.Invalidate(Key("grocery"))
	assert.Equal(t, 2, n)
}

func TestSupersededResponseDiscarded(t *testing.T) {
	t.Parallel()
	c := NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		if n == 1 {
			<-release
			return "stale-response", nil
		}
		return "fresh-response", nil
	}

	key := Key("gamification/achievements/u1")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Get(context.Background(), c, key, time.Minute, fetch)
	}()

	require.Eventually(t, func() bool {
		return c.Status(key) == StatusLoading
	}, 2*time.Second, 5*time.Millisecond)

	// The write lands while the read is in flight; the read's response
	// is now stale and must not overwrite the invalidation.
	c.Invalidate(Key("gamification"))
	close(release)
	<-done

	v, err := Get(context.Background(), c, key, time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh-response", v)
	assert.Equal(t, int32(2), calls.Load())
}
