package query

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsOnlyTrailingCall(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(50 * time.Millisecond)

	var got atomic.Int32
	done := make(chan struct{})
	for i := 1; i <= 5; i++ {
		i := i
		d.Do(func() {
			got.Store(int32(i))
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}
	assert.Equal(t, int32(5), got.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	t.Parallel()
	d := NewDebouncer(50 * time.Millisecond)

	var ran atomic.Bool
	d.Do(func() { ran.Store(true) })
	assert.True(t, d.Stop())

	time.Sleep(150 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.False(t, d.Stop())
}
