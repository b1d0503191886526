package query

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls into one trailing invocation: each Do
// cancels the previously scheduled function, so only the last input
// within a burst runs. Used for text-driven queries like recipe search.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn after the configured delay, replacing any pending fn.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending invocation, if any. Returns true when a
// scheduled fn was prevented from running.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
