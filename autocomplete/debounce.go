package autocomplete

import (
	"sync"
	"time"
)

// DefaultDelay is how long input must pause before a search fires
const DefaultDelay = 400 * time.Millisecond

// Debouncer runs at most one deferred function at a time.
// Scheduling a new function cancels the previous one if it has not fired.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given delay
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arms fn to run after the delay, replacing any armed function
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel stops the armed function. It reports whether one was stopped
// before firing.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
