package feed

import (
	"sync"
	"time"
)

// Debouncer runs at most the most recently scheduled task after a quiet
// period. Each Schedule cancels the previously scheduled task, so rapid
// keystrokes produce a single suggestion lookup.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the quiet period, cancelling any
// previously scheduled task. fn runs on a timer goroutine.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.seq == seq
		d.mu.Unlock()

		// Stop does not guarantee the callback hasn't already fired;
		// the sequence check covers that window.
		if current {
			fn()
		}
	})
}

// Cancel drops any pending task without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
