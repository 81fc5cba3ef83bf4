// Package watcher reloads the outline when its backing file changes,
// coalescing editor write bursts into a single reload.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the default coalescing window. Editors tend to emit
// several write events per save; one reload per burst is enough.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces rapid triggers into a single callback invocation.
// Only the most recently scheduled callback runs, after the window elapses.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer. A zero window means DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window == 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn after the window. A trigger arriving before the
// window elapses supersedes the pending one.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// The sequence check closes the race where Stop returns false
		// because the timer already fired and the stale callback is
		// starting concurrently.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel drops any pending callback, including one already racing to run.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Window returns the coalescing window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
