// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of kicks per key into one callback invocation
// after a quiet window. Match recomputation runs behind a 500ms window so a
// flurry of near-simultaneous swipes costs one aggregation, not one per
// insert.
type Debouncer struct {
	window time.Duration
	fn     func(key string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDebouncer(window time.Duration, fn func(key string)) *Debouncer {
	return &Debouncer{
		window: window,
		fn:     fn,
		timers: make(map[string]*time.Timer),
	}
}

// Kick schedules (or reschedules) the callback for key after the window.
// Repeated kicks within the window collapse into a single invocation.
func (d *Debouncer) Kick(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Reset(d.window)
		return
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		d.fn(key)
	})
}

// Stop cancels all pending callbacks.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
