// Package debounce delays an action until input has been quiet for a fixed
// interval.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer a Debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

// SystemAfterFunc schedules f with time.AfterFunc.
func SystemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithAfterFunc replaces the scheduler, mostly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(d *Debouncer) {
		if fn != nil {
			d.after = fn
		}
	}
}

// Debouncer runs action once per burst of Trigger calls, delay after the last
// call of the burst. Runs never overlap.
type Debouncer struct {
	action func()
	delay  time.Duration
	after  AfterFunc

	mu    sync.Mutex
	timer Timer
	gen   uint64

	run sync.Mutex
}

// New returns a Debouncer for action.
func New(action func(), delay time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{
		action: action,
		delay:  delay,
		after:  SystemAfterFunc,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger (re)starts the quiet period. Any run scheduled by an earlier
// Trigger is cancelled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// Flush runs a pending action immediately on the calling goroutine. It
// reports whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	d.exec()
	return true
}

// Stop cancels a pending run without executing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer that lost the race with Stop or a newer Trigger is stale.
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.exec()
}

func (d *Debouncer) exec() {
	d.run.Lock()
	defer d.run.Unlock()
	d.action()
}
