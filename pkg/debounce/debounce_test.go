package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeTimer struct {
	c       *fakeClock
	at      time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock is a manual scheduler; Advance fires due timers in order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	keep := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case t.at <= c.now:
			t.stopped = true
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	c.timers = keep
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func newTestDebouncer(delay time.Duration) (*Debouncer, *fakeClock, *atomic.Int32) {
	clock := &fakeClock{}
	var runs atomic.Int32
	d := New(func() { runs.Add(1) }, delay, WithAfterFunc(clock.AfterFunc))
	return d, clock, &runs
}

func TestBurstRunsOnce(t *testing.T) {
	d, clock, runs := newTestDebouncer(time.Second)

	for i := 0; i < 5; i++ {
		d.Trigger()
		clock.Advance(200 * time.Millisecond)
	}
	if got := runs.Load(); got != 0 {
		t.Fatalf("ran %d times during burst", got)
	}
	clock.Advance(time.Second)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected exactly one run after burst, got %d", got)
	}
	if d.Pending() {
		t.Fatal("still pending after run")
	}
}

func TestSpacedTriggersRunEach(t *testing.T) {
	d, clock, runs := newTestDebouncer(time.Second)

	for i := 0; i < 3; i++ {
		d.Trigger()
		clock.Advance(1500 * time.Millisecond)
	}
	if got := runs.Load(); got != 3 {
		t.Fatalf("expected 3 runs, got %d", got)
	}
}

func TestRunsExactlyAtDelay(t *testing.T) {
	d, clock, runs := newTestDebouncer(time.Second)
	d.Trigger()
	clock.Advance(999 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatal("ran before delay elapsed")
	}
	clock.Advance(time.Millisecond)
	if runs.Load() != 1 {
		t.Fatal("did not run once delay elapsed")
	}
}

func TestFlush(t *testing.T) {
	d, clock, runs := newTestDebouncer(time.Second)

	if d.Flush() {
		t.Fatal("Flush reported pending work on an idle debouncer")
	}
	d.Trigger()
	if !d.Flush() {
		t.Fatal("Flush did not report pending work")
	}
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected flush to run action once, got %d", got)
	}
	clock.Advance(2 * time.Second)
	if got := runs.Load(); got != 1 {
		t.Fatalf("timer fired after flush, runs=%d", got)
	}
}

func TestStop(t *testing.T) {
	d, clock, runs := newTestDebouncer(time.Second)
	d.Trigger()
	d.Stop()
	clock.Advance(2 * time.Second)
	if got := runs.Load(); got != 0 {
		t.Fatalf("action ran after Stop: %d", got)
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	var runs atomic.Int32
	var fire func()
	d := New(func() { runs.Add(1) }, time.Second, WithAfterFunc(func(_ time.Duration, f func()) Timer {
		fire = f
		// A timer whose Stop loses the race still calls f.
		return stubTimer{}
	}))

	d.Trigger()
	stale := fire
	d.Trigger()
	stale()
	if got := runs.Load(); got != 0 {
		t.Fatalf("stale timer ran the action: %d", got)
	}
	fire()
	if got := runs.Load(); got != 1 {
		t.Fatalf("current timer did not run the action: %d", got)
	}
}

type stubTimer struct{}

func (stubTimer) Stop() bool { return false }

func TestRealTimer(t *testing.T) {
	done := make(chan struct{}, 4)
	d := New(func() { done <- struct{}{} }, 20*time.Millisecond)
	d.Trigger()
	d.Trigger()
	d.Trigger()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("action never ran")
	}
	select {
	case <-done:
		t.Fatal("action ran more than once")
	case <-time.After(60 * time.Millisecond):
	}
}
