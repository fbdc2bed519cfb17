// Package schedule provides tick-polled timing helpers. Nothing here starts
// timers or goroutines: callers feed the current time through Trigger and
// Poll from their own loop, which keeps behaviour deterministic in tests.
package schedule

import "time"

// Debouncer runs fn once the trigger stream has been quiet for delay. Each
// Trigger replaces the pending value and pushes the deadline out.
type Debouncer[T any] struct {
	delay    time.Duration
	fn       func(T)
	pending  bool
	value    T
	deadline time.Time
}

// NewDebouncer creates a trailing-edge debouncer.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger schedules fn(v) for now+delay, cancelling any earlier pending call.
func (d *Debouncer[T]) Trigger(now time.Time, v T) {
	d.pending = true
	d.value = v
	d.deadline = now.Add(d.delay)
}

// Poll fires the pending call if its deadline has passed.
func (d *Debouncer[T]) Poll(now time.Time) bool {
	if !d.pending || now.Before(d.deadline) {
		return false
	}
	d.pending = false
	v := d.value
	var zero T
	d.value = zero
	if d.fn != nil {
		d.fn(v)
	}
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool { return d.pending }

// Cancel drops any scheduled call.
func (d *Debouncer[T]) Cancel() {
	var zero T
	d.pending = false
	d.value = zero
}

// Throttle runs fn at most once per interval. A Trigger inside the interval
// is remembered and fires on the first Poll after the interval elapses.
type Throttle struct {
	interval time.Duration
	fn       func()
	next     time.Time
	pending  bool
}

// NewThrottle creates a leading-edge throttle with a trailing call.
func NewThrottle(interval time.Duration, fn func()) *Throttle {
	return &Throttle{interval: interval, fn: fn}
}

// Trigger runs fn immediately when allowed, otherwise marks a trailing call.
func (t *Throttle) Trigger(now time.Time) bool {
	if now.Before(t.next) {
		t.pending = true
		return false
	}
	t.fire(now)
	return true
}

// Poll runs the trailing call once the interval has elapsed.
func (t *Throttle) Poll(now time.Time) bool {
	if !t.pending || now.Before(t.next) {
		return false
	}
	t.fire(now)
	return true
}

// Pending reports whether a trailing call is waiting.
func (t *Throttle) Pending() bool { return t.pending }

// Cancel drops the trailing call; the interval window is kept.
func (t *Throttle) Cancel() { t.pending = false }

func (t *Throttle) fire(now time.Time) {
	t.pending = false
	t.next = now.Add(t.interval)
	if t.fn != nil {
		t.fn()
	}
}

// Coalescer merges any number of requests between frames into one call and
// runs at most once per frame interval.
type Coalescer struct {
	interval time.Duration
	fn       func()
	dirty    bool
	last     time.Time
}

// NewCoalescer creates a per-frame coalescer.
func NewCoalescer(interval time.Duration, fn func()) *Coalescer {
	return &Coalescer{interval: interval, fn: fn}
}

// Request marks work for the next frame.
func (c *Coalescer) Request() { c.dirty = true }

// Pending reports whether work is waiting.
func (c *Coalescer) Pending() bool { return c.dirty }

// Cancel drops waiting work.
func (c *Coalescer) Cancel() { c.dirty = false }

// Poll runs fn if work is waiting and a frame interval has passed since the last run.
func (c *Coalescer) Poll(now time.Time) bool {
	if !c.dirty || (!c.last.IsZero() && now.Sub(c.last) < c.interval) {
		return false
	}
	c.dirty = false
	c.last = now
	if c.fn != nil {
		c.fn()
	}
	return true
}
