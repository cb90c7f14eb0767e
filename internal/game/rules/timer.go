package rules

import "time"

// Timer counts down by elapsed frame time and is polled for expiry.
type Timer struct {
	duration  time.Duration
	remaining time.Duration
	running   bool
}

// NewTimer returns a running timer of the given duration.
func NewTimer(duration time.Duration) *Timer {
	return &Timer{
		duration:  duration,
		remaining: duration,
		running:   true,
	}
}

// Update subtracts dt from the remaining time.
func (t *Timer) Update(dt time.Duration) {
	if t == nil || !t.running {
		return
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.running = false
	}
}

// Expired reports whether the timer has run out. A nil timer is always expired.
func (t *Timer) Expired() bool {
	return t == nil || t.remaining <= 0
}

// Running reports whether the timer is still counting down.
func (t *Timer) Running() bool {
	return t != nil && t.running
}

// Remaining returns the time left.
func (t *Timer) Remaining() time.Duration {
	if t == nil {
		return 0
	}
	return t.remaining
}

// Progress returns the elapsed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t == nil || t.duration <= 0 {
		return 1
	}
	return 1 - float64(t.remaining)/float64(t.duration)
}

// Reset restarts the timer with its original duration.
func (t *Timer) Reset() {
	t.remaining = t.duration
	t.running = t.duration > 0
}

// Restart restarts the timer with a new duration.
func (t *Timer) Restart(duration time.Duration) {
	t.duration = duration
	t.Reset()
}

// Stop expires the timer immediately.
func (t *Timer) Stop() {
	t.remaining = 0
	t.running = false
}
