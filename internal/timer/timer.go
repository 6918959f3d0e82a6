// Package timer keeps track of elapsed playback time independently of the
// audio output, which does not report a usable position.
package timer

import "time"

// Timer accumulates running intervals measured on the monotonic clock.
//
// Read returns elapsed + rate*(now - since) while running, elapsed otherwise.
// The zero value is a stopped timer at 0 with rate 1.
type Timer struct {
	elapsed time.Duration
	since   time.Time // zero when paused
	rate    float64
}

// Start begins accumulating time. No-op if already running.
func (t *Timer) Start() {
	if t.Running() {
		return
	}
	t.since = time.Now()
}

// Pause folds the running interval into the elapsed total. No-op if paused.
func (t *Timer) Pause() {
	if !t.Running() {
		return
	}
	t.elapsed += t.delta(time.Now())
	t.since = time.Time{}
}

// Clear pauses the timer and resets it to zero.
func (t *Timer) Clear() {
	t.Pause()
	t.elapsed = 0
}

// Read returns the current elapsed time. It has no side effects.
func (t *Timer) Read() time.Duration {
	if !t.Running() {
		return t.elapsed
	}
	return t.elapsed + t.delta(time.Now())
}

// Overwrite sets the elapsed time to d, keeping the running state.
func (t *Timer) Overwrite(d time.Duration) {
	t.elapsed = d
	if t.Running() {
		t.since = time.Now()
	}
}

// Running reports whether the timer is accumulating time.
func (t *Timer) Running() bool {
	return !t.since.IsZero()
}

// Rate returns the factor applied to wall-clock time.
func (t *Timer) Rate() float64 {
	if t.rate <= 0 {
		return 1
	}
	return t.rate
}

// SetRate changes how fast the timer advances relative to the wall clock.
// Time already accumulated at the previous rate is kept.
func (t *Timer) SetRate(r float64) {
	if r <= 0 {
		r = 1
	}
	if t.Running() {
		now := time.Now()
		t.elapsed += t.delta(now)
		t.since = now
	}
	t.rate = r
}

func (t *Timer) delta(now time.Time) time.Duration {
	d := now.Sub(t.since)
	if r := t.Rate(); r != 1 {
		d = time.Duration(float64(d) * r)
	}
	return d
}
