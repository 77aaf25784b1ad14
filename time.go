package hopper

// Time is the simulation clock. It advances only when the frame scheduler
// steps the game, so it is monotonic and deterministic.
type Time struct {
	now   float64 // ms since start
	delta float64 // seconds, last step

	timers  []*Timer
	iterBuf []*Timer
}

// NewTime creates a clock at zero.
func NewTime() *Time {
	return &Time{}
}

// Now returns the simulated time in milliseconds.
func (t *Time) Now() float64 {
	return t.now
}

// SinceStart is an alias for Now; the clock starts at zero.
func (t *Time) SinceStart() float64 {
	return t.now
}

// Delta returns the duration of the last step in seconds.
func (t *Time) Delta() float64 {
	return t.delta
}

// NumTimers returns the number of registered timers.
func (t *Time) NumTimers() int {
	return len(t.timers)
}

// Has reports whether timer is still registered.
func (t *Time) Has(timer *Timer) bool {
	for _, tm := range t.timers {
		if tm == timer {
			return true
		}
	}
	return false
}

// update advances the clock by deltaMS milliseconds and ticks every timer.
// Timers created by callbacks during this step are first ticked next step.
func (t *Time) update(deltaMS float64) {
	t.now += deltaMS
	t.delta = deltaMS / 1000

	t.iterBuf = append(t.iterBuf[:0], t.timers...)
	for i, tm := range t.iterBuf {
		if tm.time == t {
			tm.update(t.now)
		}
		t.iterBuf[i] = nil
	}
	t.iterBuf = t.iterBuf[:0]
}

func (t *Time) register(tm *Timer) {
	tm.time = t
	t.timers = append(t.timers, tm)
}

func (t *Time) deregister(tm *Timer) {
	for i, c := range t.timers {
		if c == tm {
			copy(t.timers[i:], t.timers[i+1:])
			t.timers[len(t.timers)-1] = nil
			t.timers = t.timers[:len(t.timers)-1]
			break
		}
	}
	tm.time = nil
}
