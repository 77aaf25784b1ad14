package hopper

// RepeatForever makes a Timer fire until it is destroyed.
const RepeatForever = -1

// Timer invokes a callback after Delay milliseconds of simulated time, then
// again every Delay milliseconds for Repeat more times. Timers are owned by
// the Time that created them and deregister themselves when exhausted.
type Timer struct {
	Delay  float64
	Repeat int

	callback  func()
	deadline  float64
	running   bool
	fireCount int
	time      *Time
}

// NewTimer registers a timer that first fires delay ms from now. repeat is
// the number of extra fires after the first, or RepeatForever. A timer
// created with start=false waits for Resume, keeping its deadline.
func (t *Time) NewTimer(delay float64, repeat int, start bool, callback func()) *Timer {
	tm := &Timer{
		Delay:    delay,
		Repeat:   repeat,
		callback: callback,
		deadline: t.now + delay,
		running:  start,
	}
	t.register(tm)
	return tm
}

// Stop pauses the timer. The deadline does not move.
func (tm *Timer) Stop() {
	tm.running = false
}

// Resume restarts a paused timer. If the deadline already passed it fires on
// the next step.
func (tm *Timer) Resume() {
	tm.running = true
}

// Running reports whether the timer is counting down.
func (tm *Timer) Running() bool {
	return tm.running && tm.time != nil
}

// Destroy cancels the timer and removes it from its registry. Safe to call
// more than once and from within its own callback.
func (tm *Timer) Destroy() {
	tm.running = false
	if tm.time != nil {
		tm.time.deregister(tm)
	}
}

// Destroyed reports whether the timer left its registry.
func (tm *Timer) Destroyed() bool {
	return tm.time == nil
}

// Deadline returns the absolute simulated time of the next fire, in ms.
func (tm *Timer) Deadline() float64 {
	return tm.deadline
}

// FireCount returns how often the callback has run.
func (tm *Timer) FireCount() int {
	return tm.fireCount
}

func (tm *Timer) update(now float64) {
	if !tm.running || now < tm.deadline {
		return
	}
	tm.fireCount++
	if tm.callback != nil {
		safeCall("timer callback", tm.callback)
	}
	if tm.time == nil {
		return // destroyed by its own callback
	}
	if tm.Repeat != RepeatForever && tm.fireCount > tm.Repeat {
		tm.Destroy()
		return
	}
	tm.deadline = now + tm.Delay
}
