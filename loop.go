package hopper

import "log"

// Fixed-step defaults: 60 updates per second, at most 240 catch-up steps
// per Advance.
const (
	DefaultStep     = 1000.0 / 60
	DefaultMaxSteps = 240
)

// Loop is a fixed-step accumulator. Advance feeds it wall time; it runs the
// update function once per whole step and the render function once per call.
// When more than MaxSteps are due the remainder is discarded and counted as
// dropped, so a stalled process does not spiral trying to catch up.
type Loop struct {
	Step     float64 // ms
	MaxSteps int

	update func(stepMS float64)
	render func()

	acc     float64
	running bool
	dropped int
}

// NewLoop creates a stopped loop. Non-positive arguments select the defaults.
func NewLoop(stepMS float64, maxSteps int) *Loop {
	if stepMS <= 0 {
		stepMS = DefaultStep
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Loop{Step: stepMS, MaxSteps: maxSteps}
}

// SetUpdate sets the function run once per step.
func (l *Loop) SetUpdate(fn func(stepMS float64)) { l.update = fn }

// SetRender sets the function run once per Advance, after the updates.
func (l *Loop) SetRender(fn func()) { l.render = fn }

// Start begins accepting time. Accumulated time from before is discarded.
func (l *Loop) Start() {
	l.running = true
	l.acc = 0
}

// Stop makes Advance a no-op.
func (l *Loop) Stop() { l.running = false }

// Running reports whether the loop was started and not stopped.
func (l *Loop) Running() bool { return l.running }

// Dropped returns the total number of steps discarded by the cap.
func (l *Loop) Dropped() int { return l.dropped }

// Advance adds elapsedMS to the accumulator, runs every whole step that fits
// (up to MaxSteps) and then renders. It returns the number of steps run.
func (l *Loop) Advance(elapsedMS float64) int {
	if !l.running {
		return 0
	}
	if elapsedMS > 0 {
		l.acc += elapsedMS
	}
	steps := 0
	for l.acc >= l.Step {
		if steps >= l.MaxSteps {
			lost := int(l.acc / l.Step)
			l.dropped += lost
			l.acc = 0
			if globalDebug {
				log.Printf("hopper: loop fell behind, dropped %d steps", lost)
			}
			break
		}
		if l.update != nil {
			l.update(l.Step)
		}
		l.acc -= l.Step
		steps++
		if !l.running {
			return steps
		}
	}
	if l.render != nil {
		l.render()
	}
	return steps
}
