package hopper

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// testStep is a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of camera moves, waits and
// screenshots across fixed steps, for automated visual checks. Attach it to a
// Game with SetTestRunner.
//
// Supported actions:
//
//	{"action": "screenshot", "label": "start"}
//	{"action": "wait", "frames": 30}
//	{"action": "camera", "x": 100, "y": 50}
//	{"action": "scroll", "x": 400, "y": 0, "duration": 1.5}
//	{"action": "quit"}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("hopper: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("hopper: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "camera", "scroll", "quit":
		default:
			return nil, fmt.Errorf("hopper: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner. It advances once per fixed step, after
// the scene's Update hook.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one fixed step.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// A running scroll holds the script.
	if g.world.camera.Scrolling() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this step counts as one
		}
	case "camera":
		g.world.camera.SetPosition(st.X, st.Y)
	case "scroll":
		g.world.camera.ScrollTo(st.X, st.Y, st.Duration, ease.Linear)
	case "quit":
		g.Quit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !g.world.camera.Scrolling() {
		r.done = true
	}
}
