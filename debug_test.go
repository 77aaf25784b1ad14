package hopper

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn and returns what it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	func() {
		defer func() { os.Stderr = old }()
		fn()
	}()
	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

// expectPanic fails the test unless fn panics with a message containing want.
func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", want)
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, want) {
			t.Errorf("panic = %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DestroyedChildPanics(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	parent := w.NewSprite(0, 0, "", 0)
	child := w.NewSprite(0, 0, "", 0)
	child.Destroy(false)

	expectPanic(t, "destroyed", func() { parent.Add(child) })
}

func TestDebugMode_DestroyedGroupPanics(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	g := w.NewGroup("g")
	g.Destroy(false)
	e := w.NewSprite(0, 0, "", 0)

	expectPanic(t, "destroyed", func() { g.Add(e) })
}

func TestDebugMode_KillDestroyedPanics(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	e := w.NewSprite(0, 0, "", 0)
	e.Destroy(false)
	expectPanic(t, "hopper debug:", e.Kill)
}

func TestDebugMode_InvalidReferencePanics(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	parent := w.NewSprite(0, 0, "", 0)
	stranger := w.NewSprite(0, 0, "", 0)
	stranger.Name = "stranger"
	g := w.NewGroup("g")

	expectPanic(t, "invalid reference", func() { parent.Remove(stranger) })
	expectPanic(t, `"stranger"`, func() { g.Remove(stranger) })
	w.Remove(stranger)
	expectPanic(t, "World.Remove", func() { w.Remove(stranger) })
}

func TestReleaseMode_DestroyedNodeNoOp(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(false)

	parent := w.NewSprite(0, 0, "", 0)
	child := w.NewSprite(0, 0, "", 0)
	child.Destroy(false)

	parent.Add(child)
	w.Add(child)
	if parent.NumChildren() != 0 || w.NumChildren() != 1 {
		t.Error("destroyed node was added in release mode")
	}
}

func TestReleaseMode_HookPanicIsolated(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(false)

	bad := w.NewSprite(0, 0, "", 0)
	bad.OnUpdate = func(*Entity) { panic("boom") }
	calls := 0
	good := w.NewSprite(0, 0, "", 0)
	good.OnUpdate = func(*Entity) { calls++ }

	w.Update(16)
	w.Update(16)
	if calls != 2 {
		t.Errorf("sibling updated %d times, want 2", calls)
	}
	if !bad.Active() {
		t.Error("a recovered panic should not kill the entity")
	}
}

func TestDebugMode_HookPanicPropagates(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	bad := w.NewSprite(0, 0, "", 0)
	bad.OnUpdate = func(*Entity) { panic("boom") }

	expectPanic(t, "boom", func() { w.Update(16) })
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := w.NewSprite(0, 0, "", 0)
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := w.NewSprite(0, 0, "", 0)
			child.Name = fmt.Sprintf("depth_%d", i)
			current.Add(child)
			current = child
		}
	})
	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	output := captureStderr(t, func() {
		g := w.NewGroup("swarm")
		for i := 0; i < debugMaxChildCount+1; i++ {
			g.Add(w.NewSprite(0, 0, "", 0))
		}
	})
	if !strings.Contains(output, `warning: "swarm"`) || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_StatsPrinted(t *testing.T) {
	w := NewWorld(800, 600)
	w.SetDebugMode(true)
	defer w.SetDebugMode(false)

	g := w.NewGroup("g")
	g.Create(10, 10, "", 0, true)
	g.Create(10, 10, "", 0, false)
	w.NewSprite(2000, 0, "", 0)
	w.Time().NewTimer(1000, 0, true, nil)

	output := captureStderr(t, func() {
		w.Update(16)
		w.Render()
	})
	if w.stats.nodeCount != 4 || w.stats.activeCount != 2 || w.stats.inCamera != 1 || w.stats.timerCount != 1 {
		t.Errorf("stats = %+v", w.stats)
	}
	if !strings.Contains(output, "[hopper] update:") || !strings.Contains(output, "nodes: 4 | active: 2 | in camera: 1 | timers: 1") {
		t.Errorf("unexpected stats output: %q", output)
	}
}

func TestReleaseMode_NoStats(t *testing.T) {
	w := NewWorld(800, 600)
	w.NewSprite(0, 0, "", 0)
	output := captureStderr(t, func() {
		w.Update(16)
		w.Render()
	})
	if output != "" {
		t.Errorf("release mode wrote to stderr: %q", output)
	}
}
