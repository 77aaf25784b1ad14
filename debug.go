package hopper

import (
	"fmt"
	"log"
	"os"
	"time"
)

// globalDebug mirrors the most recently set World debug flag so that entity,
// group and timer operations can check it cheaply. Only valid with a single
// World; multiple Worlds with differing debug modes reflect whichever called
// SetDebugMode last.
var globalDebug bool

// debugStats holds per-tick timing and scene metrics.
// Only populated when the World is in debug mode.
type debugStats struct {
	updateTime  time.Duration
	renderTime  time.Duration
	nodeCount   int
	activeCount int
	inCamera    int
	timerCount  int
}

// debugLog prints timing and scene stats to stderr.
func (w *World) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[hopper] update: %v | render: %v | total: %v\n",
		stats.updateTime, stats.renderTime, stats.updateTime+stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[hopper] nodes: %d | active: %d | in camera: %d | timers: %d\n",
		stats.nodeCount, stats.activeCount, stats.inCamera, stats.timerCount)
}

// invalidReference reports an operation on a node that is not where the
// caller thinks it is. Panics in debug mode, otherwise the operation is a
// no-op and this returns normally.
func invalidReference(op, name string) {
	if globalDebug {
		panic(fmt.Sprintf("hopper debug: %s: invalid reference to %q", op, name))
	}
}

// debugCheckDestroyed panics when a destroyed node is used in a tree
// operation. Callers only invoke it in debug mode.
func debugCheckDestroyed(destroyed bool, op, name string) {
	if destroyed {
		panic(fmt.Sprintf("hopper debug: %s on destroyed node %q", op, name))
	}
}

// debugCheckTreeDepth warns on stderr if entity nesting exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.parentEntity() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[hopper] warning: tree depth %d exceeds %d (entity %q)\n",
			depth, debugMaxTreeDepth, e.Name)
	}
}

// debugCheckChildCount warns on stderr if a container holds more than 1000
// children. Collision between such groups is quadratic.
const debugMaxChildCount = 1000

func debugCheckChildCount(name string, n int) {
	if n > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[hopper] warning: %q has %d children (threshold %d)\n",
			name, n, debugMaxChildCount)
	}
}

// safeCall runs fn and recovers a panic so one failing callback does not
// abort its siblings. In debug mode the panic is re-raised.
func safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if globalDebug {
				panic(r)
			}
			log.Printf("hopper: recovered panic in %s: %v", what, r)
		}
	}()
	fn()
}

// recoverNode is deferred around a single node's update or render.
func recoverNode(phase string, n Node) {
	if r := recover(); r != nil {
		if globalDebug {
			panic(r)
		}
		log.Printf("hopper: recovered panic in %s of %q: %v", phase, n.nodeName(), r)
	}
}
