package hopper

import "time"

// World is the root of the scene graph. It owns the node arena, the
// simulation clock, the default camera, and references to the surface that
// presents the scene and the cache that provides images.
//
// Children of the World are kept in one flat ordered list; inactive children
// are skipped during update and render rather than partitioned.
type World struct {
	// RoundPixels snaps integrated positions to 1/100 px.
	RoundPixels bool

	bounds   Rect
	children []Node
	iterBuf  []Node

	nodes   arena
	time    *Time
	camera  *Camera
	surface Surface
	cache   *Cache
	sink    EventSink

	debug bool
	stats debugStats
}

// NewWorld creates a world of the given size with a camera covering all of
// it, an empty cache and no presentation surface.
func NewWorld(width, height float64) *World {
	w := &World{
		bounds:  Rect{Width: width, Height: height},
		nodes:   newArena(64),
		time:    NewTime(),
		surface: &nopSurface{},
		cache:   NewCache(),
	}
	w.camera = newCamera(w, width, height)
	return w
}

// SetSurface attaches the presentation surface. Call it before creating any
// node; existing views are not migrated.
func (w *World) SetSurface(s Surface) {
	if s == nil {
		s = &nopSurface{}
	}
	w.surface = s
	w.camera.rendered = false
}

// Surface returns the presentation surface.
func (w *World) Surface() Surface { return w.surface }

// SetCache replaces the image cache.
func (w *World) SetCache(c *Cache) {
	if c == nil {
		c = NewCache()
	}
	w.cache = c
}

// Cache returns the image cache.
func (w *World) Cache() *Cache { return w.cache }

// SetEventSink routes collision events to sink. Nil disables them.
func (w *World) SetEventSink(sink EventSink) { w.sink = sink }

// Time returns the simulation clock.
func (w *World) Time() *Time { return w.time }

// Camera returns the default camera.
func (w *World) Camera() *Camera { return w.camera }

// Bounds returns the world extents.
func (w *World) Bounds() Rect { return w.bounds }

// SetBounds changes the world extents.
func (w *World) SetBounds(x, y, width, height float64) {
	w.bounds = Rect{X: x, Y: y, Width: width, Height: height}
}

// SetDebugMode enables or disables debug mode. In debug mode invalid
// references and use of destroyed nodes panic, recovered panics are
// re-raised, and per-frame stats are printed to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	globalDebug = enabled
}

// Debug reports whether debug mode is on.
func (w *World) Debug() bool { return w.debug }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (w *World) Children() []Node { return w.children }

// NumChildren returns the number of direct children.
func (w *World) NumChildren() int { return len(w.children) }

// NumNodes returns the number of live entities and groups.
func (w *World) NumNodes() int { return w.nodes.len() }

// Resolve returns the node behind h, or nil when h is zero or stale.
func (w *World) Resolve(h Handle) Node { return w.nodes.get(h) }

// Entity returns the entity behind h, or nil.
func (w *World) Entity(h Handle) *Entity {
	e, _ := w.nodes.get(h).(*Entity)
	return e
}

// Add moves n to the end of the World's child list.
func (w *World) Add(n Node) {
	if n == nil {
		panic("hopper: cannot add nil node")
	}
	if globalDebug {
		debugCheckDestroyed(n.Destroyed(), "World.Add", n.nodeName())
	}
	if n.Destroyed() {
		return
	}
	w.reparent(n, w, worldHandle)
	if globalDebug {
		debugCheckChildCount("world", len(w.children))
	}
}

// Remove detaches n from the World. The node stays alive but is neither
// updated nor rendered until added somewhere again.
func (w *World) Remove(n Node) {
	if n == nil || n.parentHandle() != worldHandle || n.Destroyed() {
		name := "<nil>"
		if n != nil {
			name = n.nodeName()
		}
		invalidReference("World.Remove", name)
		return
	}
	w.reparent(n, nil, Handle{})
}

// NewSprite creates an active entity at (x, y) in the World showing frame
// of image key. A key missing from the cache leaves the default box.
func (w *World) NewSprite(x, y float64, key string, frame int) *Entity {
	return w.spawn(w, worldHandle, x, y, key, frame, true)
}

// Create creates an entity in the World.
func (w *World) Create(x, y float64, key string, frame int, active bool) *Entity {
	return w.spawn(w, worldHandle, x, y, key, frame, active)
}

// CreateMultiple creates n entities at (x, y) in the World.
func (w *World) CreateMultiple(n int, x, y float64, key string, frame int, active bool) []*Entity {
	out := make([]*Entity, 0, max(n, 0))
	for range n {
		out = append(out, w.spawn(w, worldHandle, x, y, key, frame, active))
	}
	return out
}

// NewGroup creates an active, empty group in the World.
func (w *World) NewGroup(name string) *Group {
	g := &Group{Name: name, world: w, active: true}
	g.handle = w.nodes.insert(g)
	w.addChild(g)
	g.parent = worldHandle
	g.view = w.surface.CreateView(0)
	g.shown = true
	return g
}

// spawn builds an entity and inserts it into dst.
func (w *World) spawn(dst container, dstHandle Handle, x, y float64, key string, frame int, active bool) *Entity {
	e := newEntity(w, x, y)
	e.Name = key
	e.active = active
	e.handle = w.nodes.insert(e)
	if key != "" {
		if err := e.SetImage(key, frame); err != nil {
			e.logMissing(err)
		}
	}
	dst.addChild(e)
	e.parent = dstHandle
	if active {
		e.acquireView()
		e.refreshInCamera()
	}
	return e
}

// --- container ---

func (w *World) addChild(n Node) {
	w.children = append(w.children, n)
}

func (w *World) removeChild(n Node) bool {
	for i, c := range w.children {
		if c == n {
			copy(w.children[i:], w.children[i+1:])
			w.children[len(w.children)-1] = nil
			w.children = w.children[:len(w.children)-1]
			return true
		}
	}
	return false
}

func (w *World) containerView() View { return 0 }

// --- Per-frame ---

// Update advances the clock by deltaMS milliseconds, fires due timers, then
// updates every active node and the camera.
func (w *World) Update(deltaMS float64) {
	var start time.Time
	if w.debug {
		start = time.Now()
	}
	w.time.update(deltaMS)
	w.update()
	w.camera.update(w.time.Delta())
	if w.debug {
		w.stats.updateTime = time.Since(start)
	}
}

// Render pushes the state of every visible node and the camera offset to
// the surface.
func (w *World) Render() {
	var start time.Time
	if w.debug {
		start = time.Now()
	}
	w.render()
	w.camera.render()
	if w.debug {
		w.stats.renderTime = time.Since(start)
		w.collectStats()
		w.debugLog(w.stats)
	}
}

func (w *World) update() {
	if len(w.children) == 0 {
		return
	}
	w.iterBuf = append(w.iterBuf[:0], w.children...)
	for i, n := range w.iterBuf {
		if n.Active() && n.parentHandle() == worldHandle {
			updateNode(n)
		}
		w.iterBuf[i] = nil
	}
	w.iterBuf = w.iterBuf[:0]
}

func (w *World) render() {
	if len(w.children) == 0 {
		return
	}
	w.iterBuf = append(w.iterBuf[:0], w.children...)
	for i, n := range w.iterBuf {
		if n.Active() && n.parentHandle() == worldHandle {
			renderNode(n)
		}
		w.iterBuf[i] = nil
	}
	w.iterBuf = w.iterBuf[:0]
}

// collectStats counts nodes for the debug log.
func (w *World) collectStats() {
	w.stats.nodeCount = w.nodes.len()
	w.stats.activeCount = 0
	w.stats.inCamera = 0
	w.stats.timerCount = w.time.NumTimers()
	var walk func(e *Entity)
	walk = func(e *Entity) {
		if !e.active {
			return
		}
		w.stats.activeCount++
		if e.inCamera {
			w.stats.inCamera++
		}
		for _, c := range e.children {
			walk(c)
		}
	}
	for _, n := range w.children {
		switch c := n.(type) {
		case *Entity:
			walk(c)
		case *Group:
			for _, e := range c.members {
				walk(e)
			}
		}
	}
}
