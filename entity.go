package hopper

import (
	"fmt"
	"log"
)

// Default size of an entity without an image.
const (
	DefaultEntityWidth  = 32
	DefaultEntityHeight = 32
)

// Entity is a leaf scene node: a rectangle in world coordinates, optionally
// showing an image frame and optionally driven by a physics Body. Entities
// can hold other entities; a child is updated and rendered only while its
// parent is active.
//
// Entities are created through World and Group factories and always live in
// exactly one container. Position fields are absolute world coordinates.
type Entity struct {
	Name string

	X, Y          float64
	Width, Height float64
	// Anchor is the normalized pivot inside the box. (0, 0) puts X, Y at the
	// top-left corner, (0.5, 0.5) at the center.
	Anchor Point
	// Alpha is the opacity in [0, 1].
	Alpha float64
	// Angle is the rotation in degrees, clockwise.
	Angle float64
	// Tint multiplies the image, or the default fill for entities without one.
	Tint Color

	// OutOfBoundsKill kills the entity once it lies fully outside the world.
	OutOfBoundsKill bool

	// Body is nil unless physics is enabled (see EnableBody).
	Body *Body

	// OnUpdate runs after the entity and its children updated.
	OnUpdate func(e *Entity)
	// OnRender runs after the entity pushed its state to the surface.
	OnRender func(e *Entity)

	UserData any

	key        string
	frame      int
	image      *ImageInfo
	imageDirty bool

	handle    Handle
	parent    Handle
	world     *World
	view      View
	active    bool
	inCamera  bool
	destroyed bool
	shown     bool

	children []*Entity
	iterBuf  []*Entity

	pushed renderState
}

// renderState is what the surface last received for a view.
type renderState struct {
	valid        bool
	x, y, w, h   float64
	alpha, angle float64
	tint         Color
}

func newEntity(w *World, x, y float64) *Entity {
	return &Entity{
		X:      x,
		Y:      y,
		Width:  DefaultEntityWidth,
		Height: DefaultEntityHeight,
		Alpha:  1,
		Tint:   ColorWhite,
		world:  w,
	}
}

// Handle returns the entity's arena handle.
func (e *Entity) Handle() Handle { return e.handle }

// Active reports whether the entity is alive.
func (e *Entity) Active() bool { return e.active }

// Destroyed reports whether Destroy was called.
func (e *Entity) Destroyed() bool { return e.destroyed }

// InCamera reports whether the entity overlapped the camera during its last
// update.
func (e *Entity) InCamera() bool { return e.inCamera }

// World returns the world the entity belongs to.
func (e *Entity) World() *World { return e.world }

// Key returns the cache key of the entity's image, or "" for none.
func (e *Entity) Key() string { return e.key }

// Frame returns the current frame index.
func (e *Entity) Frame() int { return e.frame }

// Image returns the cached image metadata, or nil.
func (e *Entity) Image() *ImageInfo { return e.image }

// Parent returns the containing Group or Entity, or nil when the entity
// sits directly in the World or is detached.
func (e *Entity) Parent() Node {
	if e.world == nil {
		return nil
	}
	return e.world.nodes.get(e.parent)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// Bounds returns the axis-aligned box derived from position, size and anchor.
func (e *Entity) Bounds() Rect {
	return Rect{
		X:      e.X - e.Width*e.Anchor.X,
		Y:      e.Y - e.Height*e.Anchor.Y,
		Width:  e.Width,
		Height: e.Height,
	}
}

// Left returns the minimum x of the entity's bounds.
func (e *Entity) Left() float64 { return e.X - e.Width*e.Anchor.X }

// Top returns the minimum y of the entity's bounds.
func (e *Entity) Top() float64 { return e.Y - e.Height*e.Anchor.Y }

// Right returns the maximum x of the entity's bounds.
func (e *Entity) Right() float64 { return e.Left() + e.Width }

// Bottom returns the maximum y of the entity's bounds.
func (e *Entity) Bottom() float64 { return e.Top() + e.Height }

// SetPosition moves the entity.
func (e *Entity) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
}

// SetSize resizes the entity. Zero sizes are valid and never intersect.
func (e *Entity) SetSize(w, h float64) {
	e.Width = w
	e.Height = h
}

// SetImage shows frame of the cached image key and resizes the entity to the
// frame. An empty key clears the image. On error the entity is unchanged.
func (e *Entity) SetImage(key string, frame int) error {
	if key == "" {
		e.key, e.frame, e.image = "", 0, nil
		e.imageDirty = true
		return nil
	}
	info, err := e.world.cache.Image(key)
	if err != nil {
		return err
	}
	return e.showFrame(info, frame)
}

// SetFrame switches to another frame of the current image.
func (e *Entity) SetFrame(frame int) error {
	if e.image == nil {
		return fmt.Errorf("hopper: entity %q has no image: %w", e.Name, ErrMissingAsset)
	}
	return e.showFrame(e.image, frame)
}

func (e *Entity) showFrame(info *ImageInfo, frame int) error {
	w, h := info.Width, info.Height
	if len(info.Frames) > 0 {
		f, err := info.Frame(frame)
		if err != nil {
			return err
		}
		w, h = f.Width, f.Height
	} else if frame != 0 {
		return fmt.Errorf("hopper: image %q has no frames, got frame %d: %w", info.Key, frame, ErrFrameOutOfRange)
	}
	e.key, e.frame, e.image = info.Key, frame, info
	// Loaded but empty images keep the current box.
	if w > 0 && h > 0 {
		e.Width, e.Height = float64(w), float64(h)
	}
	e.imageDirty = true
	return nil
}

// EnableBody gives the entity a physics Body if it has none and returns it.
func (e *Entity) EnableBody() *Body {
	if e.Body == nil {
		e.Body = newBody(e)
	}
	return e.Body
}

// DisableBody drops the entity's Body.
func (e *Entity) DisableBody() {
	if e.Body == nil {
		return
	}
	if e.Body.Shape != ShapeRectangle && e.view != 0 {
		e.world.surface.SetShape(e.view, ShapeRectangle)
	}
	e.Body.owner = nil
	e.Body = nil
}

// --- Tree manipulation ---

// Add makes child a child of this entity, removing it from its current
// container first. Panics if child is nil or an ancestor of this entity.
func (e *Entity) Add(child *Entity) {
	if child == nil {
		panic("hopper: cannot add nil child")
	}
	if globalDebug {
		debugCheckDestroyed(e.destroyed, "Entity.Add (parent)", e.Name)
		debugCheckDestroyed(child.destroyed, "Entity.Add (child)", child.Name)
	}
	if e.destroyed || child.destroyed {
		return
	}
	if isAncestor(child, e) {
		panic("hopper: adding child would create a cycle")
	}
	e.world.reparent(child, e, e.handle)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e.Name, len(e.children))
	}
}

// Remove moves child from this entity to the World. Removing an entity that
// is not a child is an invalid reference.
func (e *Entity) Remove(child *Entity) {
	if child == nil || child.parent != e.handle || child.destroyed {
		name := "<nil>"
		if child != nil {
			name = child.Name
		}
		invalidReference("Entity.Remove", name)
		return
	}
	e.world.reparent(child, e.world, worldHandle)
}

// Kill deactivates the entity: it moves to its group's inactive partition,
// stops updating and rendering, and releases its view. Killing an inactive
// entity does nothing.
func (e *Entity) Kill() {
	if globalDebug {
		debugCheckDestroyed(e.destroyed, "Kill", e.Name)
	}
	if !e.active || e.destroyed {
		return
	}
	e.active = false
	e.inCamera = false
	if g, ok := e.world.containerOf(e.parent).(*Group); ok {
		g.deactivate(e)
	}
	e.releaseView()
}

// Revive reactivates a killed entity and gives it a fresh view.
func (e *Entity) Revive() {
	if globalDebug {
		debugCheckDestroyed(e.destroyed, "Revive", e.Name)
	}
	if e.active || e.destroyed {
		return
	}
	e.active = true
	if g, ok := e.world.containerOf(e.parent).(*Group); ok {
		g.activate(e)
	}
	e.acquireView()
	e.refreshInCamera()
}

// Destroy removes the entity from the scene for good and frees its handle.
// With cascade the children are destroyed too, otherwise they move to the
// World. Destroying twice does nothing.
func (e *Entity) Destroy(cascade bool) {
	if e.destroyed {
		return
	}
	w := e.world
	if old := w.containerOf(e.parent); old != nil {
		old.removeChild(e)
	}
	e.parent = Handle{}

	if len(e.children) > 0 {
		kids := append([]*Entity(nil), e.children...)
		for _, c := range kids {
			if cascade {
				c.Destroy(true)
			} else {
				w.reparent(c, w, worldHandle)
			}
		}
	}

	e.releaseView()
	w.nodes.release(e.handle)

	e.destroyed = true
	e.active = false
	e.inCamera = false
	e.children = nil
	e.iterBuf = nil
	if e.Body != nil {
		e.Body.owner = nil
		e.Body = nil
	}
	e.image = nil
	e.OnUpdate = nil
	e.OnRender = nil
	e.UserData = nil
}

// --- Node plumbing ---

func (e *Entity) nodeName() string     { return e.Name }
func (e *Entity) nodeView() View       { return e.view }
func (e *Entity) parentHandle() Handle { return e.parent }
func (e *Entity) setParent(h Handle)   { e.parent = h }
func (e *Entity) containerView() View  { return e.view }

func (e *Entity) parentEntity() *Entity {
	p, _ := e.Parent().(*Entity)
	return p
}

func (e *Entity) addChild(n Node) {
	c, ok := n.(*Entity)
	if !ok {
		panic("hopper: an entity can only hold entities")
	}
	e.children = append(e.children, c)
	// A child of a viewless parent stays hidden until the parent revives.
	if e.view == 0 {
		c.hide()
	}
}

func (e *Entity) removeChild(n Node) bool {
	c, ok := n.(*Entity)
	if !ok {
		return false
	}
	var found bool
	e.children, found = removeEntity(e.children, c)
	return found
}

func (e *Entity) hide() {
	if e.view != 0 && e.shown {
		e.world.surface.SetVisible(e.view, false)
	}
	e.shown = false
}

// acquireView creates the entity's view under its container's view. New
// views start hidden; the next render shows them when in camera.
func (e *Entity) acquireView() {
	if e.view != 0 {
		return
	}
	s := e.world.surface
	var parentView View
	if c := e.world.containerOf(e.parent); c != nil {
		parentView = c.containerView()
	}
	e.view = s.CreateView(parentView)
	s.SetVisible(e.view, false)
	e.shown = false
	e.pushed = renderState{}
	e.imageDirty = true
	if e.Body != nil && e.Body.Shape != ShapeRectangle {
		s.SetShape(e.view, e.Body.Shape)
	}
	for _, c := range e.children {
		if c.view != 0 {
			s.Attach(c.view, e.view)
		}
	}
}

func (e *Entity) releaseView() {
	if e.view == 0 {
		return
	}
	e.world.surface.DestroyView(e.view)
	e.view = 0
	e.shown = false
}

func (e *Entity) refreshInCamera() {
	b := e.Bounds()
	cam := e.world.camera.Bounds()
	e.inCamera = b.Right() > cam.Left() && b.Bottom() > cam.Top() &&
		b.Left() < cam.Right() && b.Top() < cam.Bottom()
}

// outOfWorld reports whether the bounds lie fully outside the world on any side.
func (e *Entity) outOfWorld() bool {
	b := e.Bounds()
	wb := e.world.bounds
	return b.Right() < wb.Left() || b.Left() > wb.Right() ||
		b.Bottom() < wb.Top() || b.Top() > wb.Bottom()
}

// --- Per-frame ---

func (e *Entity) update() {
	if !e.active || e.destroyed {
		return
	}
	w := e.world
	e.refreshInCamera()

	if b := e.Body; b != nil && b.Enabled {
		b.integrate(e, w.time.Delta(), w.bounds, w.RoundPixels)
	}

	if e.OutOfBoundsKill && e.outOfWorld() {
		e.Kill()
		return
	}

	if len(e.children) > 0 {
		buf := append(e.iterBuf[:0], e.children...)
		for i, c := range buf {
			if c.active && c.parent == e.handle {
				updateNode(c)
			}
			buf[i] = nil
		}
		if !e.destroyed {
			e.iterBuf = buf[:0]
		}
	}

	if e.OnUpdate != nil && e.active {
		e.OnUpdate(e)
	}
}

func (e *Entity) render() {
	if !e.active || e.destroyed || e.view == 0 {
		return
	}
	s := e.world.surface
	if !e.inCamera {
		e.hide()
		return
	}
	if !e.shown {
		s.SetVisible(e.view, true)
		e.shown = true
	}
	e.push(s)

	if e.OnRender != nil {
		e.OnRender(e)
	}

	if len(e.children) > 0 {
		buf := append(e.iterBuf[:0], e.children...)
		for i, c := range buf {
			if c.active && c.parent == e.handle {
				renderNode(c)
			}
			buf[i] = nil
		}
		if !e.destroyed {
			e.iterBuf = buf[:0]
		}
	}
}

// push sends the properties that changed since the last push.
func (e *Entity) push(s Surface) {
	p := &e.pushed
	b := e.Bounds()
	if !p.valid || b.X != p.x || b.Y != p.y {
		s.SetPosition(e.view, b.X, b.Y)
		p.x, p.y = b.X, b.Y
	}
	if !p.valid || b.Width != p.w || b.Height != p.h {
		s.SetSize(e.view, b.Width, b.Height)
		p.w, p.h = b.Width, b.Height
	}
	if !p.valid || e.Alpha != p.alpha {
		s.SetOpacity(e.view, e.Alpha)
		p.alpha = e.Alpha
	}
	if !p.valid || e.Angle != p.angle {
		s.SetRotation(e.view, e.Angle)
		p.angle = e.Angle
	}
	if !p.valid || e.Tint != p.tint {
		s.SetTint(e.view, e.Tint)
		p.tint = e.Tint
	}
	if e.imageDirty {
		s.SetImage(e.view, e.image, e.frame)
		e.imageDirty = false
	}
	p.valid = true
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Entity) bool {
	for p := node; p != nil; p = p.parentEntity() {
		if p == candidate {
			return true
		}
	}
	return false
}

// logMissing reports an image that could not be shown at creation time.
func (e *Entity) logMissing(err error) {
	if globalDebug {
		log.Printf("hopper: entity %q: %v", e.Name, err)
	}
}
