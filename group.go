package hopper

import (
	"reflect"
	"strings"
)

// Group is a container of entities split into an active and an inactive
// partition. Killing a member moves it to the inactive partition and
// reviving moves it back, which makes groups usable as object pools (see
// GetInactive). Groups live directly in the World.
type Group struct {
	Name string
	// PhysicsEnabled gives every entity created through the group a Body.
	PhysicsEnabled bool

	handle    Handle
	parent    Handle
	world     *World
	view      View
	active    bool
	destroyed bool
	shown     bool

	members  []*Entity // active partition
	inactive []*Entity
	iterBuf  []*Entity
}

// Handle returns the group's arena handle.
func (g *Group) Handle() Handle { return g.handle }

// Active reports whether the group updates and renders its members.
func (g *Group) Active() bool { return g.active }

// Destroyed reports whether Destroy was called.
func (g *Group) Destroyed() bool { return g.destroyed }

// World returns the world the group belongs to.
func (g *Group) World() *World { return g.world }

// SetActive pauses or resumes the whole group. A paused group is hidden.
func (g *Group) SetActive(active bool) {
	if g.destroyed || g.active == active {
		return
	}
	g.active = active
	if !active {
		g.hide()
	}
}

// Members returns the active partition. The returned slice MUST NOT be
// mutated by the caller.
func (g *Group) Members() []*Entity { return g.members }

// Inactive returns the inactive partition. The returned slice MUST NOT be
// mutated by the caller.
func (g *Group) Inactive() []*Entity { return g.inactive }

// Len returns the number of members in both partitions.
func (g *Group) Len() int { return len(g.members) + len(g.inactive) }

// CountActive returns the size of the active partition.
func (g *Group) CountActive() int { return len(g.members) }

// CountInactive returns the size of the inactive partition.
func (g *Group) CountInactive() int { return len(g.inactive) }

// Add moves e into the group, into the partition matching e.Active().
func (g *Group) Add(e *Entity) {
	if e == nil {
		panic("hopper: cannot add nil entity")
	}
	if globalDebug {
		debugCheckDestroyed(g.destroyed, "Group.Add (group)", g.Name)
		debugCheckDestroyed(e.destroyed, "Group.Add (entity)", e.Name)
	}
	if g.destroyed || e.destroyed {
		return
	}
	g.world.reparent(e, g, g.handle)
	if globalDebug {
		debugCheckChildCount(g.Name, g.Len())
	}
}

// Remove moves e out of the group into the World. Removing a non-member is
// an invalid reference.
func (g *Group) Remove(e *Entity) {
	if e == nil || e.parent != g.handle || e.destroyed {
		name := "<nil>"
		if e != nil {
			name = e.Name
		}
		invalidReference("Group.Remove", name)
		return
	}
	g.world.reparent(e, g.world, worldHandle)
}

// Create builds an entity at (x, y) showing frame of image key and adds it
// to the group. An empty key gives the default box.
// Creating into a destroyed group returns nil.
func (g *Group) Create(x, y float64, key string, frame int, active bool) *Entity {
	if g.destroyed {
		invalidReference("Group.Create", g.Name)
		return nil
	}
	e := g.world.spawn(g, g.handle, x, y, key, frame, active)
	if g.PhysicsEnabled {
		e.EnableBody()
	}
	return e
}

// CreateMultiple creates n entities at (x, y).
func (g *Group) CreateMultiple(n int, x, y float64, key string, frame int, active bool) []*Entity {
	if g.destroyed {
		invalidReference("Group.CreateMultiple", g.Name)
		return nil
	}
	out := make([]*Entity, 0, max(n, 0))
	for range n {
		out = append(out, g.Create(x, y, key, frame, active))
	}
	return out
}

// GetInactive returns the first inactive member, moved to (x, y) and showing
// frame of key. The entity stays inactive; call Revive to use it. When the
// pool is empty it creates a new inactive member if createIfNone is set,
// otherwise it returns nil.
func (g *Group) GetInactive(createIfNone bool, x, y float64, key string, frame int) *Entity {
	if len(g.inactive) > 0 {
		e := g.inactive[0]
		e.X, e.Y = x, y
		if err := e.SetImage(key, frame); err != nil {
			e.logMissing(err)
		}
		return e
	}
	if createIfNone {
		return g.Create(x, y, key, frame, false)
	}
	return nil
}

// ForEach calls fn for every member of the active or inactive partition.
// Members may be killed or removed from within fn.
func (g *Group) ForEach(fn func(e *Entity), active bool) {
	src := g.inactive
	if active {
		src = g.members
	}
	if len(src) == 0 {
		return
	}
	snapshot := append([]*Entity(nil), src...)
	for _, e := range snapshot {
		if e.parent == g.handle && !e.destroyed {
			fn(e)
		}
	}
}

// SetAll assigns value to a field on every member of the active or inactive
// partition. path names up to three exported fields separated by dots, matched
// case-insensitively, e.g. "Alpha", "Body.Velocity" or "Body.Velocity.X".
// Assignment happens at the deepest field of path that exists on the member;
// members where that field cannot hold value are skipped. Numeric values are
// converted between numeric kinds. It returns the number of members assigned.
func (g *Group) SetAll(path string, value any, active bool) int {
	keys := strings.Split(path, ".")
	if path == "" || len(keys) > 3 {
		return 0
	}
	src := g.inactive
	if active {
		src = g.members
	}
	v := reflect.ValueOf(value)
	n := 0
	for _, e := range src {
		if assignPath(reflect.ValueOf(e).Elem(), keys, v) {
			n++
		}
	}
	return n
}

// assignPath walks keys from root and assigns v to the deepest field found.
func assignPath(root reflect.Value, keys []string, v reflect.Value) bool {
	var target reflect.Value
	cur := root
	for _, k := range keys {
		if cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				break
			}
			cur = cur.Elem()
		}
		if cur.Kind() != reflect.Struct {
			break
		}
		f := fieldFold(cur, k)
		if !f.IsValid() {
			break
		}
		target = f
		cur = f
	}
	if !target.IsValid() || !target.CanSet() {
		return false
	}
	if !v.IsValid() {
		switch target.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice:
			target.Set(reflect.Zero(target.Type()))
			return true
		}
		return false
	}
	switch {
	case v.Type().AssignableTo(target.Type()):
		target.Set(v)
	case isNumeric(v.Kind()) && isNumeric(target.Kind()):
		target.Set(v.Convert(target.Type()))
	default:
		return false
	}
	return true
}

// fieldFold returns the exported field of s named like name, ignoring case.
func fieldFold(s reflect.Value, name string) reflect.Value {
	t := s.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return s.Field(i)
		}
	}
	return reflect.Value{}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Destroy removes the group from the World and frees its handle. With
// cascade every member is destroyed, otherwise members move to the World.
func (g *Group) Destroy(cascade bool) {
	if g.destroyed {
		return
	}
	w := g.world
	kids := make([]*Entity, 0, g.Len())
	kids = append(kids, g.members...)
	kids = append(kids, g.inactive...)
	for _, e := range kids {
		if cascade {
			e.Destroy(true)
		} else {
			w.reparent(e, w, worldHandle)
		}
	}
	if old := w.containerOf(g.parent); old != nil {
		old.removeChild(g)
	}
	g.parent = Handle{}
	if g.view != 0 {
		w.surface.DestroyView(g.view)
		g.view = 0
	}
	w.nodes.release(g.handle)
	g.destroyed = true
	g.active = false
	g.members = nil
	g.inactive = nil
	g.iterBuf = nil
}

// --- Node plumbing ---

func (g *Group) nodeName() string     { return g.Name }
func (g *Group) nodeView() View       { return g.view }
func (g *Group) parentHandle() Handle { return g.parent }
func (g *Group) setParent(h Handle)   { g.parent = h }
func (g *Group) containerView() View  { return g.view }

func (g *Group) hide() {
	if g.view != 0 && g.shown {
		g.world.surface.SetVisible(g.view, false)
	}
	g.shown = false
}

func (g *Group) addChild(n Node) {
	e, ok := n.(*Entity)
	if !ok {
		panic("hopper: a group can only hold entities")
	}
	if e.active {
		g.members = append(g.members, e)
	} else {
		g.inactive = append(g.inactive, e)
	}
}

func (g *Group) removeChild(n Node) bool {
	e, ok := n.(*Entity)
	if !ok {
		return false
	}
	var found bool
	if g.members, found = removeEntity(g.members, e); found {
		return true
	}
	g.inactive, found = removeEntity(g.inactive, e)
	return found
}

// deactivate moves e from the active to the inactive partition.
func (g *Group) deactivate(e *Entity) {
	var found bool
	if g.members, found = removeEntity(g.members, e); found {
		g.inactive = append(g.inactive, e)
	}
}

// activate moves e from the inactive to the active partition.
func (g *Group) activate(e *Entity) {
	var found bool
	if g.inactive, found = removeEntity(g.inactive, e); found {
		g.members = append(g.members, e)
	}
}

// --- Per-frame ---

func (g *Group) update() {
	if !g.active || g.destroyed || len(g.members) == 0 {
		return
	}
	buf := append(g.iterBuf[:0], g.members...)
	for i, e := range buf {
		if e.active && e.parent == g.handle {
			updateNode(e)
		}
		buf[i] = nil
	}
	if !g.destroyed {
		g.iterBuf = buf[:0]
	}
}

func (g *Group) render() {
	if !g.active || g.destroyed {
		return
	}
	if !g.shown && g.view != 0 {
		g.world.surface.SetVisible(g.view, true)
		g.shown = true
	}
	if len(g.members) == 0 {
		return
	}
	buf := append(g.iterBuf[:0], g.members...)
	for i, e := range buf {
		if e.active && e.parent == g.handle {
			renderNode(e)
		}
		buf[i] = nil
	}
	if !g.destroyed {
		g.iterBuf = buf[:0]
	}
}
