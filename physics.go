package hopper

// Collider is something Collide and Overlap accept: an *Entity or a *Group.
type Collider interface {
	collider()
}

func (*Entity) collider() {}
func (*Group) collider()  {}

// CollisionEvent describes one intersecting pair found by Collide or Overlap.
type CollisionEvent struct {
	Kind  CollisionKind
	A, B  Handle
	NameA string
	NameB string
}

// EventSink receives collision events from a World. See World.SetEventSink.
type EventSink interface {
	OnCollision(ev CollisionEvent)
}

// CollisionFunc is called once per intersecting pair.
type CollisionFunc func(a, b *Entity)

// Collide reports every intersecting pair between a and b to fn and returns
// the number of pairs. Only active, live entities take part. Bodies are not
// separated; Collide differs from Overlap only in the event kind it emits.
//
// Group-vs-entity is treated as entity-vs-group, so the entity is always the
// first callback argument. A group against itself visits each pair once.
func Collide(a, b Collider, fn CollisionFunc) int {
	return detect(KindCollide, a, b, fn)
}

// Overlap is Collide for triggers: same detection, emitted as KindOverlap.
func Overlap(a, b Collider, fn CollisionFunc) int {
	return detect(KindOverlap, a, b, fn)
}

func detect(kind CollisionKind, a, b Collider, fn CollisionFunc) int {
	switch x := a.(type) {
	case *Entity:
		if x == nil {
			return 0
		}
		switch y := b.(type) {
		case *Entity:
			if y == nil {
				return 0
			}
			if testPair(kind, x, y, fn) {
				return 1
			}
		case *Group:
			if y == nil {
				return 0
			}
			return entityVsGroup(kind, x, y, fn)
		}
	case *Group:
		if x == nil {
			return 0
		}
		switch y := b.(type) {
		case *Entity:
			if y == nil {
				return 0
			}
			return entityVsGroup(kind, y, x, fn)
		case *Group:
			if y == nil {
				return 0
			}
			return groupVsGroup(kind, x, y, fn)
		}
	}
	return 0
}

func entityVsGroup(kind CollisionKind, e *Entity, g *Group, fn CollisionFunc) int {
	if len(g.members) == 0 {
		return 0
	}
	n := 0
	for _, m := range append([]*Entity(nil), g.members...) {
		if testPair(kind, e, m, fn) {
			n++
		}
	}
	return n
}

func groupVsGroup(kind CollisionKind, ga, gb *Group, fn CollisionFunc) int {
	if len(ga.members) == 0 || len(gb.members) == 0 {
		return 0
	}
	n := 0
	as := append([]*Entity(nil), ga.members...)
	if ga == gb {
		for i := 0; i < len(as); i++ {
			for j := i + 1; j < len(as); j++ {
				if testPair(kind, as[i], as[j], fn) {
					n++
				}
			}
		}
		return n
	}
	bs := append([]*Entity(nil), gb.members...)
	for _, x := range as {
		for _, y := range bs {
			if testPair(kind, x, y, fn) {
				n++
			}
		}
	}
	return n
}

// testPair checks one pair and reports it. Entities killed by an earlier
// callback no longer match.
func testPair(kind CollisionKind, a, b *Entity, fn CollisionFunc) bool {
	if a == b || !a.active || !b.active || a.destroyed || b.destroyed {
		return false
	}
	if !Intersects(a, b) {
		return false
	}
	if sink := a.world.sink; sink != nil {
		sink.OnCollision(CollisionEvent{
			Kind:  kind,
			A:     a.handle,
			B:     b.handle,
			NameA: a.Name,
			NameB: b.Name,
		})
	}
	if fn != nil {
		fn(a, b)
	}
	return true
}

// Intersects reports whether the shapes of a and b overlap. An entity
// without a body is a rectangle; a circle body is inscribed in the width of
// the entity's bounds.
func Intersects(a, b *Entity) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	ca, cb := a.shape() == ShapeCircle, b.shape() == ShapeCircle
	switch {
	case ca && cb:
		return IntersectCircles(a.circle(), b.circle())
	case ca:
		return IntersectRectCircle(b.Bounds(), a.circle())
	case cb:
		return IntersectRectCircle(a.Bounds(), b.circle())
	default:
		return IntersectRects(a.Bounds(), b.Bounds())
	}
}

func (e *Entity) shape() Shape {
	if e.Body == nil {
		return ShapeRectangle
	}
	return e.Body.Shape
}

func (e *Entity) circle() Circle {
	c := e.Bounds().Center()
	return Circle{X: c.X, Y: c.Y, Radius: e.Width * 0.5}
}

// IntersectRects reports whether two rectangles overlap. Touching edges
// count; a rectangle without area never intersects.
func IntersectRects(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	return !(a.Left() > b.Right() || a.Right() < b.Left() ||
		a.Top() > b.Bottom() || a.Bottom() < b.Top())
}

// IntersectCircles reports whether two circles overlap. Touching circles do
// not; a circle without radius never intersects.
func IntersectCircles(a, b Circle) bool {
	if a.Radius <= 0 || b.Radius <= 0 {
		return false
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := a.Radius + b.Radius
	return dx*dx+dy*dy < r*r
}

// IntersectRectCircle reports whether a rectangle and a circle overlap, by
// clamping the circle center into the rectangle.
func IntersectRectCircle(r Rect, c Circle) bool {
	if r.Empty() || c.Radius <= 0 {
		return false
	}
	dx := c.X - Clamp(c.X, r.Left(), r.Right())
	dy := c.Y - Clamp(c.Y, r.Top(), r.Bottom())
	return dx*dx+dy*dy < c.Radius*c.Radius
}
