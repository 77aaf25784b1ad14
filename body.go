package hopper

// DefaultMaxVelocity is the per-axis velocity limit of a new Body.
const DefaultMaxVelocity = 10000

// Touching records which world edges a Body hit during the last update.
// None is true when no edge was touched.
type Touching struct {
	None   bool
	Left   bool
	Right  bool
	Top    bool
	Bottom bool
}

func (t *Touching) reset() {
	*t = Touching{None: true}
}

// Body holds the kinematic state of an Entity. It is owned by exactly one
// Entity and exists only while physics is enabled on it (see
// Entity.EnableBody). Velocities are in pixels per second, accelerations and
// gravity in pixels per second squared, drag in [0, 1] per update.
type Body struct {
	Velocity     Point
	Acceleration Point
	Gravity      Point
	Drag         Point
	Bounce       Point
	MaxVelocity  Point

	// AngularVelocity is in degrees per second.
	AngularVelocity float64
	// AngularDrag damps AngularVelocity by (1-AngularDrag) every update.
	AngularDrag float64

	AllowAcceleration bool
	AllowGravity      bool
	AllowDrag         bool
	AllowBounce       bool
	AllowAngularDrag  bool

	// Shape selects rectangle or circle collision geometry.
	Shape Shape
	// Touching is reset at the start of every update and filled in by
	// world-bounds clamping.
	Touching Touching
	// CollideWorldBounds keeps the owner inside the World's extents.
	CollideWorldBounds bool
	// Enabled gates integration. A disabled body keeps its state.
	Enabled bool

	owner *Entity
}

func newBody(owner *Entity) *Body {
	return &Body{
		MaxVelocity:       Point{DefaultMaxVelocity, DefaultMaxVelocity},
		AllowAcceleration: true,
		AllowGravity:      true,
		AllowDrag:         true,
		AllowBounce:       true,
		AllowAngularDrag:  true,
		Touching:          Touching{None: true},
		Enabled:           true,
		owner:             owner,
	}
}

// Owner returns the entity this body belongs to.
func (b *Body) Owner() *Entity {
	return b.owner
}

// SetCircle switches the body to circle geometry and tells the surface to
// draw the owner round.
func (b *Body) SetCircle() {
	b.setShape(ShapeCircle)
}

// SetRectangle switches the body to rectangle geometry.
func (b *Body) SetRectangle() {
	b.setShape(ShapeRectangle)
}

func (b *Body) setShape(s Shape) {
	b.Shape = s
	if b.owner != nil && b.owner.view != 0 {
		b.owner.world.surface.SetShape(b.owner.view, s)
	}
}

// integrate advances the body by dt seconds and moves its owner. Bounds
// clamping uses the world rectangle.
func (b *Body) integrate(e *Entity, dt float64, world Rect, roundPixels bool) {
	b.Touching.reset()

	if b.AngularVelocity != 0 {
		e.Angle += b.AngularVelocity * dt
	}
	if b.AllowAngularDrag && b.AngularDrag > 0 {
		b.AngularVelocity *= 1 - b.AngularDrag
	}

	v := &b.Velocity
	if b.AllowAcceleration {
		v.X += b.Acceleration.X * dt
		v.Y += b.Acceleration.Y * dt
	}
	if b.AllowGravity {
		v.X += b.Gravity.X * dt
		v.Y += b.Gravity.Y * dt
	}
	if b.AllowDrag {
		v.X *= 1 - b.Drag.X
		v.Y *= 1 - b.Drag.Y
	}

	// Each sign is clamped on its own.
	if v.X > b.MaxVelocity.X {
		v.X = b.MaxVelocity.X
	} else if v.X < -b.MaxVelocity.X {
		v.X = -b.MaxVelocity.X
	}
	if v.Y > b.MaxVelocity.Y {
		v.Y = b.MaxVelocity.Y
	} else if v.Y < -b.MaxVelocity.Y {
		v.Y = -b.MaxVelocity.Y
	}

	e.X += v.X * dt
	e.Y += v.Y * dt
	if roundPixels {
		e.X = roundTo(e.X, 100)
		e.Y = roundTo(e.Y, 100)
	}

	if b.CollideWorldBounds {
		b.clampToWorld(e, world)
	}
}

// clampToWorld pushes the owner back inside world on each side it crossed,
// flags the side and reflects the matching velocity component.
func (b *Body) clampToWorld(e *Entity, world Rect) {
	r := e.Bounds()

	if r.Left() < world.Left() {
		e.X += world.Left() - r.Left()
		b.Touching.None = false
		b.Touching.Left = true
		if b.AllowBounce {
			b.Velocity.X = -b.Velocity.X * b.Bounce.X
		}
	} else if r.Right() > world.Right() {
		e.X -= r.Right() - world.Right()
		b.Touching.None = false
		b.Touching.Right = true
		if b.AllowBounce {
			b.Velocity.X = -b.Velocity.X * b.Bounce.X
		}
	}

	if r.Top() < world.Top() {
		e.Y += world.Top() - r.Top()
		b.Touching.None = false
		b.Touching.Top = true
		if b.AllowBounce {
			b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		}
	} else if r.Bottom() > world.Bottom() {
		// Vertical extent comes from the world height.
		e.Y -= r.Bottom() - world.Bottom()
		b.Touching.None = false
		b.Touching.Bottom = true
		if b.AllowBounce {
			b.Velocity.Y = -b.Velocity.Y * b.Bounce.Y
		}
	}
}
