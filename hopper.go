package hopper

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the surface draws.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorLime is the default fill for entities without an image.
var ColorLime = Color{0, 1, 0, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}

// Point is a 2D vector used for positions, anchors, velocities and forces.
type Point struct {
	X, Y float64
}

// SetTo sets both components.
func (p *Point) SetTo(x, y float64) {
	p.X = x
	p.Y = y
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.X }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Y }

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Rectangles sharing only an
// edge intersect; a rectangle without area intersects nothing.
func (r Rect) Intersects(other Rect) bool {
	return IntersectRects(r, other)
}

// Circle is a circle described by its center and radius.
type Circle struct {
	X, Y, Radius float64
}

// NewCircle creates a circle centered on (x, y) from its diameter.
func NewCircle(x, y, diameter float64) Circle {
	return Circle{X: x, Y: y, Radius: diameter * 0.5}
}

// Diameter returns twice the radius.
func (c Circle) Diameter() float64 {
	return c.Radius * 2
}

// Shape selects the collision geometry of a Body.
type Shape uint8

const (
	ShapeRectangle Shape = iota // axis-aligned bounding box
	ShapeCircle                 // circle inscribed in the bounding box width
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// CollisionKind distinguishes Collide from Overlap in emitted events.
type CollisionKind uint8

const (
	KindCollide CollisionKind = iota // reported by Collide
	KindOverlap                      // reported by Overlap
)
