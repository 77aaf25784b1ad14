package hopper

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the viewport into the World. X and Y are the world position of
// the viewport's top-left corner. Entities outside Bounds are culled.
type Camera struct {
	X, Y          float64
	Width, Height float64
	// RoundPixels snaps the position to whole pixels every update.
	RoundPixels bool

	world  *World
	target Handle
	bounds Rect

	lastX, lastY float64
	rendered     bool

	scrollTween *scrollAnim
}

func newCamera(w *World, width, height float64) *Camera {
	c := &Camera{Width: width, Height: height, world: w}
	c.refreshBounds()
	return c
}

// Follow makes the camera track e. The camera keeps a handle, so a destroyed
// target simply stops being followed.
func (c *Camera) Follow(e *Entity) {
	if e == nil || e.destroyed {
		return
	}
	c.target = e.handle
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.target = Handle{}
}

// Target returns the followed entity, or nil if there is none or it was
// destroyed.
func (c *Camera) Target() *Entity {
	return c.world.Entity(c.target)
}

// SetSize changes the viewport size.
func (c *Camera) SetSize(w, h float64) {
	c.Width = w
	c.Height = h
	c.refreshBounds()
}

// SetPosition moves the camera and refreshes its bounds immediately.
func (c *Camera) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
	c.refreshBounds()
}

// Bounds returns the visible world rectangle as of the last update.
func (c *Camera) Bounds() Rect {
	return c.bounds
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx - c.X, wy - c.Y
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx + c.X, sy + c.Y
}

// update follows the target inside the dead zone, advances a scroll
// animation, and recomputes the bounds. dt is in seconds.
func (c *Camera) update(dt float64) {
	if t := c.Target(); t != nil {
		wb := c.world.bounds
		halfW := c.Width * 0.5
		halfH := c.Height * 0.5
		// Near the world edges the camera holds still.
		if t.X > wb.X+halfW && t.X < wb.X+wb.Width-halfW {
			c.X = t.X - halfW
		}
		if t.Y > wb.Y+halfH && t.Y < wb.Y+wb.Height-halfH {
			c.Y = t.Y - halfH
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.RoundPixels {
		c.X = math.Round(c.X)
		c.Y = math.Round(c.Y)
	}
	c.refreshBounds()
}

func (c *Camera) refreshBounds() {
	c.bounds = Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// render pushes the viewport offset to the surface when the camera moved.
func (c *Camera) render() {
	if c.rendered && c.X == c.lastX && c.Y == c.lastY {
		return
	}
	c.world.surface.SetOffset(-c.X, -c.Y)
	c.lastX, c.lastY = c.X, c.Y
	c.rendered = true
}
