package hopper

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Entity simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenAlpha,
// TweenAngle, TweenSize) and call Update(dt) each frame, for example from a
// Scene's Update hook with World().Time().Delta(). If the target entity is
// destroyed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Entity
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. The entity pushes changed fields on its next render.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.destroyed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds every tween to its start value.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		v, _ := g.tweens[i].Set(0)
		*g.fields[i] = float64(v)
	}
	g.Done = false
}

func newTweenGroup(e *Entity, duration float32, fn ease.TweenFunc, pairs ...tweenPair) *TweenGroup {
	g := &TweenGroup{count: len(pairs), target: e}
	for i, p := range pairs {
		g.tweens[i] = gween.New(float32(*p.field), float32(p.to), duration, fn)
		g.fields[i] = p.field
	}
	return g
}

type tweenPair struct {
	field *float64
	to    float64
}

// TweenPosition animates e.X and e.Y to (toX, toY) over duration seconds.
func TweenPosition(e *Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn,
		tweenPair{&e.X, toX},
		tweenPair{&e.Y, toY})
}

// TweenAlpha animates e.Alpha.
func TweenAlpha(e *Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.Alpha, to})
}

// TweenAngle animates e.Angle, in degrees.
func TweenAngle(e *Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn, tweenPair{&e.Angle, to})
}

// TweenSize animates e.Width and e.Height.
func TweenSize(e *Entity, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn,
		tweenPair{&e.Width, toW},
		tweenPair{&e.Height, toH})
}

// TweenTint animates all four components of e.Tint.
func TweenTint(e *Entity, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(e, duration, fn,
		tweenPair{&e.Tint.R, to.R},
		tweenPair{&e.Tint.G, to.G},
		tweenPair{&e.Tint.B, to.B},
		tweenPair{&e.Tint.A, to.A})
}
