package hopper

import (
	"math"
	"math/rand/v2"
)

const (
	// PI2 is a full turn in radians.
	PI2 = math.Pi * 2
	// DegToRadFactor converts degrees to radians by multiplication.
	DegToRadFactor = math.Pi / 180
	// RadToDegFactor converts radians to degrees by multiplication.
	RadToDegFactor = 180 / math.Pi
)

// DegToRad converts an angle in degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * DegToRadFactor
}

// RadToDeg converts an angle in radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * RadToDegFactor
}

// IntegerInRange returns a random integer in [lo, hi], both inclusive.
// The bounds may be given in either order.
func IntegerInRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// AngleBetweenPoints returns the direction from (x1, y1) to (x2, y2) in radians.
func AngleBetweenPoints(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// AngleBetween returns the direction from a to b in radians.
func AngleBetween(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// DistanceBetweenPoints returns the euclidean distance between two points.
func DistanceBetweenPoints(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceBetween returns the euclidean distance between a and b.
func DistanceBetween(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// roundTo snaps v to the nearest multiple of 1/grid.
func roundTo(v, grid float64) float64 {
	return math.Round(v*grid) / grid
}
