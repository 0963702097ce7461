// Package point provides the immutable labeled 3D point value type and
// its pairwise geometric operations (distance, slope, bearing).
package point

import "github.com/chewxy/math32"

// Point is an immutable terrain sample: three float32 coordinates and a
// caller-assigned identity. Identity uniqueness is enforced by the
// containing store, not by the value type; two Points are
// interchangeable iff all four fields match.
type Point struct {
	ID      uint32
	X, Y, Z float32
}

// New constructs a Point.
func New(id uint32, x, y, z float32) Point {
	return Point{ID: id, X: x, Y: y, Z: z}
}

// Coords returns the coordinates as a fixed-size array, convenient for
// spatial queries.
func (p Point) Coords() [3]float32 {
	return [3]float32{p.X, p.Y, p.Z}
}

// DistanceTo returns the Euclidean distance to o. Coincident points
// yield 0.
func (p Point) DistanceTo(o Point) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	dz := o.Z - p.Z
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SlopeTo returns the grade from p to o in percent (rise over
// horizontal run, times 100). Positive is uphill. A vertical line
// (zero run, non-zero rise) yields +Inf or -Inf by the sign of the
// rise; coincident points yield 0.
func (p Point) SlopeTo(o Point) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	dz := o.Z - p.Z

	run := math32.Hypot(dx, dy)
	if run == 0 {
		switch {
		case dz > 0:
			return math32.Inf(1)
		case dz < 0:
			return math32.Inf(-1)
		default:
			return 0
		}
	}

	return dz / run * 100
}

// BearingTo returns the compass bearing from p to o in degrees, always
// in [0, 360): north 0, east 90, south 180, west 270. The result is
// projected onto the horizontal plane; elevation is ignored.
func (p Point) BearingTo(o Point) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y

	deg := 90 - math32.Atan2(dy, dx)*(180/math32.Pi)

	// Normalize by stepping rather than Mod so 360 is never returned.
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}

	return deg
}
