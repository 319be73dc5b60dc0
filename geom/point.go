// Package geom provides the small set of 2-D geometry primitives shared by
// the detector and rectifier: a point type and the distance helpers built on
// top of it.
package geom

import "math"

// Point is a location in image space. Detector output and rectifier input
// both use floating point so that sub-pixel pattern centers survive the
// perspective solve; truncation to a pixel index happens explicitly at the
// point where a value is used to index a buffer.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Mirror swaps the X and Y components.
func (p Point) Mirror() Point {
	return Point{p.Y, p.X}
}

// DistanceSquared returns the squared Euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.DistanceSquared(q))
}

// CrossProductZ returns the z-component of (b-a) x (c-a), used to determine
// the winding order of a finder-pattern triple.
func CrossProductZ(a, b, c Point) float64 {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	return bx*cy - by*cx
}

// Trunc truncates p to integer pixel coordinates. Perspective math must stay
// in float64 throughout; only the final buffer index is ever truncated, and
// always by truncation rather than rounding (see qrscan design notes).
func (p Point) Trunc() (x, y int) {
	return int(p.X), int(p.Y)
}
