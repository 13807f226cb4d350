package geom

import "math"

// Coord is a fixed-point coordinate in micrometers (1 Coord = 1e-6 m).
type Coord = int64

// Point is an integer-coordinate 2D point.
type Point struct {
	X, Y Coord
}

// Pt is a convenience constructor.
func Pt(x, y Coord) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s, rounded once at the end.
func (p Point) Scale(s float64) Point {
	return Point{
		X: Coord(math.Round(float64(p.X) * s)),
		Y: Coord(math.Round(float64(p.Y) * s)),
	}
}

// Lerp returns the point at parameter t between p and q (t=0 -> p, t=1 -> q).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: Coord(math.Round(float64(p.X) + (float64(q.X)-float64(p.X))*t)),
		Y: Coord(math.Round(float64(p.Y) + (float64(q.Y)-float64(p.Y))*t)),
	}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return math.Hypot(dx, dy)
}

// DistanceSqTo returns the squared Euclidean distance, avoiding a sqrt.
func (p Point) DistanceSqTo(q Point) float64 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return dx*dx + dy*dy
}

// F64 returns the point as float64 coordinates.
func (p Point) F64() (float64, float64) {
	return float64(p.X), float64(p.Y)
}

// FromF64 builds a Point from float64 coordinates, rounding once.
func FromF64(x, y float64) Point {
	return Point{X: Coord(math.Round(x)), Y: Coord(math.Round(y))}
}

// Cross returns the z-component of (p x q), treating both as vectors from
// the origin. Positive means q is counter-clockwise from p.
func (p Point) Cross(q Point) float64 {
	return float64(p.X)*float64(q.Y) - float64(p.Y)*float64(q.X)
}

// Dot returns the dot product of p and q, treated as vectors.
func (p Point) Dot(q Point) float64 {
	return float64(p.X)*float64(q.X) + float64(p.Y)*float64(q.Y)
}

// Rotate rotates p by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	s, c := math.Sin(angle), math.Cos(angle)
	x, y := p.F64()
	return FromF64(x*c-y*s, x*s+y*c)
}
