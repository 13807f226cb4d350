package geom

import "math"

// Polygon is a closed, ordered sequence of points. Outer contours are
// wound counter-clockwise, holes clockwise.
type Polygon struct {
	Points []Point
}

// NewPolygon wraps a point slice as a Polygon. The slice is not copied.
func NewPolygon(pts []Point) Polygon {
	return Polygon{Points: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Points)
}

// At returns vertex i, wrapping modulo Len().
func (p Polygon) At(i int) Point {
	n := len(p.Points)
	if n == 0 {
		return Point{}
	}
	return p.Points[((i%n)+n)%n]
}

// Line returns the i-th boundary edge (from vertex i to vertex i+1).
func (p Polygon) Line(i int) Line {
	return Ln(p.At(i), p.At(i+1))
}

// Lines returns every boundary edge in order.
func (p Polygon) Lines() []Line {
	n := len(p.Points)
	lines := make([]Line, n)
	for i := 0; i < n; i++ {
		lines[i] = p.Line(i)
	}
	return lines
}

// SignedArea2 returns twice the signed area (positive for CCW winding).
// Returning the doubled area avoids a division when only the sign or a
// ranking between polygons is needed.
func (p Polygon) SignedArea2() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := p.At(i)
		b := p.At(i + 1)
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return sum
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea2()) / 2
}

// IsCCW reports whether the polygon is wound counter-clockwise.
func (p Polygon) IsCCW() bool {
	return p.SignedArea2() > 0
}

// Reversed returns a copy of the polygon with reversed winding.
func (p Polygon) Reversed() Polygon {
	n := len(p.Points)
	out := make([]Point, n)
	for i, pt := range p.Points {
		out[n-1-i] = pt
	}
	return Polygon{Points: out}
}

// Centroid returns the area-weighted centroid. Degenerate (zero-area)
// polygons fall back to the arithmetic mean of vertices.
func (p Polygon) Centroid() Point {
	n := len(p.Points)
	if n == 0 {
		return Point{}
	}
	var cx, cy, area float64
	for i := 0; i < n; i++ {
		a := p.At(i)
		b := p.At(i + 1)
		cross := float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
		cx += (float64(a.X) + float64(b.X)) * cross
		cy += (float64(a.Y) + float64(b.Y)) * cross
		area += cross
	}
	if area == 0 {
		var sx, sy float64
		for _, pt := range p.Points {
			sx += float64(pt.X)
			sy += float64(pt.Y)
		}
		return FromF64(sx/float64(n), sy/float64(n))
	}
	area /= 2
	cx /= 6 * area
	cy /= 6 * area
	return FromF64(cx, cy)
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
func (p Polygon) BoundingBox() BoundingBox {
	return BoundingBoxOf(p.Points)
}

// Contains reports whether point p is inside the polygon using the
// standard ray-casting test. Points exactly on the boundary may return
// either result; callers needing exact boundary behavior should test
// DistanceToPoint against each edge separately.
func (poly Polygon) Contains(p Point) bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := poly.At(i)
		b := poly.At(i + 1)
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := float64(a.X) + (float64(p.Y-a.Y)/float64(b.Y-a.Y))*float64(b.X-a.X)
			if float64(p.X) < x {
				inside = !inside
			}
		}
	}
	return inside
}

// DistanceToBoundary returns the minimum distance from p to any edge of
// the polygon.
func (poly Polygon) DistanceToBoundary(p Point) float64 {
	best := math.Inf(1)
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		d := poly.Line(i).DistanceToPoint(p)
		if d < best {
			best = d
		}
	}
	return best
}

// ClosestBoundaryPoint returns the point on the polygon's boundary
// closest to p.
func (poly Polygon) ClosestBoundaryPoint(p Point) Point {
	best := math.Inf(1)
	closest := p
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		line := poly.Line(i)
		c := line.ClosestPointOnSegment(p)
		if d := c.DistanceTo(p); d < best {
			best, closest = d, c
		}
	}
	return closest
}

// FarthestVertexFrom returns the index of the vertex farthest from p.
func (poly Polygon) FarthestVertexFrom(p Point) int {
	best := -1
	bestD := -1.0
	for i, v := range poly.Points {
		d := p.DistanceSqTo(v)
		if d > bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// Rotated returns a copy of the polygon with every vertex rotated by
// angle radians around the origin. Callers use this to align the vector
// from centroid to farthest vertex with the x-axis before a deterministic
// walk, so the result doesn't depend on the polygon's input orientation.
func (poly Polygon) Rotated(angle float64) Polygon {
	out := make([]Point, len(poly.Points))
	for i, v := range poly.Points {
		out[i] = v.Rotate(angle)
	}
	return Polygon{Points: out}
}

// Translated returns a copy of the polygon translated by d.
func (poly Polygon) Translated(d Point) Polygon {
	out := make([]Point, len(poly.Points))
	for i, v := range poly.Points {
		out[i] = v.Add(d)
	}
	return Polygon{Points: out}
}
