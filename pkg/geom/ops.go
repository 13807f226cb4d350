package geom

import "math"

// BooleanOps is the external collaborator interface for polygon boolean
// algebra. This module never implements clipping itself; every component
// that needs union/difference/intersection/offset takes a BooleanOps so
// production code can plug in a real clipper (e.g. Vatti/Clipper-style)
// while tests use a lightweight convex-friendly implementation.
type BooleanOps interface {
	// Union returns the union of a and b.
	Union(a, b ExPolygon) []ExPolygon
	// Difference returns a minus b.
	Difference(a, b ExPolygon) []ExPolygon
	// Intersection returns the overlap of a and b.
	Intersection(a, b ExPolygon) []ExPolygon
	// Offset grows (delta>0) or shrinks (delta<0) the polygon by delta.
	Offset(a ExPolygon, delta float64) []ExPolygon
	// Simplify reduces vertex count within tolerance, preserving topology.
	Simplify(a ExPolygon, tolerance float64) []ExPolygon
}

// ConvexApproxOps is a minimal BooleanOps good enough for unit tests and
// for single-contour, mostly-convex islands: it implements offset by
// moving every vertex of the contour and of each hole along its averaged
// edge normal, simplification by Douglas-Peucker on each ring, and boolean ops only for the
// disjoint/containment cases that are enough to validate the generator's
// control flow. It is not a substitute for a general polygon clipper.
type ConvexApproxOps struct{}

var _ BooleanOps = ConvexApproxOps{}

func (ConvexApproxOps) Union(a, b ExPolygon) []ExPolygon {
	abox, bbox := a.BoundingBox(), b.BoundingBox()
	if !abox.Intersects(bbox) {
		return []ExPolygon{a, b}
	}
	if containsExPolygon(a, b) {
		return []ExPolygon{a}
	}
	if containsExPolygon(b, a) {
		return []ExPolygon{b}
	}
	// Fallback: cannot merge disjoint boundaries without a real clipper;
	// return both, which keeps callers correct (if conservative) since
	// every generated support point is still validated against the
	// island it was meant for.
	return []ExPolygon{a, b}
}

func (ConvexApproxOps) Difference(a, b ExPolygon) []ExPolygon {
	if !a.BoundingBox().Intersects(b.BoundingBox()) {
		return []ExPolygon{a}
	}
	if containsExPolygon(b, a) {
		return nil
	}
	if containsExPolygon(a, b) && len(b.Holes) == 0 {
		holes := append(append([]Polygon{}, a.Holes...), b.Contour.Reversed())
		return []ExPolygon{NewExPolygon(a.Contour, holes)}
	}
	return []ExPolygon{a}
}

func (ConvexApproxOps) Intersection(a, b ExPolygon) []ExPolygon {
	if !a.BoundingBox().Intersects(b.BoundingBox()) {
		return nil
	}
	if containsExPolygon(a, b) {
		return []ExPolygon{b}
	}
	if containsExPolygon(b, a) {
		return []ExPolygon{a}
	}
	return nil
}

func (ConvexApproxOps) Offset(a ExPolygon, delta float64) []ExPolygon {
	contour := offsetPolygon(a.Contour, delta)
	holes := make([]Polygon, 0, len(a.Holes))
	for _, h := range a.Holes {
		// Holes grow when the outer contour shrinks and vice versa.
		oh := offsetPolygon(h, -delta)
		if oh.Len() >= 3 {
			holes = append(holes, oh)
		}
	}
	if contour.Len() < 3 {
		return nil
	}
	return []ExPolygon{NewExPolygon(contour, holes)}
}

func (ConvexApproxOps) Simplify(a ExPolygon, tolerance float64) []ExPolygon {
	contour := douglasPeucker(a.Contour, tolerance)
	holes := make([]Polygon, 0, len(a.Holes))
	for _, h := range a.Holes {
		sh := douglasPeucker(h, tolerance)
		if sh.Len() >= 3 {
			holes = append(holes, sh)
		}
	}
	if contour.Len() < 3 {
		return nil
	}
	return []ExPolygon{NewExPolygon(contour, holes)}
}

func containsExPolygon(outer, inner ExPolygon) bool {
	for _, p := range inner.Contour.Points {
		if !outer.Contains(p) {
			return false
		}
	}
	return true
}

// offsetPolygon moves every vertex outward (delta>0) or inward (delta<0)
// along the average of its two adjacent edge normals.
func offsetPolygon(p Polygon, delta float64) Polygon {
	n := p.Len()
	if n < 3 {
		return p
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		prev := p.At(i - 1)
		cur := p.At(i)
		next := p.At(i + 1)
		n1x, n1y := edgeNormal(prev, cur)
		n2x, n2y := edgeNormal(cur, next)
		nx, ny := n1x+n2x, n1y+n2y
		length := math.Hypot(nx, ny)
		if length == 0 {
			out[i] = cur
			continue
		}
		nx, ny = nx/length, ny/length
		cx, cy := cur.F64()
		out[i] = FromF64(cx+nx*delta, cy+ny*delta)
	}
	return Polygon{Points: out}
}

// edgeNormal returns the outward unit normal of edge a->b for a CCW
// contour (rotate the direction vector -90 degrees).
func edgeNormal(a, b Point) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(float64(dx), float64(dy))
	if length == 0 {
		return 0, 0
	}
	return float64(dy) / length, -float64(dx) / length
}

// douglasPeucker simplifies a closed polygon within tolerance.
func douglasPeucker(p Polygon, tolerance float64) Polygon {
	n := p.Len()
	if n < 4 {
		return p
	}
	keep := make([]bool, n)
	keep[0] = true
	dpRange(p.Points, 0, n-1, tolerance, keep)
	dpRange(p.Points, n-1, 0, tolerance, keep)
	out := make([]Point, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, p.Points[i])
		}
	}
	if len(out) < 3 {
		return p
	}
	return Polygon{Points: out}
}

func dpRange(pts []Point, lo, hi int, tol float64, keep []bool) {
	if hi <= lo+1 {
		keep[hi%len(pts)] = true
		return
	}
	line := Ln(pts[lo], pts[hi])
	best := -1.0
	bestIdx := -1
	i := lo + 1
	for i != hi {
		d := line.DistanceToPoint(pts[i])
		if d > best {
			best = d
			bestIdx = i
		}
		i = (i + 1) % len(pts)
	}
	if best > tol && bestIdx >= 0 {
		keep[bestIdx] = true
		dpRange(pts, lo, bestIdx, tol, keep)
		dpRange(pts, bestIdx, hi, tol, keep)
	} else {
		keep[hi] = true
	}
}
