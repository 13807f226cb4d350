package align

import (
	"math"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
)

const cellSides = 32

// Relax runs bounded Lloyd-style relaxation to convergence (or to
// countIteration iterations) and returns the number of iterations actually
// performed. A single point, or a set with no movable point, returns 0
// immediately.
func Relax(points []*support.IslandPoint, island geom.ExPolygon, ops geom.BooleanOps, maxCellRadius, minimalMove float64, countIteration int) int {
	if len(points) <= 1 || !anyMovable(points) {
		return 0
	}

	iter := 0
	for ; iter < countIteration; iter++ {
		before := make([]geom.Point, len(points))
		for i, p := range points {
			before[i] = p.Position()
		}

		after := make([]geom.Point, len(points))
		maxDisplacement := 0.0
		for i, p := range points {
			target := before[i]
			if piece, ok := clippedCell(before, i, island, ops, maxCellRadius); ok {
				target = piece.Contour.Centroid()
			}
			d := p.Move(target)
			if d > maxDisplacement {
				maxDisplacement = d
			}
			after[i] = p.Position()
		}

		resolveCoincidences(points, before, after)

		if maxDisplacement < minimalMove {
			return iter + 1
		}
	}
	return iter
}

func anyMovable(points []*support.IslandPoint) bool {
	for _, p := range points {
		if p.Movable() {
			return true
		}
	}
	return false
}

// clippedCell computes the Voronoi cell of positions[i] against every
// other position, clipped to a disk of radius maxCellRadius and then to
// the island, and returns the piece containing positions[i] if any.
// A missing containing piece (the generating point ended up outside every
// clipped cell) reports ok=false rather than panicking.
func clippedCell(positions []geom.Point, i int, island geom.ExPolygon, ops geom.BooleanOps, maxCellRadius float64) (geom.ExPolygon, bool) {
	cell := diskPolygon(positions[i], maxCellRadius, cellSides)
	for j, other := range positions {
		if j == i {
			continue
		}
		cell = clipHalfPlane(cell, positions[i], other)
		if cell.Len() == 0 {
			return geom.ExPolygon{}, false
		}
	}

	pieces := ops.Intersection(island, geom.NewExPolygon(cell, nil))
	for _, piece := range pieces {
		if piece.Contains(positions[i]) {
			return piece, true
		}
	}
	return geom.ExPolygon{}, false
}

func diskPolygon(center geom.Point, radius float64, sides int) geom.Polygon {
	cx, cy := center.F64()
	pts := make([]geom.Point, sides)
	for i := 0; i < sides; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = geom.FromF64(cx+radius*math.Cos(theta), cy+radius*math.Sin(theta))
	}
	return geom.NewPolygon(pts)
}

// clipHalfPlane keeps the part of poly on center's side of the
// perpendicular bisector of center and other (Sutherland-Hodgman against
// a single half-plane).
func clipHalfPlane(poly geom.Polygon, center, other geom.Point) geom.Polygon {
	n := poly.Len()
	if n == 0 {
		return poly
	}
	mx := (float64(center.X) + float64(other.X)) / 2
	my := (float64(center.Y) + float64(other.Y)) / 2
	dx := float64(other.X) - float64(center.X)
	dy := float64(other.Y) - float64(center.Y)
	side := func(p geom.Point) float64 {
		return (float64(p.X)-mx)*dx + (float64(p.Y)-my)*dy
	}

	var out []geom.Point
	for i := 0; i < n; i++ {
		a, b := poly.At(i), poly.At(i+1)
		sa, sb := side(a), side(b)
		if sa <= 0 {
			out = append(out, a)
		}
		if (sa < 0) != (sb < 0) {
			t := sa / (sa - sb)
			out = append(out, a.Lerp(b, t))
		}
	}
	return geom.NewPolygon(out)
}

// resolveCoincidences handles two points landing on the same spot after a
// round of moves: pull the later one back to the
// midpoint of its own previous and current position and recheck, bounded
// by the number of points so a pathological case can't loop forever.
func resolveCoincidences(points []*support.IslandPoint, before, after []geom.Point) {
	const epsilon = 1e-6
	for pass := 0; pass < len(points); pass++ {
		changed := false
		for i := 0; i < len(points); i++ {
			for j := i + 1; j < len(points); j++ {
				if after[i].DistanceTo(after[j]) > epsilon {
					continue
				}
				mid := before[j].Lerp(after[j], 0.5)
				points[j].Move(mid)
				after[j] = points[j].Position()
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
