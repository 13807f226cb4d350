package voronoi

import (
	"math"

	"github.com/chazu/slasupport/pkg/geom"
)

// Position identifies a point on the graph: an edge plus a ratio in
// [0,1], 0 at the edge's source node and 1 at its target.
type Position struct {
	Edge  EdgeIndex
	Ratio float64
}

// Point returns the Cartesian location of a Position.
func (g *Graph) Point(pos Position) geom.Point {
	return g.PointAt(pos.Edge, pos.Ratio)
}

// WidthAt returns the island thickness at ratio t along edge e. For
// CurveLinear edges this is a straight interpolation between the raw
// endpoint widths; for CurveParabolic edges it evaluates the exact
// parabola width(u) = (u^2+h^2)/h at the u corresponding to t.
func (g *Graph) WidthAt(e EdgeIndex, t float64) float64 {
	edge := &g.Edges[e]
	switch edge.Curve {
	case CurveParabolic:
		u := edge.uStart + (edge.uEnd-edge.uStart)*t
		return (u*u + edge.h*edge.h) / edge.h
	default:
		return edge.widthStart + (edge.widthEnd-edge.widthStart)*t
	}
}

// WidthAtPosition is a convenience wrapper around WidthAt for a Position.
func (g *Graph) WidthAtPosition(pos Position) float64 {
	return g.WidthAt(pos.Edge, pos.Ratio)
}

// InvertWidth finds the ratio(s) along edge e where the width equals
// target, restricted to [0,1]. Part separation uses this to
// place an IslandPartChange at the exact position a hysteresis threshold
// is crossed. At most two solutions exist for a parabolic edge (it is
// monotonic on each side of its vertex); callers pass which side they
// expect via preferHigherU when two solutions are possible.
func (g *Graph) InvertWidth(e EdgeIndex, target float64, preferHigherU bool) (float64, bool) {
	ratios := g.WidthCrossings(e, target)
	if len(ratios) == 0 {
		return 0, false
	}
	if len(ratios) == 1 {
		return ratios[0], true
	}
	edge := &g.Edges[e]
	// Two solutions only arise for a parabolic edge whose vertex lies
	// strictly inside [0,1]; pick by which side of the vertex (u=0) the
	// caller expects.
	for _, t := range ratios {
		u := edge.uStart + (edge.uEnd-edge.uStart)*t
		if preferHigherU && u >= 0 {
			return t, true
		}
		if !preferHigherU && u <= 0 {
			return t, true
		}
	}
	return ratios[0], true
}

// WidthCrossings returns every ratio in [0,1] along edge e where the
// width function equals target, sorted ascending. A CurveLinear edge has
// at most one crossing (a constant-width edge at exactly target reports
// ratio 0); a CurveParabolic edge can have up to two (one on each side of
// its interior minimum).
func (g *Graph) WidthCrossings(e EdgeIndex, target float64) []float64 {
	edge := &g.Edges[e]
	switch edge.Curve {
	case CurveParabolic:
		discriminant := edge.h * (target - edge.h)
		if discriminant < 0 {
			return nil
		}
		root := math.Sqrt(discriminant)
		us := [2]float64{-root, root}
		var ratios []float64
		for _, u := range us {
			if edge.uEnd == edge.uStart {
				continue
			}
			t := (u - edge.uStart) / (edge.uEnd - edge.uStart)
			if t < -1e-9 || t > 1+1e-9 {
				continue
			}
			t = clampRatio(t)
			if len(ratios) > 0 && math.Abs(ratios[len(ratios)-1]-t) < 1e-9 {
				continue
			}
			ratios = append(ratios, t)
		}
		if len(ratios) == 2 && ratios[0] > ratios[1] {
			ratios[0], ratios[1] = ratios[1], ratios[0]
		}
		return ratios
	default:
		if edge.widthEnd == edge.widthStart {
			if math.Abs(target-edge.widthStart) <= 1e-9 {
				return []float64{0}
			}
			return nil
		}
		t := (target - edge.widthStart) / (edge.widthEnd - edge.widthStart)
		if t < -1e-9 || t > 1+1e-9 {
			return nil
		}
		return []float64{clampRatio(t)}
	}
}

func clampRatio(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// rawWidthAtEndpoint computes 2*distance(p, site) for one of the edge's
// two generating sites (both give the same value by construction).
func rawWidthAtEndpoint(site Site, p geom.Point) float64 {
	return 2 * site.DistanceTo(p)
}

// makeLinearEdge fills in an Edge's width fields for a segment-segment or
// point-point generating pair, whose width is treated as linear along the
// edge.
func makeLinearEdge(e *Edge, site Site, startPos, endPos geom.Point) {
	e.Curve = CurveLinear
	e.widthStart = rawWidthAtEndpoint(site, startPos)
	e.widthEnd = rawWidthAtEndpoint(site, endPos)
	e.MinWidth = math.Min(e.widthStart, e.widthEnd)
	e.MaxWidth = math.Max(e.widthStart, e.widthEnd)
}

// makeParabolicEdge fills in an Edge's width fields for a point-segment
// generating pair. point is the point site (focus); line is the segment
// site's supporting line (directrix).
func makeParabolicEdge(e *Edge, point geom.Point, line geom.Line, startPos, endPos geom.Point) {
	e.Curve = CurveParabolic
	e.focus = point
	e.directrix = line

	foot, _ := line.Foot(point)
	e.h = point.DistanceTo(foot)
	if e.h == 0 {
		// Degenerate: point lies on the directrix. Treat as a
		// zero-width contour-touching edge.
		e.h = 1e-6
	}

	ux, uy := line.Direction()
	localU := func(p geom.Point) float64 {
		fx, fy := foot.F64()
		px, py := p.F64()
		return (px-fx)*ux + (py-fy)*uy
	}
	e.uStart = localU(startPos)
	e.uEnd = localU(endPos)

	e.widthStart = (e.uStart*e.uStart + e.h*e.h) / e.h
	e.widthEnd = (e.uEnd*e.uEnd + e.h*e.h) / e.h

	if (e.uStart <= 0 && e.uEnd >= 0) || (e.uStart >= 0 && e.uEnd <= 0) {
		e.MinWidth = e.h
		e.MaxWidth = math.Max(e.widthStart, e.widthEnd)
	} else {
		e.MinWidth = math.Min(e.widthStart, e.widthEnd)
		e.MaxWidth = math.Max(e.widthStart, e.widthEnd)
	}
}
