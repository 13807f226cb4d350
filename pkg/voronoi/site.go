package voronoi

import (
	"math"

	"github.com/chazu/slasupport/pkg/geom"
)

// SiteKind distinguishes the two kinds of Voronoi-generating feature.
type SiteKind int

const (
	SitePoint SiteKind = iota
	SiteSegment
)

// Site is one of the two features that generate a Voronoi edge: either a
// vertex of the island's boundary segments, or one of the segments
// itself. Every point on the edge is equidistant from both of the edge's
// two sites, which is what lets width be computed from either one.
type Site struct {
	Kind      SiteKind
	Point     geom.Point // valid when Kind == SitePoint
	Line      geom.Line  // valid when Kind == SiteSegment
	LineIndex int        // index into the island's flattened line list; -1 for a pure vertex site that isn't also an endpoint of a retained line
}

// DistanceTo returns the distance from p to the site: to the site point,
// or to the infinite line containing the site segment (not clamped to the
// segment — the two cells straddling a point-segment edge are equidistant
// to the segment's supporting line over the full extent of that edge).
func (s Site) DistanceTo(p geom.Point) float64 {
	if s.Kind == SitePoint {
		return p.DistanceTo(s.Point)
	}
	return infiniteLineDistance(s.Line, p)
}

func infiniteLineDistance(l geom.Line, p geom.Point) float64 {
	ax, ay := l.A.F64()
	bx, by := l.B.F64()
	px, py := p.F64()
	vx, vy := bx-ax, by-ay
	length := math.Hypot(vx, vy)
	if length == 0 {
		return l.A.DistanceTo(p)
	}
	cross := (px-ax)*vy - (py-ay)*vx
	return math.Abs(cross) / length
}
