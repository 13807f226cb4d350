package partition

import (
	"sort"

	"github.com/chazu/slasupport/pkg/voronoi"
)

// Type is the category a skeleton sub-region falls into relative to the
// hysteresis band between config.ThickMinWidth and config.ThinMaxWidth.
type Type int

const (
	Thin Type = iota
	Middle
	Thick
)

func (t Type) String() string {
	switch t {
	case Thin:
		return "thin"
	case Middle:
		return "middle"
	case Thick:
		return "thick"
	default:
		return "unknown"
	}
}

// Change is a transition point on a Part's boundary: the exact Position
// where the hysteresis threshold was crossed, and the index of the part
// on the other side.
type Change struct {
	Position     voronoi.Position
	AdjacentPart int
}

// Segment is the sub-range of one graph edge that belongs to a Part.
// RatioStart < RatioEnd; RatioStart==0 and RatioEnd==1 together cover a
// fully-owned edge.
type Segment struct {
	Edge                 voronoi.EdgeIndex
	RatioStart, RatioEnd float64
	Length               float64
}

// Part is a maximal connected skeleton sub-region all of whose edges (or
// edge fractions) fall into one category.
type Part struct {
	Type       Type
	Changes    []Change
	SumLengths float64

	segments []Segment
}

// Segments exposes the edge fractions owned by this part, for samplers
// and internal-distance computations that need to walk the part's
// sub-graph.
func (p *Part) Segments() []Segment {
	return p.segments
}

// Set is the full output of classification + post-processing: a slice of
// Parts with Change.AdjacentPart indices referring into the same slice.
type Set struct {
	Parts []*Part
}

// ThinPart is the terminal form of a Thin Part once merging is done: the
// Position at the midpoint of its internal longest path, and its ends
// (the part's Changes, sorted for determinism).
type ThinPart struct {
	Center voronoi.Position
	Ends   []Change
}

// ThickPart is the terminal form of a Thick Part once merging is done: a
// Position anchoring inward sampling, and its ends (the part's Changes,
// sorted for determinism).
type ThickPart struct {
	Start voronoi.Position
	Ends  []Change
}

// FinalizeThin derives a ThinPart's center and ends from p's internal
// skeleton. ok is false when p has fewer than two Changes, so there is
// no internal path to take a midpoint of.
func FinalizeThin(p *Part) (ThinPart, bool) {
	path, length := longestInternalPath(p)
	if len(path) == 0 {
		return ThinPart{}, false
	}
	g := buildInternalGraph(p)
	center := positionAtInternalDistance(path, g, length/2)
	return ThinPart{Center: center, Ends: sortedEnds(p)}, true
}

// FinalizeThick derives a ThickPart's start and ends from p. Any of the
// part's ends works as the inward anchor — thick-part sampling walks
// inward from the boundary regardless of which one it starts at — so
// Start is simply the first sorted end.
func FinalizeThick(p *Part) (ThickPart, bool) {
	ends := sortedEnds(p)
	if len(ends) == 0 {
		return ThickPart{}, false
	}
	return ThickPart{Start: ends[0].Position, Ends: ends}, true
}

func sortedEnds(p *Part) []Change {
	ends := append([]Change(nil), p.Changes...)
	sort.Slice(ends, func(i, j int) bool {
		if ends[i].Position.Edge != ends[j].Position.Edge {
			return ends[i].Position.Edge < ends[j].Position.Edge
		}
		return ends[i].Position.Ratio < ends[j].Position.Ratio
	})
	return ends
}
