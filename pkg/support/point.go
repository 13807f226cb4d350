package support

import (
	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// PointKind records both what a SupportIslandPoint's type tag is and,
// for the fallback cases, why it fired.
type PointKind int

const (
	KindThinPart PointKind = iota
	KindThinPartChange
	KindThinPartLoop
	KindThickPartOutline
	KindThickPartInner
	KindOneBBCenterPoint
	KindOneCenterPoint
	KindTwoPoints
	KindTwoPointsBackup
	KindSlope
)

func (k PointKind) String() string {
	switch k {
	case KindThinPart:
		return "thin_part"
	case KindThinPartChange:
		return "thin_part_change"
	case KindThinPartLoop:
		return "thin_part_loop"
	case KindThickPartOutline:
		return "thick_part_outline"
	case KindThickPartInner:
		return "thick_part_inner"
	case KindOneBBCenterPoint:
		return "one_bb_center_point"
	case KindOneCenterPoint:
		return "one_center_point"
	case KindTwoPoints:
		return "two_points"
	case KindTwoPointsBackup:
		return "two_points_backup"
	case KindSlope:
		return "slope"
	default:
		return "unknown"
	}
}

// Mover is the common operation every SupportIslandPoint variant
// exposes: attempt to move to target, clamped to the variant's allowed
// locus, returning the actual distance moved.
type Mover interface {
	Position() geom.Point
	Move(target geom.Point) float64
	Movable() bool
	Kind() PointKind
}

// movePolicy is the subset of Mover that the four movement-policy
// variants implement directly; IslandPoint supplies Kind() itself from
// its own tag.
type movePolicy interface {
	Position() geom.Point
	Move(target geom.Point) float64
	Movable() bool
}

// IslandPoint wraps one of the four movement-policy variants together
// with its tag, satisfying Mover by delegating.
type IslandPoint struct {
	kind   PointKind
	policy movePolicy
}

func (p *IslandPoint) Position() geom.Point      { return p.policy.Position() }
func (p *IslandPoint) Move(target geom.Point) float64 { return p.policy.Move(target) }
func (p *IslandPoint) Movable() bool             { return p.policy.Movable() }
func (p *IslandPoint) Kind() PointKind           { return p.kind }

// NoMove is a frozen point: every "small island" short-circuit case and
// the two-points-backup fallback use this variant.
type NoMove struct {
	At geom.Point
}

func (n *NoMove) Position() geom.Point        { return n.At }
func (n *NoMove) Move(geom.Point) float64     { return 0 }
func (n *NoMove) Movable() bool               { return false }

// NewFrozenPoint builds an IslandPoint that never moves.
func NewFrozenPoint(kind PointKind, at geom.Point) *IslandPoint {
	return &IslandPoint{kind: kind, policy: &NoMove{At: at}}
}

// CenterOfSkeleton may move, but only along the Voronoi skeleton segment
// it was born on — a ThinPart center or a thin-part sampler point.
type CenterOfSkeleton struct {
	Graph *voronoi.Graph
	At    voronoi.Position
}

func (c *CenterOfSkeleton) Position() geom.Point {
	return c.Graph.Point(c.At)
}

func (c *CenterOfSkeleton) Movable() bool { return true }

// Move clamps target onto the edge c.At lives on by projecting it to the
// closest ratio on that edge's chord, then snapping to the clamped
// ratio — it cannot leave the one skeleton segment it was created on.
func (c *CenterOfSkeleton) Move(target geom.Point) float64 {
	edge := c.Graph.Edges[c.At.Edge]
	from := c.Graph.Nodes[edge.From].Position
	to := c.Graph.Nodes[edge.To].Position
	line := geom.Ln(from, to)
	_, t := line.Foot(target)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	before := c.Position()
	c.At.Ratio = t
	after := c.Position()
	return before.DistanceTo(after)
}

func NewSkeletonPoint(kind PointKind, g *voronoi.Graph, at voronoi.Position) *IslandPoint {
	return &IslandPoint{kind: kind, policy: &CenterOfSkeleton{Graph: g, At: at}}
}

// OutlineRun is the contiguous sequence of border-polygon line indices
// (on the inset polygon) that one OutlineSequence point is constrained
// to, in original line order; Closed marks a run with no chord (a pure
// closed outline, sampled circularly).
type OutlineRun struct {
	Polygon geom.Polygon
	Lines   []int
	Closed  bool
}

// OutlineSequence may move, but only along its OutlineRun, with a
// maximum shift of maxAlignDistance.
type OutlineSequence struct {
	Run             *OutlineRun
	LineIndex       int
	Ratio           float64
	MaxAlignDistance float64
}

func (o *OutlineSequence) lineAt(i int) geom.Line {
	lineIdx := o.Run.Lines[i]
	return o.Run.Polygon.Line(lineIdx)
}

func (o *OutlineSequence) Position() geom.Point {
	return o.lineAt(o.indexInRun()).PointAt(o.Ratio)
}

func (o *OutlineSequence) indexInRun() int {
	for i, li := range o.Run.Lines {
		if li == o.LineIndex {
			return i
		}
	}
	return 0
}

func (o *OutlineSequence) Movable() bool { return true }

// Move walks forward or backward along the run to find the closest
// point to target, clamping the total shift to MaxAlignDistance and, for
// an open run, to the run's own ends.
func (o *OutlineSequence) Move(target geom.Point) float64 {
	before := o.Position()

	bestIdx, bestRatio, bestDist := o.indexInRun(), o.Ratio, before.DistanceTo(target)
	for i := range o.Run.Lines {
		line := o.lineAt(i)
		closest := line.ClosestPointOnSegment(target)
		_, t := line.Foot(target)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		d := closest.DistanceTo(target)
		if d < bestDist {
			bestIdx, bestRatio, bestDist = i, t, d
		}
	}

	candidate := o.lineAt(bestIdx).PointAt(bestRatio)
	moved := before.DistanceTo(candidate)
	if moved > o.MaxAlignDistance && moved > 0 {
		scale := o.MaxAlignDistance / moved
		clamped := before.Lerp(candidate, scale)
		// Re-snap the clamped point onto the nearest run line so the
		// point's locus invariant is never violated.
		bestIdx, bestRatio, bestDist = o.indexInRun(), o.Ratio, before.DistanceTo(clamped)
		for i := range o.Run.Lines {
			line := o.lineAt(i)
			closest := line.ClosestPointOnSegment(clamped)
			_, t := line.Foot(clamped)
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			d := closest.DistanceTo(clamped)
			if d < bestDist {
				bestIdx, bestRatio, bestDist = i, t, d
			}
		}
	}

	o.LineIndex = o.Run.Lines[bestIdx]
	o.Ratio = bestRatio
	after := o.Position()
	return before.DistanceTo(after)
}

func NewOutlinePoint(kind PointKind, run *OutlineRun, lineIndex int, ratio float64, maxAlign float64) *IslandPoint {
	return &IslandPoint{kind: kind, policy: &OutlineSequence{
		Run: run, LineIndex: lineIndex, Ratio: ratio, MaxAlignDistance: maxAlign,
	}}
}

// Inner may move anywhere within its shared inset ExPolygon.
type Inner struct {
	Polygon *geom.ExPolygon
	At      geom.Point
}

func (i *Inner) Position() geom.Point { return i.At }
func (i *Inner) Movable() bool        { return true }

func (i *Inner) Move(target geom.Point) float64 {
	candidate := target
	if !i.Polygon.Contains(candidate) {
		candidate = i.Polygon.Contour.ClosestBoundaryPoint(candidate)
	}
	moved := i.At.DistanceTo(candidate)
	i.At = candidate
	return moved
}

func NewInnerPoint(kind PointKind, poly *geom.ExPolygon, at geom.Point) *IslandPoint {
	return &IslandPoint{kind: kind, policy: &Inner{Polygon: poly, At: at}}
}
