package layer

import (
	"math"

	"github.com/samber/lo"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/sampler"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

const (
	angleTolerance    = 1e-3 // radians, tolerance used when matching a peninsula boundary line back to its source outline edge
	perpDistTolerance = 10   // micrometers (1e-2 mm), same rule
)

// Store is the single growing backing vector every part's NearPoints
// indexes into. Indices handed out by Add never move, so a LayerPart can
// keep a NearPoints built against an earlier, shorter Store.
type Store struct {
	points []*LayerSupportPoint
}

func NewStore() *Store { return &Store{} }

func (s *Store) slice() *[]*LayerSupportPoint { return &s.points }

// Add appends p and returns its stable index.
func (s *Store) Add(p *LayerSupportPoint) int {
	s.points = append(s.points, p)
	return len(s.points) - 1
}

func (s *Store) Get(index int) *LayerSupportPoint { return s.points[index] }

// All returns every point added to the store so far, in insertion order.
func (s *Store) All() []*LayerSupportPoint { return s.points }

// AdvanceAllRadii implements the "Radius update" rule: called once per
// layer, before that layer's parts are processed, it walks every point
// ever added to the store forward to z.
func (s *Store) AdvanceAllRadii(z float64, cfg GeneratorConfig) {
	for _, p := range s.points {
		p.AdvanceRadius(z, cfg)
	}
}

// LinkLayers wires Above/Below between a layer's parts and the layer
// below's, by bounding-box test then boolean intersection.
func LinkLayers(below, above []*LayerPart, ops geom.BooleanOps) {
	for _, a := range above {
		for _, b := range below {
			if !a.Overlaps(b) {
				continue
			}
			if len(ops.Intersection(a.Outline, b.Outline)) == 0 {
				continue
			}
			a.Below = append(a.Below, b)
			b.Above = append(b.Above, a)
		}
	}
}

// ProcessPart runs the four per-part cases, in order, for one
// already-linked LayerPart at height z: island, inherit, peninsula, and
// overhang. store is the shared backing vector every part's NearPoints
// indexes into.
func ProcessPart(part *LayerPart, store *Store, z float64, cfg GeneratorConfig, prep PrepareConfig, builder voronoi.DiagramBuilder, ops geom.BooleanOps) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := prep.Validate(); err != nil {
		return err
	}

	switch {
	case len(part.Below) == 0:
		if err := islandCase(part, store, z, cfg, builder, ops); err != nil {
			return err
		}
	default:
		inheritCase(part, store, cfg, ops)
		if err := peninsulaCase(part, store, z, cfg, prep, ops); err != nil {
			return err
		}
	}

	overhangCase(part, store, cfg, prep, ops)
	return nil
}

// islandCase: a part with nothing below starts a fresh index and is
// sampled as a new island from scratch.
func islandCase(part *LayerPart, store *Store, z float64, cfg GeneratorConfig, builder voronoi.DiagramBuilder, ops geom.BooleanOps) error {
	part.Points = NewNearPoints(store.slice())
	points, err := sampler.SampleIsland(part.Outline, builder, ops, cfg.SampleConfig)
	if err != nil {
		return err
	}
	firstRadius := cfg.SupportCurve[0].Radius / cfg.DensityRelative
	for _, p := range points {
		idx := store.Add(&LayerSupportPoint{
			Point:           p,
			PositionOnLayer: p.Position(),
			CurrentRadius:   firstRadius,
			OriginZ:         z,
		})
		part.Points.Insert(idx)
	}
	return nil
}

// inheritCase: take ownership of (clone if shared) the below-part's
// index, merge any other parents in, then drop indices that fell
// outside the part once expanded by removing_delta.
func inheritCase(part *LayerPart, store *Store, cfg GeneratorConfig, ops geom.BooleanOps) {
	primary := part.Below[0]
	if len(primary.Above) > 1 {
		part.Points = primary.Points.Clone()
	} else {
		part.Points = primary.Points
	}
	for _, other := range part.Below[1:] {
		part.Points.Merge(other.Points)
	}

	expanded := part.Outline
	if region, ok := grownBy(expanded, cfg.RemovingDelta, ops); ok {
		expanded = region
	}
	part.Points.RemoveOutside(expanded)
}

// grownBy offsets poly by delta using ops if given, otherwise returns
// poly unchanged (used where a nil ops means "no expansion needed").
func grownBy(poly geom.ExPolygon, delta float64, ops geom.BooleanOps) (geom.ExPolygon, bool) {
	if ops == nil || delta == 0 {
		return poly, true
	}
	grown := ops.Offset(poly, delta)
	return geom.LargestByArea(grown)
}

// peninsulaCase finds the sub-regions of part not reached by any
// below-part, classifies the ones big enough to need their own support
// as Peninsulas, labels their outline edges, and samples each.
func peninsulaCase(part *LayerPart, store *Store, z float64, cfg GeneratorConfig, prep PrepareConfig, ops geom.BooleanOps) error {
	belowUnion := unionBelow(part.Below, ops)

	uncovered, ok := grownBy(belowUnion, prep.PeninsulaMinWidth, ops)
	if !ok {
		return nil
	}
	unsupported := ops.Difference(part.Outline, uncovered)
	if len(unsupported) == 0 {
		return nil
	}

	selfSupportedBoundary, ok := grownBy(belowUnion, prep.PeninsulaSelfSupportedWidth, ops)
	if !ok {
		return nil
	}
	needsSupportArea := ops.Difference(part.Outline, selfSupportedBoundary)

	for _, region := range unsupported {
		if !regionNeedsSupport(region, needsSupportArea) {
			continue
		}
		peninsula := &Peninsula{Outline: region}
		peninsula.IsOutline = labelOutlineEdges(region, part.Below)
		part.Peninsulas = append(part.Peninsulas, peninsula)

		points, err := sampler.SamplePeninsula(*peninsula, ops, cfg.SampleConfig)
		if err != nil {
			return err
		}
		firstRadius := cfg.SupportCurve[0].Radius / cfg.DensityRelative
		for _, p := range points {
			idx := store.Add(&LayerSupportPoint{
				Point:           p,
				PositionOnLayer: p.Position(),
				CurrentRadius:   firstRadius,
				OriginZ:         z,
			})
			part.Points.Insert(idx)
		}
	}
	return nil
}

func unionBelow(below []*LayerPart, ops geom.BooleanOps) geom.ExPolygon {
	if len(below) == 0 {
		return geom.ExPolygon{}
	}
	outlines := lo.Map(below, func(b *LayerPart, _ int) geom.ExPolygon { return b.Outline })
	return lo.Reduce(outlines[1:], func(acc geom.ExPolygon, o geom.ExPolygon, _ int) geom.ExPolygon {
		if merged, ok := geom.LargestByArea(ops.Union(acc, o)); ok {
			return merged
		}
		return acc
	}, outlines[0])
}

func regionNeedsSupport(region geom.ExPolygon, needsSupportArea []geom.ExPolygon) bool {
	sample := region.Contour.Centroid()
	for _, area := range needsSupportArea {
		if area.Contains(sample) {
			return true
		}
	}
	return false
}

// labelOutlineEdges marks, per ring of the peninsula's outline, which
// boundary lines are real overhanging edges versus ones shared with a
// below-part (matched by angle within angleTolerance and perpendicular
// distance within perpDistTolerance).
func labelOutlineEdges(peninsula geom.ExPolygon, below []*LayerPart) [][]bool {
	rings := append([]geom.Polygon{peninsula.Contour}, peninsula.Holes...)
	out := make([][]bool, len(rings))
	for ri, ring := range rings {
		flags := make([]bool, ring.Len())
		for li := 0; li < ring.Len(); li++ {
			flags[li] = !matchesAnyBelowEdge(ring.Line(li), below)
		}
		out[ri] = flags
	}
	return out
}

func matchesAnyBelowEdge(line geom.Line, below []*LayerPart) bool {
	for _, b := range below {
		for _, candidate := range b.Outline.AllLines() {
			if edgesMatch(line, candidate) {
				return true
			}
		}
	}
	return false
}

func edgesMatch(a, b geom.Line) bool {
	if geom.AngleBetween(a, b) > angleTolerance {
		return false
	}
	mid := a.PointAt(0.5)
	if b.DistanceToPoint(mid) > perpDistTolerance {
		return false
	}
	return true
}

// overhangCase samples the part's boundary not covered by any below-part
// at discretize_overhang_step, emitting a slope support wherever no
// existing point's current coverage already reaches the sample.
func overhangCase(part *LayerPart, store *Store, cfg GeneratorConfig, prep PrepareConfig, ops geom.BooleanOps) {
	if part.Points == nil {
		return
	}
	belowUnion := unionBelow(part.Below, ops)

	for _, line := range part.Outline.AllLines() {
		length := line.Length()
		if length <= 0 {
			continue
		}
		steps := int(math.Ceil(length / prep.DiscretizeOverhangStep))
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pos := line.PointAt(t)
			if len(part.Below) > 0 && belowUnion.Contains(pos) {
				continue
			}
			if coveredBy(part.Points, pos, cfg.MaximalDistanceFromOutline) {
				continue
			}
			part.OverhangSamples = append(part.OverhangSamples, pos)
			idx := store.Add(&LayerSupportPoint{
				Point:           support.NewFrozenPoint(support.KindSlope, pos),
				PositionOnLayer: pos,
			})
			part.Points.Insert(idx)
		}
	}
}

// coveredBy reports whether any support already indexed within
// maximalRadius of pos has it inside its current circular coverage.
func coveredBy(index *NearPoints, pos geom.Point, maximalRadius float64) bool {
	hits := index.RadiusQuery(pos, maximalRadius, func(sp *LayerSupportPoint) bool {
		return sp.Covers(pos)
	})
	return len(hits) > 0
}
