package sampler

import (
	"github.com/chazu/slasupport/pkg/align"
	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/partition"
	"github.com/chazu/slasupport/pkg/pathsearch"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// SampleIsland simplifies the island, then escalates through the
// micro-island, small-island, and elongated-thin special cases before
// falling back to full part separation plus thin and thick sampling and
// alignment, with a two-point backup if that still produces too few
// points.
func SampleIsland(island geom.ExPolygon, builder voronoi.DiagramBuilder, ops geom.BooleanOps, config support.SampleConfig) ([]*support.IslandPoint, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	simplified, ok := simplifyIsland(island, ops, config.SimplificationTolerance)
	if !ok {
		return nil, nil
	}

	bbox := simplified.BoundingBox()
	if float64(bbox.Width()) <= config.HeadRadius && float64(bbox.Height()) <= config.HeadRadius {
		return []*support.IslandPoint{support.NewFrozenPoint(support.KindOneBBCenterPoint, bbox.Center())}, nil
	}

	diagram, err := builder.Build(simplified)
	if err != nil {
		return nil, err
	}
	g, err := voronoi.Build(diagram)
	if err != nil {
		return nil, err
	}
	if len(g.Nodes) == 0 {
		return nil, nil
	}
	start := startNode(g)
	path := pathsearch.Longest(g, start)

	if path.Length < config.MaxLengthForOneSupportPoint {
		pos, ok := pathsearch.CreateMiddlePathPoint(g, path)
		if !ok {
			return nil, nil
		}
		return []*support.IslandPoint{support.NewFrozenPoint(support.KindOneCenterPoint, g.Point(pos))}, nil
	}

	if pathsearch.MaxWidthAlong(g, path) < config.ThinMaxWidth && path.Length < config.MaxLengthForTwoSupportPoints {
		return twoPointResult(g, path, config, support.KindTwoPoints), nil
	}

	points := generalCase(simplified, g, start, ops, config)
	if len(points) <= 2 {
		return twoPointResult(g, path, config, support.KindTwoPointsBackup), nil
	}
	return points, nil
}

func twoPointResult(g *voronoi.Graph, path pathsearch.Path, config support.SampleConfig, kind support.PointKind) []*support.IslandPoint {
	maxFromEnd := config.MaximalDistanceFromOutline
	if ratioBound := path.Length * config.MaxLengthRatioForTwoSupportPoints; ratioBound < maxFromEnd {
		maxFromEnd = ratioBound
	}
	p1, p2 := support.TwoPointPositions(g, path, config.HeadRadius, maxFromEnd)
	return []*support.IslandPoint{
		support.NewFrozenPoint(kind, g.Point(p1)),
		support.NewFrozenPoint(kind, g.Point(p2)),
	}
}

// simplifyIsland reduces island's vertex count within tolerance. An
// island that simplifies away to nothing is degenerate: ok is false, and
// the caller returns an empty support set rather than falling back to
// sampling the original, un-simplified island.
func simplifyIsland(island geom.ExPolygon, ops geom.BooleanOps, tolerance float64) (geom.ExPolygon, bool) {
	results := ops.Simplify(island, tolerance)
	return geom.LargestByArea(results)
}

func startNode(g *voronoi.Graph) voronoi.NodeIndex {
	if len(g.ContourEntries) > 0 {
		return g.ContourEntries[0]
	}
	return voronoi.NodeIndex(0)
}

// generalCase runs part separation, samples each resulting part, and
// relaxes the combined point set against the island.
func generalCase(island geom.ExPolygon, g *voronoi.Graph, start voronoi.NodeIndex, ops geom.BooleanOps, config support.SampleConfig) []*support.IslandPoint {
	set := partition.Classify(g, start, partition.Thresholds{ThickMinWidth: config.ThickMinWidth, ThinMaxWidth: config.ThinMaxWidth})
	partition.Resolve(set, config.MinPartLength)

	var points []*support.IslandPoint
	for _, part := range set.Parts {
		switch part.Type {
		case partition.Thin:
			points = append(points, SampleThin(g, part, config.ThinMaxDistance)...)
		case partition.Thick:
			points = append(points, SampleThick(island, g, part, ops, config.MinimalDistanceFromOutline, config.ThickOutlineMaxDistance, config.ThickInnerMaxDistance, config.MaxAlignDistance)...)
		}
	}

	align.Relax(points, island, ops, config.MaxCellRadius(), config.MinimalMove, config.CountIteration)
	return points
}
