package support

import (
	"math"

	"github.com/chazu/slasupport/pkg/pathsearch"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// TwoPointPositions implements the elongated-thin-island placement rule:
// walk the longest path from each end and find the distance at which
// local width first reaches 2*headRadius, clipped to maxDistanceFromEnd
// so a long uniformly-thin island still gets supports near its
// extremities rather than drifting toward the middle.
func TwoPointPositions(g *voronoi.Graph, path pathsearch.Path, headRadius, maxDistanceFromEnd float64) (voronoi.Position, voronoi.Position) {
	target := 2 * headRadius
	d1 := math.Min(widthCrossDistance(g, path, target), maxDistanceFromEnd)
	d2 := math.Min(widthCrossDistanceFromEnd(g, path, target), maxDistanceFromEnd)
	p1, _ := pathsearch.PositionAtDistance(g, path, d1)
	p2, _ := pathsearch.PositionAtDistance(g, path, path.Length-d2)
	return p1, p2
}

// widthCrossDistance returns the distance from the front of path at which
// local width first reaches target, or path.Length if it never does.
func widthCrossDistance(g *voronoi.Graph, path pathsearch.Path, target float64) float64 {
	traveled := 0.0
	for _, e := range path.Edges {
		length := g.Edges[e].Length
		if ratios := g.WidthCrossings(e, target); len(ratios) > 0 {
			return traveled + ratios[0]*length
		}
		traveled += length
	}
	return path.Length
}

// widthCrossDistanceFromEnd is widthCrossDistance walked from the back of
// the path instead, using each edge's twin so the width formula stays
// correctly oriented for the reversed direction of travel.
func widthCrossDistanceFromEnd(g *voronoi.Graph, path pathsearch.Path, target float64) float64 {
	traveled := 0.0
	for i := len(path.Edges) - 1; i >= 0; i-- {
		e := g.Twin(path.Edges[i])
		length := g.Edges[e].Length
		if ratios := g.WidthCrossings(e, target); len(ratios) > 0 {
			return traveled + ratios[0]*length
		}
		traveled += length
	}
	return path.Length
}
