package voronoi

import (
	"fmt"

	"github.com/chazu/slasupport/pkg/geom"
)

// DiagramEdge is one half-edge of the externally computed Voronoi
// diagram, already restricted to the region inside the island and
// annotated with its two generating sites. Index fields refer to
// positions within the Diagram that produced this edge.
type DiagramEdge struct {
	Start, End geom.Point
	Twin       int
	SiteLeft   Site
	SiteRight  Site
}

// Diagram is the external collaborator's output: a flat half-edge list
// already filtered to edges lying inside the island.
type Diagram struct {
	Edges []DiagramEdge
}

// DiagramBuilder is the external collaborator itself, assumed to provide
// half-edge adjacency with a per-cell source-line index and
// inside/outside labelling against the island polygon. Island-sampling
// orchestration takes one so production code can plug in a real Voronoi
// library while tests use a hand-built Diagram via a fake implementation.
type DiagramBuilder interface {
	Build(island geom.ExPolygon) (Diagram, error)
}

// Build adapts a Diagram into a Graph, merging coincident vertex
// positions into shared nodes and computing each edge's length and
// min/max width.
func Build(d Diagram) (*Graph, error) {
	g := &Graph{}
	nodeByPos := make(map[geom.Point]NodeIndex)
	getNode := func(p geom.Point) NodeIndex {
		if idx, ok := nodeByPos[p]; ok {
			return idx
		}
		idx := g.addNode(p)
		nodeByPos[p] = idx
		return idx
	}

	visited := make([]bool, len(d.Edges))
	for i, de := range d.Edges {
		if visited[i] {
			continue
		}
		if de.Twin < 0 || de.Twin >= len(d.Edges) {
			return nil, fmt.Errorf("voronoi: edge %d has invalid twin index %d", i, de.Twin)
		}
		twin := d.Edges[de.Twin]
		visited[i] = true
		visited[de.Twin] = true

		from := getNode(de.Start)
		to := getNode(de.End)

		fwd := Edge{
			LeftSourceIndex:  de.SiteLeft.LineIndex,
			RightSourceIndex: de.SiteRight.LineIndex,
			Length:           de.Start.DistanceTo(de.End),
		}
		bwd := Edge{
			LeftSourceIndex:  twin.SiteLeft.LineIndex,
			RightSourceIndex: twin.SiteRight.LineIndex,
			Length:           de.Start.DistanceTo(de.End),
		}

		fillWidths(&fwd, de.SiteLeft, de.SiteRight, de.Start, de.End)
		fillWidths(&bwd, twin.SiteLeft, twin.SiteRight, de.End, de.Start)

		if fwd.MinWidth > fwd.MaxWidth {
			return nil, fmt.Errorf("voronoi: edge %d has min_width %.6f > max_width %.6f", i, fwd.MinWidth, fwd.MaxWidth)
		}

		g.addEdgePair(from, to, fwd, bwd)
	}

	g.ContourEntries = findContourEntries(g)
	return g, nil
}

// fillWidths picks the linear or parabolic width formula based on the
// kinds of the two generating sites.
func fillWidths(e *Edge, left, right Site, start, end geom.Point) {
	switch {
	case left.Kind == SitePoint && right.Kind == SiteSegment:
		makeParabolicEdge(e, left.Point, right.Line, start, end)
	case left.Kind == SiteSegment && right.Kind == SitePoint:
		makeParabolicEdge(e, right.Point, left.Line, start, end)
	default:
		makeLinearEdge(e, left, start, end)
	}
}

// findContourEntries returns the nodes whose single neighbor touches the
// island contour (MinWidth == 0) — the canonical traversal starts.
func findContourEntries(g *Graph) []NodeIndex {
	var entries []NodeIndex
	for i, n := range g.Nodes {
		if len(n.Neighbors) != 1 {
			continue
		}
		if g.Edges[n.Neighbors[0]].MinWidth == 0 {
			entries = append(entries, NodeIndex(i))
		}
	}
	return entries
}
