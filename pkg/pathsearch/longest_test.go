package pathsearch

import (
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/voronoi"
)

// chainDiagram builds a 3-node path: a(0,0) -- b(100,0) -- c(300,0), each
// edge a simple segment-segment linear pair at constant width 10.
func chainDiagram() voronoi.Diagram {
	line := geom.Ln(geom.Pt(0, -5), geom.Pt(1000, -5))
	site := voronoi.Site{Kind: voronoi.SiteSegment, Line: line, LineIndex: 0}

	a := geom.Pt(0, 0)
	b := geom.Pt(100, 0)
	c := geom.Pt(300, 0)

	e1fwd := voronoi.DiagramEdge{Start: a, End: b, Twin: 1, SiteLeft: site, SiteRight: site}
	e1bwd := voronoi.DiagramEdge{Start: b, End: a, Twin: 0, SiteLeft: site, SiteRight: site}
	e2fwd := voronoi.DiagramEdge{Start: b, End: c, Twin: 3, SiteLeft: site, SiteRight: site}
	e2bwd := voronoi.DiagramEdge{Start: c, End: b, Twin: 2, SiteLeft: site, SiteRight: site}

	return voronoi.Diagram{Edges: []voronoi.DiagramEdge{e1fwd, e1bwd, e2fwd, e2bwd}}
}

func TestLongestPathSimpleChain(t *testing.T) {
	g, err := voronoi.Build(chainDiagram())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	start := voronoi.NodeIndex(0) // node at a
	path := Longest(g, start)
	if path.Length != 300 {
		t.Fatalf("length = %v, want 300", path.Length)
	}
	if len(path.Edges) != 2 {
		t.Fatalf("expected 2 edges on the path, got %d", len(path.Edges))
	}
}

func TestCreateMiddlePathPoint(t *testing.T) {
	g, _ := voronoi.Build(chainDiagram())
	path := Longest(g, voronoi.NodeIndex(0))
	pos, ok := CreateMiddlePathPoint(g, path)
	if !ok {
		t.Fatalf("expected a middle point")
	}
	p := g.Point(pos)
	if p.X != 150 {
		t.Fatalf("middle point x = %v, want 150", p.X)
	}
}

func TestPositionAtDistanceClampsToEnds(t *testing.T) {
	g, _ := voronoi.Build(chainDiagram())
	path := Longest(g, voronoi.NodeIndex(0))
	pos, ok := PositionAtDistance(g, path, 10000)
	if !ok {
		t.Fatalf("expected a position")
	}
	if pos.Ratio != 1 {
		t.Fatalf("ratio = %v, want 1 (clamped to path end)", pos.Ratio)
	}
}
