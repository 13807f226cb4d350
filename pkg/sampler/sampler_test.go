package sampler

import (
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/partition"
	"github.com/chazu/slasupport/pkg/voronoi"
)

func segSite(dist float64, idx int) voronoi.Site {
	line := geom.Ln(geom.Pt(-10000, geom.Coord(-dist)), geom.Pt(10000, geom.Coord(-dist)))
	return voronoi.Site{Kind: voronoi.SiteSegment, Line: line, LineIndex: idx}
}

// straightThinIsland builds a single edge a--b, constant width 4 (well
// below any thin_max_width used here), as a minimal single-part fixture.
func straightThinIsland() (*voronoi.Graph, *partition.Part) {
	a := geom.Pt(0, 0)
	b := geom.Pt(1000, 0)
	site := segSite(2, 0)
	fwd := voronoi.DiagramEdge{Start: a, End: b, Twin: 1, SiteLeft: site, SiteRight: site}
	bwd := voronoi.DiagramEdge{Start: b, End: a, Twin: 0, SiteLeft: site, SiteRight: site}
	g, err := voronoi.Build(voronoi.Diagram{Edges: []voronoi.DiagramEdge{fwd, bwd}})
	if err != nil {
		panic(err)
	}
	set := partition.Classify(g, 0, partition.Thresholds{ThickMinWidth: 10, ThinMaxWidth: 30})
	return g, set.Parts[0]
}

func TestSampleThinPlacesPointsAlongSkeleton(t *testing.T) {
	g, part := straightThinIsland()
	if part.Type != partition.Thin {
		t.Fatalf("expected a thin part, got %v", part.Type)
	}
	points := SampleThin(g, part, 300)
	if len(points) == 0 {
		t.Fatalf("expected at least one sample point")
	}
	for _, p := range points {
		pos := p.Position()
		if pos.X < 0 || pos.X > 1000 {
			t.Fatalf("sample point %v out of bounds", pos)
		}
	}
}

func TestFlattenIslandProducesConsistentNext(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(1000, 0), geom.Pt(1000, 1000), geom.Pt(0, 1000),
	})
	island := geom.NewExPolygon(square, nil)
	fl := flattenIsland(island)
	if len(fl.lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(fl.lines))
	}
	for i, n := range fl.next {
		want := (i + 1) % 4
		if n != want {
			t.Fatalf("next[%d] = %d, want %d", i, n, want)
		}
	}
}

func TestSampleInnerStaysInsidePolygon(t *testing.T) {
	square := geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(5000, 0), geom.Pt(5000, 5000), geom.Pt(0, 5000),
	})
	inset := geom.NewExPolygon(square, nil)
	points := SampleInner(&inset, 1000)
	if len(points) == 0 {
		t.Fatalf("expected interior points for a 5mm square at 1mm spacing")
	}
	for _, p := range points {
		if !inset.Contains(p.Position()) {
			t.Fatalf("inner point %v fell outside the polygon", p.Position())
		}
	}
}
