package sampler

import (
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
	"github.com/chazu/slasupport/pkg/voronoi"
)

type fakeBuilder struct {
	diagram voronoi.Diagram
}

func (f fakeBuilder) Build(geom.ExPolygon) (voronoi.Diagram, error) {
	return f.diagram, nil
}

func rectangle(w, h geom.Coord) geom.ExPolygon {
	return geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h),
	}), nil)
}

// chainEdge builds a one-edge diagram with constant width 2*dist and
// length L, mirroring the pathsearch fixture style.
func chainEdge(length geom.Coord, dist float64) voronoi.Diagram {
	a, b := geom.Pt(0, 0), geom.Pt(length, 0)
	site := segSite(dist, 0)
	fwd := voronoi.DiagramEdge{Start: a, End: b, Twin: 1, SiteLeft: site, SiteRight: site}
	bwd := voronoi.DiagramEdge{Start: b, End: a, Twin: 0, SiteLeft: site, SiteRight: site}
	return voronoi.Diagram{Edges: []voronoi.DiagramEdge{fwd, bwd}}
}

func TestSampleIslandMicroIslandShortCircuits(t *testing.T) {
	island := rectangle(100, 100)
	cfg := support.NewSampleConfig(support.WithHeadRadius(200))
	points, err := SampleIsland(island, fakeBuilder{}, geom.ConvexApproxOps{}, cfg)
	if err != nil {
		t.Fatalf("SampleIsland: %v", err)
	}
	if len(points) != 1 || points[0].Kind() != support.KindOneBBCenterPoint {
		t.Fatalf("expected a single one_bb_center_point, got %+v", points)
	}
}

func TestSampleIslandSmallIslandOnePoint(t *testing.T) {
	island := rectangle(1000, 1000)
	builder := fakeBuilder{diagram: chainEdge(200, 5)}
	cfg := support.NewSampleConfig(
		support.WithHeadRadius(10),
		support.WithMaxLengthForOneSupportPoint(300),
	)
	points, err := SampleIsland(island, builder, geom.ConvexApproxOps{}, cfg)
	if err != nil {
		t.Fatalf("SampleIsland: %v", err)
	}
	if len(points) != 1 || points[0].Kind() != support.KindOneCenterPoint {
		t.Fatalf("expected a single one_center_point, got %+v", points)
	}
}

func TestSampleIslandElongatedThinTwoPoints(t *testing.T) {
	island := rectangle(1000, 1000)
	builder := fakeBuilder{diagram: chainEdge(600, 5)}
	cfg := support.NewSampleConfig(
		support.WithHeadRadius(10),
		support.WithThickMinWidth(50),
		support.WithThinMaxWidth(100),
		support.WithMaxLengthForOneSupportPoint(100),
		support.WithMaxLengthForTwoSupportPoints(1000),
		support.WithMaximalDistanceFromOutline(4000),
		support.WithMaxLengthRatioForTwoSupportPoints(1),
	)
	points, err := SampleIsland(island, builder, geom.ConvexApproxOps{}, cfg)
	if err != nil {
		t.Fatalf("SampleIsland: %v", err)
	}
	if len(points) != 2 || points[0].Kind() != support.KindTwoPoints {
		t.Fatalf("expected two two_points, got %+v", points)
	}
}

// alwaysEmptySimplify wraps ConvexApproxOps but reports every
// simplification as degenerate, to exercise the empty-after-
// simplification path without relying on Douglas-Peucker ever actually
// collapsing a polygon below 3 points.
type alwaysEmptySimplify struct {
	geom.ConvexApproxOps
}

func (alwaysEmptySimplify) Simplify(geom.ExPolygon, float64) []geom.ExPolygon { return nil }

func TestSampleIslandEmptyAfterSimplificationReturnsNoPoints(t *testing.T) {
	island := rectangle(1000, 1000)
	cfg := support.NewSampleConfig()
	points, err := SampleIsland(island, fakeBuilder{}, alwaysEmptySimplify{}, cfg)
	if err != nil {
		t.Fatalf("SampleIsland: %v", err)
	}
	if points != nil {
		t.Fatalf("expected a nil support set for a degenerate island, got %+v", points)
	}
}

func TestSampleIslandInvalidConfigReturnsError(t *testing.T) {
	island := rectangle(1000, 1000)
	cfg := support.NewSampleConfig(support.WithThickMinWidth(600), support.WithThinMaxWidth(600))
	if _, err := SampleIsland(island, fakeBuilder{}, geom.ConvexApproxOps{}, cfg); err == nil {
		t.Fatal("expected an error for thick_min_width >= thin_max_width")
	}
}

func TestSampleIslandGeneralCaseRuns(t *testing.T) {
	island := rectangle(1000, 1000)
	builder := fakeBuilder{diagram: chainEdge(800, 5)}
	cfg := support.NewSampleConfig(
		support.WithHeadRadius(5),
		support.WithThickMinWidth(1),
		support.WithThinMaxWidth(2),
		support.WithMaxLengthForOneSupportPoint(10),
		support.WithMaxLengthForTwoSupportPoints(10),
	)
	points, err := SampleIsland(island, builder, geom.ConvexApproxOps{}, cfg)
	if err != nil {
		t.Fatalf("SampleIsland: %v", err)
	}
	if len(points) == 0 {
		t.Fatalf("expected the general case to produce at least the two-point backup")
	}
}
