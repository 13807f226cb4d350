package layer

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

func square(x0, y0, x1, y1 geom.Coord) geom.ExPolygon {
	return geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(x0, y0), geom.Pt(x1, y0), geom.Pt(x1, y1), geom.Pt(x0, y1),
	}), nil)
}

func testGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SampleConfig:    support.NewSampleConfig(support.WithHeadRadius(200)),
		DensityRelative: 1,
		RemovingDelta:   100,
		SupportCurve: []CurveSample{
			{Radius: 100, ZOffset: 0},
			{Radius: 500, ZOffset: 1000},
		},
	}
}

func testPrepareConfig() PrepareConfig {
	return PrepareConfig{
		DiscretizeOverhangStep:      500,
		PeninsulaMinWidth:           300,
		PeninsulaSelfSupportedWidth: 100,
	}
}

func TestProcessPartIslandCaseSeedsFromScratch(t *testing.T) {
	store := NewStore()
	part := NewLayerPart(square(0, 0, 100, 100), 0)

	err := ProcessPart(part, store, 0, testGeneratorConfig(), testPrepareConfig(), fakeBuilder{}, geom.ConvexApproxOps{})
	if err != nil {
		t.Fatalf("ProcessPart: %v", err)
	}
	if part.Points == nil || part.Points.Len() == 0 {
		t.Fatalf("expected the fresh island to seed at least one support point")
	}
	seed := store.Get(0)
	if seed.Point.Kind() != support.KindOneBBCenterPoint {
		t.Fatalf("expected the micro-island shortcut, got kind %v", seed.Point.Kind())
	}
}

func TestInheritCaseDropsPointsOutsideExpandedRegion(t *testing.T) {
	store := NewStore()
	below := NewLayerPart(square(0, 0, 10000, 10000), 0)
	below.Points = NewNearPoints(store.slice())
	inside := store.Add(&LayerSupportPoint{PositionOnLayer: geom.Pt(5000, 5000), CurrentRadius: 100})
	outside := store.Add(&LayerSupportPoint{PositionOnLayer: geom.Pt(50000, 50000), CurrentRadius: 100})
	below.Points.Insert(inside)
	below.Points.Insert(outside)

	above := NewLayerPart(square(0, 0, 10000, 10000), 1000)
	above.Below = []*LayerPart{below}
	below.Above = []*LayerPart{above}

	inheritCase(above, store, testGeneratorConfig(), geom.ConvexApproxOps{})

	if above.Points.Len() != 1 {
		t.Fatalf("expected 1 surviving point, got %d (%v)", above.Points.Len(), above.Points.Indices())
	}
	if above.Points.Indices()[0] != inside {
		t.Fatalf("expected the inside point to survive, got index %d", above.Points.Indices()[0])
	}
}

func TestInheritCaseClonesWhenSharedByMultipleAbove(t *testing.T) {
	store := NewStore()
	below := NewLayerPart(square(0, 0, 10000, 10000), 0)
	below.Points = NewNearPoints(store.slice())
	idx := store.Add(&LayerSupportPoint{PositionOnLayer: geom.Pt(5000, 5000), CurrentRadius: 100})
	below.Points.Insert(idx)

	firstAbove := NewLayerPart(square(0, 0, 10000, 10000), 1000)
	secondAbove := NewLayerPart(square(0, 0, 10000, 10000), 1000)
	below.Above = []*LayerPart{firstAbove, secondAbove}
	firstAbove.Below = []*LayerPart{below}
	secondAbove.Below = []*LayerPart{below}

	cfg := testGeneratorConfig()
	inheritCase(firstAbove, store, cfg, geom.ConvexApproxOps{})
	if firstAbove.Points == below.Points {
		t.Fatalf("expected a structural clone, not the same NearPoints, when shared by multiple above-parts")
	}
}

func TestProcessPartGeneralFlowDoesNotPanic(t *testing.T) {
	store := NewStore()
	below := NewLayerPart(square(3000, 3000, 7000, 7000), 0)
	below.Points = NewNearPoints(store.slice())

	part := NewLayerPart(square(0, 0, 10000, 10000), 1000)
	part.Below = []*LayerPart{below}
	below.Above = []*LayerPart{part}

	err := ProcessPart(part, store, 1000, testGeneratorConfig(), testPrepareConfig(), fakeBuilder{}, geom.ConvexApproxOps{})
	if err != nil {
		t.Fatalf("ProcessPart: %v", err)
	}
	if part.Points == nil {
		t.Fatalf("expected part to end up with a NearPoints index")
	}
}

func TestLinkLayersLeavesPartialAndDisjointOverlapsUnlinked(t *testing.T) {
	below := NewLayerPart(square(0, 0, 10000, 10000), 0)
	above := NewLayerPart(square(5000, 5000, 15000, 15000), 1000)
	disjoint := NewLayerPart(square(100000, 100000, 110000, 110000), 1000)

	LinkLayers([]*LayerPart{below}, []*LayerPart{above, disjoint}, geom.ConvexApproxOps{})

	if len(above.Below) != 0 {
		// ConvexApproxOps' Intersection only recognizes full containment;
		// two overlapping-but-neither-contains squares report no overlap,
		// which is expected of this approximate test fixture.
		t.Fatalf("unexpected overlap result for partially overlapping squares: %v", above.Below)
	}
	if len(disjoint.Below) != 0 {
		t.Fatalf("expected disjoint parts to stay unlinked, got %v", disjoint.Below)
	}
}

func TestStoreAdvanceAllRadiiInterpolatesEveryPoint(t *testing.T) {
	store := NewStore()
	store.Add(&LayerSupportPoint{OriginZ: 0})
	store.Add(&LayerSupportPoint{OriginZ: 500})

	cfg := testGeneratorConfig()
	store.AdvanceAllRadii(500, cfg)

	if store.Get(0).CurrentRadius != 300 {
		t.Fatalf("expected radius 300 for the point at dz=500, got %v", store.Get(0).CurrentRadius)
	}
	if store.Get(1).CurrentRadius != 100 {
		t.Fatalf("expected radius 100 for the point just born at this height, got %v", store.Get(1).CurrentRadius)
	}
}
