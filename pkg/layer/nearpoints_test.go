package layer

import (
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
)

func samplePoints() []*LayerSupportPoint {
	return []*LayerSupportPoint{
		{PositionOnLayer: geom.Pt(0, 0), CurrentRadius: 500},
		{PositionOnLayer: geom.Pt(1000, 0), CurrentRadius: 500},
		{PositionOnLayer: geom.Pt(5000, 5000), CurrentRadius: 500},
	}
}

func TestNearPointsRadiusQueryFindsInRangeOnly(t *testing.T) {
	store := NewStore()
	for _, p := range samplePoints() {
		store.Add(p)
	}
	n := NewNearPoints(store.slice())
	for i := range store.points {
		n.Insert(i)
	}

	hits := n.RadiusQuery(geom.Pt(0, 0), 1500, nil)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits within range, got %d (%v)", len(hits), hits)
	}
	for _, idx := range hits {
		if idx == 2 {
			t.Fatalf("far point should not be in range")
		}
	}
}

func TestNearPointsRemoveDropsMember(t *testing.T) {
	store := NewStore()
	for _, p := range samplePoints() {
		store.Add(p)
	}
	n := NewNearPoints(store.slice())
	n.Insert(0)
	n.Insert(1)
	n.Remove(0)

	if n.Len() != 1 {
		t.Fatalf("expected 1 member after remove, got %d", n.Len())
	}
	hits := n.RadiusQuery(geom.Pt(0, 0), 1500, nil)
	if len(hits) != 1 || hits[0] != 1 {
		t.Fatalf("expected only index 1 to remain, got %v", hits)
	}
}

func TestNearPointsCloneIsIndependent(t *testing.T) {
	store := NewStore()
	for _, p := range samplePoints() {
		store.Add(p)
	}
	n := NewNearPoints(store.slice())
	n.Insert(0)

	clone := n.Clone()
	clone.Insert(1)

	if n.Len() != 1 {
		t.Fatalf("original index should be unaffected by clone mutation, got %d members", n.Len())
	}
	if clone.Len() != 2 {
		t.Fatalf("expected clone to have 2 members, got %d", clone.Len())
	}
}

func TestNearPointsMergeDeduplicates(t *testing.T) {
	store := NewStore()
	for _, p := range samplePoints() {
		store.Add(p)
	}
	a := NewNearPoints(store.slice())
	a.Insert(0)
	a.Insert(1)
	b := NewNearPoints(store.slice())
	b.Insert(1)
	b.Insert(2)

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("expected 3 distinct members after merge, got %d", a.Len())
	}
}

func TestNearPointsRemoveOutsideDropsExterior(t *testing.T) {
	store := NewStore()
	for _, p := range samplePoints() {
		store.Add(p)
	}
	n := NewNearPoints(store.slice())
	for i := range store.points {
		n.Insert(i)
	}

	small := geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(-100, -100), geom.Pt(2000, -100), geom.Pt(2000, 2000), geom.Pt(-100, 2000),
	}), nil)
	n.RemoveOutside(small)

	if n.Len() != 2 {
		t.Fatalf("expected 2 members inside the small square, got %d", n.Len())
	}
	for _, idx := range n.Indices() {
		if idx == 2 {
			t.Fatalf("far point should have been removed")
		}
	}
}

func TestNearPointsGrowingBackingStaysValid(t *testing.T) {
	store := NewStore()
	idx := store.Add(&LayerSupportPoint{PositionOnLayer: geom.Pt(0, 0), CurrentRadius: 500})
	n := NewNearPoints(store.slice())
	n.Insert(idx)

	for i := 0; i < 64; i++ {
		store.Add(&LayerSupportPoint{PositionOnLayer: geom.Pt(geom.Coord(i)*1000, 0), CurrentRadius: 100})
	}

	hits := n.RadiusQuery(geom.Pt(0, 0), 10, nil)
	if len(hits) != 1 || hits[0] != idx {
		t.Fatalf("expected the original index to still resolve after backing growth, got %v", hits)
	}
}

func TestLayerSupportPointCoversRadius(t *testing.T) {
	p := &LayerSupportPoint{PositionOnLayer: geom.Pt(0, 0), CurrentRadius: 1000}
	if !p.Covers(geom.Pt(900, 0)) {
		t.Fatalf("expected point within radius to be covered")
	}
	if p.Covers(geom.Pt(1100, 0)) {
		t.Fatalf("expected point outside radius to not be covered")
	}
}

func TestAdvanceRadiusInterpolatesAndNeverShrinks(t *testing.T) {
	cfg := GeneratorConfig{
		DensityRelative: 1,
		SupportCurve: []CurveSample{
			{Radius: 100, ZOffset: 0},
			{Radius: 500, ZOffset: 1000},
		},
	}
	p := &LayerSupportPoint{OriginZ: 0}
	p.AdvanceRadius(500, cfg)
	if p.CurrentRadius != 300 {
		t.Fatalf("expected midpoint radius 300, got %v", p.CurrentRadius)
	}

	p.AdvanceRadius(250, cfg)
	if p.CurrentRadius != 300 {
		t.Fatalf("expected current_radius to never shrink, got %v", p.CurrentRadius)
	}
}
