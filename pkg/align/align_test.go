package align

import (
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/chazu/slasupport/pkg/support"
)

func bigSquare() geom.ExPolygon {
	return geom.NewExPolygon(geom.NewPolygon([]geom.Point{
		geom.Pt(0, 0), geom.Pt(10000, 0), geom.Pt(10000, 10000), geom.Pt(0, 10000),
	}), nil)
}

func TestRelaxSpreadsClusteredPoints(t *testing.T) {
	island := bigSquare()
	ops := geom.ConvexApproxOps{}

	a := support.NewInnerPoint(support.KindThickPartInner, &island, geom.Pt(4000, 5000))
	b := support.NewInnerPoint(support.KindThickPartInner, &island, geom.Pt(4100, 5000))
	points := []*support.IslandPoint{a, b}

	iters := Relax(points, island, ops, 5000, 1, 20)
	if iters == 0 {
		t.Fatalf("expected at least one relaxation iteration")
	}

	d := a.Position().DistanceTo(b.Position())
	if d < 100 {
		t.Fatalf("expected points to spread apart, distance stayed at %v", d)
	}
}

func TestRelaxSkipsSinglePoint(t *testing.T) {
	island := bigSquare()
	ops := geom.ConvexApproxOps{}
	a := support.NewInnerPoint(support.KindThickPartInner, &island, geom.Pt(5000, 5000))
	if got := Relax([]*support.IslandPoint{a}, island, ops, 5000, 1, 20); got != 0 {
		t.Fatalf("expected 0 iterations for a single point, got %d", got)
	}
}

func TestRelaxSkipsWhenNothingMovable(t *testing.T) {
	island := bigSquare()
	ops := geom.ConvexApproxOps{}
	a := support.NewFrozenPoint(support.KindOneCenterPoint, geom.Pt(1000, 1000))
	b := support.NewFrozenPoint(support.KindOneCenterPoint, geom.Pt(2000, 2000))
	if got := Relax([]*support.IslandPoint{a, b}, island, ops, 5000, 1, 20); got != 0 {
		t.Fatalf("expected 0 iterations when no point is movable, got %d", got)
	}
}
