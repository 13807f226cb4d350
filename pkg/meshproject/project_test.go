package meshproject

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// fakeSphere is a minimal sdf.SDF3 good enough to exercise sphere
// tracing without pulling in the library's own primitive constructors.
type fakeSphere struct {
	center v3.Vec
	radius float64
}

func (s fakeSphere) Evaluate(p v3.Vec) float64 {
	dx, dy, dz := p.X-s.center.X, p.Y-s.center.Y, p.Z-s.center.Z
	return math.Sqrt(dx*dx+dy*dy+dz*dz) - s.radius
}

func (s fakeSphere) BoundingBox() sdf.Box3 {
	r := v3.Vec{X: s.radius, Y: s.radius, Z: s.radius}
	min := v3.Vec{X: s.center.X - r.X, Y: s.center.Y - r.Y, Z: s.center.Z - r.Z}
	max := v3.Vec{X: s.center.X + r.X, Y: s.center.Y + r.Y, Z: s.center.Z + r.Z}
	return sdf.Box3{Min: min, Max: max}
}

func TestMoveOnMeshSurfaceConvergesOnSphere(t *testing.T) {
	sphere := fakeSphere{center: v3.Vec{Z: 0}, radius: 1000}
	point := geom.Pt(0, 0)

	projected, err := MoveOnMeshSurface(sphere, point, 5000, 1, 10000, nil)
	if err != nil {
		t.Fatalf("MoveOnMeshSurface: %v", err)
	}

	dist := sphere.Evaluate(v3.Vec{X: projected.At[0], Y: projected.At[1], Z: projected.At[2]})
	if math.Abs(dist) > 1 {
		t.Fatalf("expected the traced point to land within tolerance of the surface, residual distance %v", dist)
	}
	if projected.Normal[2] <= 0 {
		t.Fatalf("expected the outward normal at the top of the sphere to point +Z, got %v", projected.Normal)
	}
}

// fakeConstant is not a valid SDF (a real one always has unit gradient
// magnitude); it models a field sphere tracing can never zero in on, to
// exercise the maxTraceSteps give-up path.
type fakeConstant struct{ value float64 }

func (f fakeConstant) Evaluate(v3.Vec) float64 { return f.value }
func (f fakeConstant) BoundingBox() sdf.Box3   { return sdf.Box3{} }

func TestMoveOnMeshSurfaceFailsWhenFieldNeverZeroes(t *testing.T) {
	point := geom.Pt(0, 0)
	if _, err := MoveOnMeshSurface(fakeConstant{value: 1e9}, point, 0, 1e-9, 1e12, nil); err == nil {
		t.Fatalf("expected a field that never reaches zero to fail to converge")
	}
}

func TestMoveOnMeshSurfaceFailsWhenMoveExceedsAllowedMove(t *testing.T) {
	sphere := fakeSphere{center: v3.Vec{Z: 0}, radius: 1000}
	point := geom.Pt(0, 0)

	if _, err := MoveOnMeshSurface(sphere, point, 5000, 1, 100, nil); err == nil {
		t.Fatalf("expected a 4000-unit trace to exceed a 100-unit allowed_move")
	}
}

func TestMoveOnMeshSurfaceStopsOnCancel(t *testing.T) {
	sphere := fakeSphere{center: v3.Vec{Z: 0}, radius: 1000}
	point := geom.Pt(0, 0)
	canceled := func() bool { return true }

	if _, err := MoveOnMeshSurface(sphere, point, 5000, 1, 10000, canceled); !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestProjectAllSkipsFailures(t *testing.T) {
	sphere := fakeSphere{center: v3.Vec{}, radius: 1000}
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(500, 0)}

	projected, errs := ProjectAll(sphere, points, 5000, 1, 10000, nil)
	if len(projected) != 2 {
		t.Fatalf("expected both points to converge, got %d (errs=%v)", len(projected), errs)
	}
}

func TestProjectAllStopsBatchOnCancel(t *testing.T) {
	sphere := fakeSphere{center: v3.Vec{}, radius: 1000}
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(500, 0), geom.Pt(-500, 0)}
	canceled := func() bool { return true }

	projected, errs := ProjectAll(sphere, points, 5000, 1, 10000, canceled)
	if len(projected) != 0 {
		t.Fatalf("expected no points to converge once canceled, got %d", len(projected))
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrCanceled) {
		t.Fatalf("expected a single ErrCanceled and an early stop, got %v", errs)
	}
}
