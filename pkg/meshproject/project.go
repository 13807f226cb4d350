package meshproject

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/slasupport/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// gradientEpsilon is the central-difference step used to estimate the
// surface normal at a traced point.
const gradientEpsilon = 1e-3

// maxTraceSteps bounds sphere tracing so a point that never converges
// (e.g. it started outside the solid's bounding box) fails fast instead
// of looping.
const maxTraceSteps = 256

// cancelPollInterval is how often, in trace steps, the cancel callback
// is polled.
const cancelPollInterval = 8

// ErrCanceled is returned when cancel reports true mid-trace.
var ErrCanceled = errors.New("meshproject: canceled")

// CancelFunc is polled periodically during sphere tracing; returning
// true aborts the trace for the point in progress.
type CancelFunc func() bool

// Projected is one 2D support point's resting place on the solid's
// actual surface, plus the outward normal it landed on.
type Projected struct {
	At     [3]float64
	Normal [3]float64
}

// MoveOnMeshSurface sphere-traces point (at the given starting z, over
// solid) against the estimated surface normal, stepping by the SDF
// distance at each step, until it converges onto the zero level set
// within tolerance, or fails after maxTraceSteps.
//
// allowedMove bounds how far the trace may relocate the point from its
// starting position; a point whose surface lies further away than that
// is reported as a failed projection rather than silently moved however
// far it takes to converge. cancel, if non-nil, is polled every
// cancelPollInterval steps and aborts the trace with ErrCanceled.
func MoveOnMeshSurface(solid sdf.SDF3, point geom.Point, startZ, tolerance, allowedMove float64, cancel CancelFunc) (Projected, error) {
	px, py := point.F64()
	origin := v3.Vec{X: px, Y: py, Z: startZ}
	p := origin

	for step := 0; step < maxTraceSteps; step++ {
		if cancel != nil && step%cancelPollInterval == 0 && cancel() {
			return Projected{}, ErrCanceled
		}

		dist := solid.Evaluate(p)
		if math.Abs(dist) <= tolerance {
			if moved := displacement(origin, p); moved > allowedMove {
				return Projected{}, fmt.Errorf("meshproject: point (%.3f,%.3f) would move %.3f, exceeding allowed_move %.3f", px, py, moved, allowedMove)
			}
			n := surfaceNormal(solid, p)
			return Projected{At: [3]float64{p.X, p.Y, p.Z}, Normal: [3]float64{n.X, n.Y, n.Z}}, nil
		}
		n := surfaceNormal(solid, p)
		p = v3.Vec{X: p.X - n.X*dist, Y: p.Y - n.Y*dist, Z: p.Z - n.Z*dist}
	}
	return Projected{}, fmt.Errorf("meshproject: point (%.3f,%.3f) did not converge onto the surface within %d steps", px, py, maxTraceSteps)
}

// displacement returns the Euclidean distance the trace has moved a
// point from its starting position.
func displacement(a, b v3.Vec) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// surfaceNormal estimates the SDF gradient at p by central differences
// and returns it normalized, the usual sphere-tracing surface normal.
func surfaceNormal(solid sdf.SDF3, p v3.Vec) v3.Vec {
	dx := solid.Evaluate(v3.Vec{X: p.X + gradientEpsilon, Y: p.Y, Z: p.Z}) -
		solid.Evaluate(v3.Vec{X: p.X - gradientEpsilon, Y: p.Y, Z: p.Z})
	dy := solid.Evaluate(v3.Vec{X: p.X, Y: p.Y + gradientEpsilon, Z: p.Z}) -
		solid.Evaluate(v3.Vec{X: p.X, Y: p.Y - gradientEpsilon, Z: p.Z})
	dz := solid.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z + gradientEpsilon}) -
		solid.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z - gradientEpsilon})
	n := v3.Vec{X: dx, Y: dy, Z: dz}
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length == 0 {
		return v3.Vec{Z: 1}
	}
	return v3.Vec{X: n.X / length, Y: n.Y / length, Z: n.Z / length}
}

// ProjectAll projects every point at its own starting z onto solid,
// skipping (and reporting) any that fail to converge or exceed
// allowedMove, rather than aborting the whole batch. A cancellation
// stops the batch immediately: the caller gets back
// whatever converted so far, alongside ErrCanceled among errs.
func ProjectAll(solid sdf.SDF3, points []geom.Point, z, tolerance, allowedMove float64, cancel CancelFunc) ([]Projected, []error) {
	out := make([]Projected, 0, len(points))
	var errs []error
	for _, p := range points {
		proj, err := MoveOnMeshSurface(solid, p, z, tolerance, allowedMove, cancel)
		if err != nil {
			errs = append(errs, err)
			if errors.Is(err, ErrCanceled) {
				break
			}
			continue
		}
		out = append(out, proj)
	}
	return out, errs
}
