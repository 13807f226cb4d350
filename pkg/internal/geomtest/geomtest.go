// Package geomtest provides small tolerance-based assertion helpers shared
// by the module's test suites, mirroring the epsilon helpers the original
// C++ test suite (tests/sla_print) rolls by hand per test file.
package geomtest

import "math"

// AlmostEqual reports whether a and b differ by no more than tol.
func AlmostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// WithinTolerance reports whether got is within tol of want, in absolute
// terms — used for micrometer-scale coordinate comparisons.
func WithinTolerance(got, want int64, tol int64) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tol
}
