package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// Close reports whether got and want agree within atol + rtol*|want|,
// the same criterion numpy.allclose uses.
func Close(got, want, rtol, atol float64) bool {
	if math.IsNaN(got) || math.IsNaN(want) {
		return false
	}

	if math.IsInf(want, 0) {
		return got == want
	}

	return math.Abs(got-want) <= atol+rtol*math.Abs(want)
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	RequireAllClose(t, got, want, 0, eps)
}

// RequireAllClose fails t unless every element satisfies Close.
func RequireAllClose(t *testing.T, got, want []float64, rtol, atol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if !Close(got[i], want[i], rtol, atol) {
			t.Fatalf("index %d: got %v, want %v (rtol %g, atol %g)", i, got[i], want[i], rtol, atol)
		}
	}
}

// RequireComplexNearlyEqual compares complex slices element-wise against an
// absolute tolerance on the modulus of the difference.
func RequireComplexNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (|diff| %g > eps %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference. Slices of
// different length compare as +Inf.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	worst := 0.0
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}

	return worst
}
