package core

import (
	"math"
	"testing"
)

func TestClampInt(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi int
		expected      int
	}{
		{name: "inside", value: 5, lo: 0, hi: 10, expected: 5},
		{name: "below", value: -3, lo: 0, hi: 10, expected: 0},
		{name: "above", value: 12, lo: 0, hi: 10, expected: 10},
		{name: "swapped", value: 12, lo: 10, hi: 0, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampInt(tt.value, tt.lo, tt.hi); got != tt.expected {
				t.Fatalf("ClampInt() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}

	if !SlicesNearlyEqual([]float64{1, 2}, []float64{1, 2 + 1e-14}, 0) {
		t.Fatal("expected slices to be nearly equal")
	}

	if SlicesNearlyEqual([]float64{1}, []float64{1, 2}, 0) {
		t.Fatal("slices of different length must differ")
	}
}

func TestPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 64, 4096} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}

	for _, n := range []int{0, -4, 3, 100} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}

	if got := NextPowerOfTwo(100); got != 128 {
		t.Errorf("NextPowerOfTwo(100) = %d, want 128", got)
	}
}

func TestDBConversions(t *testing.T) {
	if db := LinearToDB(DBToLinear(-6)); !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}

	if p := LinearPowerToDB(2); !NearlyEqual(p, 3.0103, 1e-4) {
		t.Fatalf("LinearPowerToDB(2) = %v, want ~3.01", p)
	}
}
