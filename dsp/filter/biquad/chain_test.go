package biquad

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-acoustics/internal/testutil"
)

func TestChainMatchesSerialSections(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1},
		{B0: 1, B1: -2, B2: 1, A1: -1.2, A2: 0.5},
	}
	in := testutil.DeterministicNoise(9, 1, 128)

	want := append([]float64(nil), in...)
	for i := range coeffs {
		NewSection(coeffs[i]).ProcessBlock(want)
	}

	for i := range want {
		want[i] *= 0.5
	}

	c := NewChain(coeffs, WithGain(0.5))

	got := make([]float64, len(in))
	c.ProcessBlockTo(got, in)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	c.Reset()
	for i, x := range in {
		if y := c.ProcessSample(x); math.Abs(y-want[i]) > 1e-12 {
			t.Fatalf("sample %d: %v, want %v", i, y, want[i])
		}
	}

	if c.Order() != 4 || c.NumSections() != 2 || c.Gain() != 0.5 {
		t.Fatalf("Order=%d NumSections=%d Gain=%v", c.Order(), c.NumSections(), c.Gain())
	}
}

func TestResponseConsistency(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1}

	for _, f := range []float64{0, 100, 1000, 10000, 24000} {
		h := c.Response(f, 48000)
		m2 := c.MagnitudeSquared(f, 48000)

		if math.Abs(cmplx.Abs(h)*cmplx.Abs(h)-m2) > 1e-12 {
			t.Fatalf("f=%v: |H|^2=%v, MagnitudeSquared=%v", f, cmplx.Abs(h)*cmplx.Abs(h), m2)
		}
	}

	chain := NewChain([]Coefficients{c, c})
	h := chain.Response(1000, 48000)
	want := CascadeResponse([]Coefficients{c, c}, 1000, 48000)

	if cmplx.Abs(h-want) > 1e-15 {
		t.Fatalf("chain response %v, want %v", h, want)
	}

	if db := chain.MagnitudeDB(1000, 48000); math.Abs(db-2*c.MagnitudeDB(1000, 48000)) > 1e-9 {
		t.Fatalf("chain dB %v, want twice section dB", db)
	}
}

func TestChainImpulseResponsePreservesState(t *testing.T) {
	c := NewChain([]Coefficients{onePole, onePole})
	c.ProcessSample(1)
	saved := c.State()

	ir := c.ImpulseResponse(4)
	testutil.RequireSliceNearlyEqual(t, ir, []float64{1, 1, 0.75, 0.5}, 1e-15)

	got := c.State()
	for i := range saved {
		if got[i] != saved[i] {
			t.Fatalf("section %d state changed: %v -> %v", i, saved[i], got[i])
		}
	}

	if n := len(c.Coefficients()); n != 2 {
		t.Fatalf("Coefficients() returned %d sections", n)
	}
}
