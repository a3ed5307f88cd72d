package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-acoustics/internal/testutil"
)

// onePole is y[n] = x[n] + 0.5*y[n-1].
var onePole = Coefficients{B0: 1, A1: -0.5}

func TestSectionImpulse(t *testing.T) {
	s := NewSection(onePole)

	want := []float64{1, 0.5, 0.25, 0.125, 0.0625}
	testutil.RequireSliceNearlyEqual(t, s.ImpulseResponse(5), want, 1e-15)
}

func TestProcessSampleMatchesBlock(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1}
	in := testutil.DeterministicNoise(5, 1, 256)

	a := NewSection(c)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = a.ProcessSample(x)
	}

	b := NewSection(c)
	got := append([]float64(nil), in...)
	b.ProcessBlock(got[:100])
	b.ProcessBlock(got[100:])
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	d := NewSection(c)
	dst := make([]float64, len(in))
	d.ProcessBlockTo(dst, in)
	testutil.RequireSliceNearlyEqual(t, dst, want, 1e-15)

	if a.State() != b.State() {
		t.Fatalf("state mismatch: %v vs %v", a.State(), b.State())
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := NewSection(onePole)
	s.ProcessSample(1)

	saved := s.State()
	next := s.ProcessSample(0)

	s.SetState(saved)
	if got := s.ProcessSample(0); got != next {
		t.Fatalf("after SetState got %v, want %v", got, next)
	}

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}
}

func TestSOSConversion(t *testing.T) {
	c, err := FromSOS([6]float64{2, 4, 2, 2, -1, 0.5})
	if err != nil {
		t.Fatalf("FromSOS: %v", err)
	}

	want := Coefficients{B0: 1, B1: 2, B2: 1, A1: -0.5, A2: 0.25}
	if c != want {
		t.Fatalf("FromSOS = %+v, want %+v", c, want)
	}

	if got := c.SOS(); got != [6]float64{1, 2, 1, 1, -0.5, 0.25} {
		t.Fatalf("SOS() = %v", got)
	}

	if _, err := FromSOS([6]float64{1, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error for a0 = 0")
	}

	if _, err := FromSOSMatrix([][6]float64{{1, 0, 0, 1, 0, 0}, {1, 0, 0, 0, 0, 0}}); err == nil {
		t.Fatal("expected error from second row")
	}
}

func TestExtendSections(t *testing.T) {
	in := []Coefficients{onePole}

	out := ExtendSections(in, 3)
	if len(out) != 3 || out[0] != onePole || !out[1].IsPassthrough() || !out[2].IsPassthrough() {
		t.Fatalf("ExtendSections = %+v", out)
	}

	if got := ExtendSections(out, 2); len(got) != 3 {
		t.Fatalf("ExtendSections must not truncate, got %d sections", len(got))
	}

	if got := SOSMatrix(out)[1]; got != [6]float64{1, 0, 0, 1, 0, 0} {
		t.Fatalf("identity row = %v", got)
	}
}

func TestPolesAndStability(t *testing.T) {
	c := Coefficients{B0: 1, A1: 0, A2: 0.25}

	for _, p := range c.Poles() {
		if math.Abs(math.Hypot(real(p), imag(p))-0.5) > 1e-12 {
			t.Fatalf("pole %v, want radius 0.5", p)
		}
	}

	if !c.IsStable() {
		t.Fatal("expected stable section")
	}

	if (&Coefficients{B0: 1, A1: -2, A2: 1}).IsStable() {
		t.Fatal("double pole at z=1 reported stable")
	}
}
