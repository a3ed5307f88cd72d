package fir

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-acoustics/internal/testutil"
)

func TestImpulseReturnsTaps(t *testing.T) {
	taps := []float64{0.25, 0.5, 0.25}
	f := New(taps)

	out := testutil.Impulse(5, 0)
	f.ProcessBlock(out)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0.25, 0.5, 0.25, 0, 0}, 0)

	if f.Order() != 2 {
		t.Fatalf("Order() = %d, want 2", f.Order())
	}
}

func TestStreamingMatchesConvolve(t *testing.T) {
	taps := testutil.DeterministicNoise(1, 1, 37)
	x := testutil.DeterministicNoise(2, 1, 300)

	f := New(taps)
	stream := make([]float64, len(x))
	f.ProcessBlockTo(stream[:150], x[:150])
	f.ProcessBlockTo(stream[150:], x[150:])

	fast, err := Convolve(x, taps)
	if err != nil {
		t.Fatalf("Convolve: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, fast, stream, 1e-12)

	applied, err := New(taps).Apply(x)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, applied, stream, 1e-12)
}

func TestResetClearsHistory(t *testing.T) {
	f := New([]float64{1, 1})
	f.ProcessSample(5)
	f.Reset()

	if y := f.ProcessSample(1); y != 1 {
		t.Fatalf("after Reset got %v, want 1", y)
	}
}

func TestResponse(t *testing.T) {
	f := New([]float64{0.5, 0.5})

	if db := f.MagnitudeDB(0, 48000); math.Abs(db) > 1e-12 {
		t.Fatalf("DC gain %v dB, want 0", db)
	}

	if !math.IsInf(f.MagnitudeDB(24000, 48000), -1) && f.MagnitudeDB(24000, 48000) > -200 {
		t.Fatalf("Nyquist gain %v dB, want a null", f.MagnitudeDB(24000, 48000))
	}

	taps := f.Taps()
	taps[0] = 9
	if f.Taps()[0] != 0.5 {
		t.Fatal("Taps() must return a copy")
	}
}

func TestConvolveEmpty(t *testing.T) {
	y, err := Convolve([]float64{1, 2}, nil)
	if err != nil || len(y) != 2 || y[0] != 0 {
		t.Fatalf("Convolve with no taps = %v, %v", y, err)
	}
}
