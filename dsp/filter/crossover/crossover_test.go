package crossover

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"github.com/cwbudde/algo-acoustics/internal/testutil"
)

func mustCrossover(t *testing.T, freq float64, order int, fs float64) *Crossover {
	t.Helper()

	xo, err := New(freq, order, fs)
	if err != nil {
		t.Fatalf("New(%g, %d, %g): %v", freq, order, fs, err)
	}

	return xo
}

func TestNew(t *testing.T) {
	tests := []struct {
		freq  float64
		order int
		fs    float64
		err   error
	}{
		{1000, 2, 48000, nil},
		{500, 6, 44100, nil},
		{100, 12, 96000, nil},
		{1000, 3, 48000, ErrInvalidOrder},
		{1000, 0, 48000, ErrInvalidOrder},
		{0, 4, 48000, ErrInvalidFrequency},
		{24000, 4, 48000, ErrInvalidFrequency},
		{1000, 4, -1, ErrInvalidFrequency},
	}
	for _, tt := range tests {
		xo, err := New(tt.freq, tt.order, tt.fs)
		if !errors.Is(err, tt.err) {
			t.Errorf("New(%g, %d, %g) error = %v, want %v", tt.freq, tt.order, tt.fs, err, tt.err)
			continue
		}

		if err != nil {
			continue
		}

		if xo.Freq() != tt.freq || xo.Order() != tt.order || xo.SampleRate() != tt.fs {
			t.Errorf("accessors = (%g, %d, %g)", xo.Freq(), xo.Order(), xo.SampleRate())
		}

		// each Butterworth section appears twice
		if got, want := xo.LP().NumSections(), 2*((tt.order+2)/4); got != want {
			t.Errorf("LR%d: %d lowpass sections, want %d", tt.order, got, want)
		}
	}
}

func TestCrossover_MinusSixAtCrossover(t *testing.T) {
	for _, order := range []int{2, 4, 8} {
		xo := mustCrossover(t, 2000, order, 48000)

		lo, hi := xo.Response(2000)
		for name, h := range map[string]complex128{"lo": lo, "hi": hi} {
			if db := 20 * math.Log10(cmplx.Abs(h)); math.Abs(db+6.0206) > 0.01 {
				t.Errorf("LR%d %s at crossover: %.3f dB, want -6.02", order, name, db)
			}
		}
	}
}

func TestCrossover_SumIsAllpass(t *testing.T) {
	for _, order := range []int{2, 4, 8, 12} {
		xo := mustCrossover(t, 1000, order, 48000)

		for f := 20.0; f < 24000; f *= 1.25 {
			lo, hi := xo.Response(f)
			if db := 20 * math.Log10(cmplx.Abs(lo+hi)); math.Abs(db) > 0.05 {
				t.Fatalf("LR%d at %.0f Hz: |lo+hi| = %.4f dB", order, f, db)
			}
		}

		var y []float64
		for _, x := range testutil.Impulse(4096, 0) {
			lo, hi := xo.ProcessSample(x)
			y = append(y, lo+hi)
		}

		if e := testutil.Energy(y); math.Abs(e-1) > 0.001 {
			t.Errorf("LR%d: summed impulse energy %.5f, want 1", order, e)
		}
	}
}

func TestCrossover_BlockMatchesSamples(t *testing.T) {
	a := mustCrossover(t, 1000, 4, 48000)
	b := mustCrossover(t, 1000, 4, 48000)

	in := testutil.DeterministicNoise(3, 1, 256)
	loS, hiS := make([]float64, len(in)), make([]float64, len(in))

	for i, x := range in {
		loS[i], hiS[i] = a.ProcessSample(x)
	}

	loB, hiB := make([]float64, len(in)), make([]float64, len(in))
	b.ProcessBlock(in, loB, hiB)

	testutil.RequireSliceNearlyEqual(t, loB, loS, 1e-12)
	testutil.RequireSliceNearlyEqual(t, hiB, hiS, 1e-12)

	b.ProcessBlock(nil, nil, nil)
}

func TestCrossover_Reset(t *testing.T) {
	xo := mustCrossover(t, 1000, 4, 48000)
	fresh := mustCrossover(t, 1000, 4, 48000)

	xo.ProcessSample(1)
	xo.ProcessSample(-0.5)
	xo.Reset()

	lo1, hi1 := xo.ProcessSample(1)
	lo2, hi2 := fresh.ProcessSample(1)

	if lo1 != lo2 || hi1 != hi2 {
		t.Errorf("after Reset: (%g, %g), fresh: (%g, %g)", lo1, hi1, lo2, hi2)
	}
}

func TestNewMultiBand(t *testing.T) {
	mb, err := NewMultiBand([]float64{200, 2000, 10000}, 4, 48000)
	if err != nil {
		t.Fatal(err)
	}

	if mb.NumBands() != 4 || len(mb.Stages()) != 3 {
		t.Fatalf("bands = %d, stages = %d", mb.NumBands(), len(mb.Stages()))
	}

	freqs := mb.Frequencies()
	freqs[0] = 1

	if mb.Frequencies()[0] != 200 {
		t.Error("Frequencies exposes internal slice")
	}

	tests := []struct {
		name  string
		freqs []float64
		order int
		want  error
	}{
		{"empty", nil, 4, ErrInvalidFrequency},
		{"descending", []float64{5000, 500}, 4, ErrInvalidFrequency},
		{"duplicate", []float64{1000, 1000}, 4, ErrInvalidFrequency},
		{"odd order", []float64{1000}, 3, ErrInvalidOrder},
		{"nyquist", []float64{24000}, 4, ErrInvalidFrequency},
	}
	for _, tt := range tests {
		if _, err := NewMultiBand(tt.freqs, tt.order, 48000); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

// TestMultiBand_SumIsUnityMagnitude checks that the bands add up to an
// allpass for close and wide crossover spacing.
func TestMultiBand_SumIsUnityMagnitude(t *testing.T) {
	sr := 44100.0

	for _, order := range []int{2, 4, 6, 8} {
		for _, freqs := range [][]float64{{4000}, {100, 10000}, {500, 700, 1000}} {
			mb, err := NewMultiBand(freqs, order, sr)
			if err != nil {
				t.Fatal(err)
			}

			for f := 10.0; f < sr/2; f *= 1.05 {
				var sum complex128
				for _, h := range mb.Response(f) {
					sum += h
				}

				if math.Abs(cmplx.Abs(sum)-1) > 0.0005 {
					t.Fatalf("LR%d at %v: |sum| = %.6f at %.0f Hz", order, freqs, cmplx.Abs(sum), f)
				}
			}
		}
	}
}

func TestMultiBand_Comment(t *testing.T) {
	mb, err := NewMultiBand([]float64{100, 10000}, 2, 44100)
	if err != nil {
		t.Fatal(err)
	}

	want := "Linkwitz-Riley cross over network of order 2 at 100, 10000 Hz."
	if got := mb.Comment(); got != want {
		t.Fatalf("Comment() = %q, want %q", got, want)
	}
}

func TestMultiBand_Split(t *testing.T) {
	mb, err := NewMultiBand([]float64{1000}, 4, 48000)
	if err != nil {
		t.Fatal(err)
	}

	in, err := signal.New([][]float64{testutil.Impulse(256, 0), testutil.Impulse(256, 10)}, 48000)
	if err != nil {
		t.Fatal(err)
	}

	out, err := mb.Split(in)
	if err != nil {
		t.Fatal(err)
	}

	if got := out.Shape(); len(got) != 2 || got[0] != 2 || got[1] != 2 {
		t.Fatalf("shape = %v, want [2 2]", got)
	}

	// the second channel is the first one delayed by ten samples
	for b := range 2 {
		first, second := out.Channel(b*2), out.Channel(b*2+1)
		for i := 10; i < 256; i++ {
			if math.Abs(first[i-10]-second[i]) > 1e-12 {
				t.Fatalf("band %d sample %d: channels not independent", b, i)
			}
		}
	}

	if _, err := mb.Split(mustMono(t, 44100)); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("got %v, want ErrInvalidFrequency", err)
	}
}

func mustMono(t *testing.T, fs float64) *signal.Signal {
	t.Helper()

	s, err := signal.NewMono(make([]float64, 16), fs)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestMultiBand_Processing(t *testing.T) {
	freqs := []float64{500, 5000}
	a, _ := NewMultiBand(freqs, 4, 48000)
	b, _ := NewMultiBand(freqs, 4, 48000)

	in := testutil.Impulse(8192, 0)
	rows := make([][]float64, a.NumBands())

	for _, x := range in {
		for i, y := range a.ProcessSample(x) {
			rows[i] = append(rows[i], y)
		}
	}

	if e := testutil.Energy(testutil.SumRows(rows)); math.Abs(e-1) > 0.001 {
		t.Errorf("summed impulse energy %.5f, want 1", e)
	}

	block := b.ProcessBlock(in)
	for i := range rows {
		testutil.RequireSliceNearlyEqual(t, block[i], rows[i], 1e-12)
	}

	a.Reset()
	b.Reset()

	first, second := a.ProcessSample(1), b.ProcessSample(1)
	testutil.RequireSliceNearlyEqual(t, first, second, 0)
}
