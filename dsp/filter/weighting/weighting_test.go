package weighting

import (
	"errors"
	"math"
	"testing"
)

// IEC 61672 relative response levels at the nominal 1/3-octave frequencies.
var aRef = [][2]float64{
	{10, -70.4}, {12.5, -63.4}, {16, -56.7}, {20, -50.5},
	{25, -44.7}, {31.5, -39.4}, {40, -34.6}, {50, -30.2},
	{63, -26.2}, {80, -22.5}, {100, -19.1}, {125, -16.1},
	{160, -13.4}, {200, -10.9}, {250, -8.6}, {315, -6.6},
	{400, -4.8}, {500, -3.2}, {630, -1.9}, {800, -0.8},
	{1000, 0.0}, {1250, 0.6}, {1600, 1.0}, {2000, 1.2},
	{2500, 1.3}, {3150, 1.2}, {4000, 1.0}, {5000, 0.5},
	{6300, -0.1}, {8000, -1.1}, {10000, -2.5}, {12500, -4.3},
	{16000, -6.6}, {20000, -9.3},
}

var bRef = [][2]float64{
	{10, -38.2}, {12.5, -33.2}, {16, -28.5}, {20, -24.2},
	{25, -20.4}, {31.5, -17.1}, {40, -14.2}, {50, -11.6},
	{63, -9.3}, {80, -7.4}, {100, -5.6}, {125, -4.2},
	{160, -3.0}, {200, -2.0}, {250, -1.3}, {315, -0.8},
	{400, -0.5}, {500, -0.3}, {630, -0.1}, {800, 0.0},
	{1000, 0.0}, {1250, 0.0}, {1600, 0.0}, {2000, -0.1},
	{2500, -0.3}, {3150, -0.5}, {4000, -0.8}, {5000, -1.2},
	{6300, -1.9}, {8000, -2.9}, {10000, -4.3}, {12500, -6.1},
	{16000, -8.5}, {20000, -11.2},
}

var cRef = [][2]float64{
	{10, -14.3}, {12.5, -11.2}, {16, -8.5}, {20, -6.2},
	{25, -4.4}, {31.5, -3.0}, {40, -2.0}, {50, -1.3},
	{63, -0.8}, {80, -0.5}, {100, -0.3}, {125, -0.2},
	{160, -0.1}, {200, 0.0}, {250, 0.0}, {315, 0.0},
	{400, 0.0}, {500, 0.0}, {630, 0.0}, {800, 0.0},
	{1000, 0.0}, {1250, 0.0}, {1600, -0.1}, {2000, -0.2},
	{2500, -0.3}, {3150, -0.5}, {4000, -0.8}, {5000, -1.3},
	{6300, -2.0}, {8000, -3.0}, {10000, -4.4}, {12500, -6.2},
	{16000, -8.5}, {20000, -11.2},
}

var references = []struct {
	typ  Type
	rows [][2]float64
}{
	{TypeA, aRef},
	{TypeB, bRef},
	{TypeC, cRef},
}

// exact maps a nominal 1/3-octave frequency to its base-ten exact value.
func exact(nominal float64) float64 {
	return 1000 * math.Pow(10, math.Round(10*math.Log10(nominal/1000))/10)
}

// bilinearTolerance widens the allowed deviation towards Nyquist, where the
// bilinear transform compresses the response. The 0.5 dB floor covers the
// rounding of the table.
func bilinearTolerance(freq, sr float64) float64 {
	switch ratio := freq / sr; {
	case ratio > 0.4:
		return 25
	case ratio > 0.3:
		return 5
	case ratio > 0.2:
		return 1.5
	case ratio > 0.1:
		return 1
	default:
		return 0.5
	}
}

func TestCorrection_MatchesTable(t *testing.T) {
	for _, ref := range references {
		for _, row := range ref.rows {
			got, err := Correction(ref.typ, exact(row[0]))
			if err != nil {
				t.Fatalf("Correction(%s): %v", ref.typ, err)
			}

			if math.Abs(got-row[1]) > 0.1 {
				t.Errorf("%s @ %g Hz: got %.3f dB, want %.1f dB", ref.typ, row[0], got, row[1])
			}
		}
	}
}

func TestCorrection_ZAndEdges(t *testing.T) {
	if got, _ := Correction(TypeZ, 31.5); got != 0 {
		t.Errorf("Z correction = %g, want 0", got)
	}

	if got, _ := Correction(TypeA, 0); !math.IsInf(got, -1) {
		t.Errorf("A correction at DC = %g, want -Inf", got)
	}

	if _, err := Correction(Type(9), 1000); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestDesign_FollowsTable(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000} {
		for _, ref := range references {
			chain, err := New(ref.typ, sr)
			if err != nil {
				t.Fatalf("New(%s, %g): %v", ref.typ, sr, err)
			}

			for _, row := range ref.rows {
				if row[0] >= sr/2 {
					continue
				}

				got := chain.MagnitudeDB(row[0], sr)
				if tol := bilinearTolerance(row[0], sr); math.Abs(got-row[1]) > tol {
					t.Errorf("%s @ %g Hz (sr=%g): got %.2f dB, want %.1f dB (tol %.1f)",
						ref.typ, row[0], sr, got, row[1], tol)
				}
			}
		}
	}
}

func TestDesign_UnityAtReference(t *testing.T) {
	for _, sr := range []float64{16000, 22050, 48000} {
		for _, typ := range []Type{TypeA, TypeB, TypeC, TypeZ} {
			sections, err := Design(typ, sr)
			if err != nil {
				t.Fatalf("Design(%s, %g): %v", typ, sr, err)
			}

			for i := range sections {
				if !sections[i].IsStable() {
					t.Errorf("%s at %g Hz: section %d unstable", typ, sr, i)
				}
			}

			if got := referenceDB(t, typ, sr); math.Abs(got) > 1e-9 {
				t.Errorf("%s at %g Hz: 1 kHz response %.2e dB, want 0", typ, sr, got)
			}
		}
	}
}

func referenceDB(t *testing.T, typ Type, sr float64) float64 {
	t.Helper()

	chain, err := New(typ, sr)
	if err != nil {
		t.Fatal(err)
	}

	return chain.MagnitudeDB(refFreq, sr)
}

func TestDesign_Sections(t *testing.T) {
	tests := []struct {
		typ      Type
		sections int
	}{
		{TypeA, 3},
		{TypeB, 3},
		{TypeC, 2},
		{TypeZ, 1},
	}
	for _, tt := range tests {
		sections, err := Design(tt.typ, 48000)
		if err != nil {
			t.Fatal(err)
		}

		if len(sections) != tt.sections {
			t.Errorf("%s: %d sections, want %d", tt.typ, len(sections), tt.sections)
		}
	}

	z, _ := Design(TypeZ, 48000)
	if !z[0].IsPassthrough() {
		t.Errorf("Z weighting = %+v, want passthrough", z[0])
	}
}

func TestDesign_Errors(t *testing.T) {
	if _, err := Design(TypeA, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}

	if _, err := New(Type(99), 48000); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestChain_SineAtReference(t *testing.T) {
	chain, err := New(TypeA, 48000)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 9600)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
	}

	chain.ProcessBlock(buf)

	// skip the transient
	var peak float64
	for _, v := range buf[4800:] {
		peak = max(peak, math.Abs(v))
	}

	if math.Abs(peak-1) > 0.01 {
		t.Errorf("A-weighted 1 kHz sine peak = %.4f, want 1", peak)
	}

	chain.Reset()

	if y := chain.ProcessSample(0); y != 0 {
		t.Errorf("after Reset, ProcessSample(0) = %g, want 0", y)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"A", TypeA},
		{"b", TypeB},
		{" C ", TypeC},
		{"z", TypeZ},
		{"", TypeZ},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}

	if _, err := ParseType("D"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}

	if got := Type(99).String(); got != "Unknown" {
		t.Errorf("Type(99).String() = %q, want Unknown", got)
	}
}
