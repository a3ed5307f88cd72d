package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/cwbudde/algo-acoustics/internal/testutil"
)

func TestNormalizeSingleSided(t *testing.T) {
	v := complex(1.0/3, 1.0/3)
	vsq := cmplx.Abs(v) * cmplx.Abs(v)
	spec := []complex128{v, v, v}

	cases := []struct {
		name   string
		n      int
		fs     float64
		double bool // whether the last bin is doubled
	}{
		{name: "even", n: 4, fs: 40, double: false},
		{name: "odd", n: 5, fs: 50, double: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nf := complex(float64(tc.n), 0)
			nsq := float64(tc.n * tc.n)
			sqrt2 := complex(math.Sqrt2, 0)

			last := func(single, doubled complex128) complex128 {
				if tc.double {
					return doubled
				}

				return single
			}

			truth := map[Norm][]complex128{
				NormUnitary:   {v, 2 * v, last(v, 2*v)},
				NormAmplitude: {v / nf, 2 * v / nf, last(v/nf, 2*v/nf)},
				NormRMS:       {v / nf, 2 * v / nf / sqrt2, last(v/nf, 2*v/nf/sqrt2)},
				NormPower: {complex(vsq/nsq, 0), complex(2*vsq/nsq, 0),
					last(complex(vsq/nsq, 0), complex(2*vsq/nsq, 0))},
				NormPSD: {complex(vsq/float64(tc.n)/tc.fs, 0), complex(2*vsq/float64(tc.n)/tc.fs, 0),
					last(complex(vsq/float64(tc.n)/tc.fs, 0), complex(2*vsq/float64(tc.n)/tc.fs, 0))},
			}

			for norm, want := range truth {
				got, err := Normalize(spec, tc.n, tc.fs, norm)
				if err != nil {
					t.Fatalf("%s: %v", norm, err)
				}

				testutil.RequireComplexNearlyEqual(t, got, want, 1e-15)

				back, err := Denormalize(got, tc.n, tc.fs, norm)
				if err != nil {
					t.Fatalf("%s inverse: %v", norm, err)
				}

				expected := spec
				if norm == NormPower || norm == NormPSD {
					mag := complex(cmplx.Abs(v), 0)
					expected = []complex128{mag, mag, mag}
				}

				testutil.RequireComplexNearlyEqual(t, back, expected, 1e-15)
			}
		})
	}
}

func TestNormalizeTwoSided(t *testing.T) {
	v := complex(1.0/3, 1.0/3)
	vsq := real(v)*real(v) + imag(v)*imag(v)
	spec := []complex128{v, v, v}
	n, fs := 3, 30.0

	truth := map[Norm]complex128{
		NormUnitary:   v,
		NormAmplitude: v / 3,
		NormPower:     complex(vsq/9, 0),
		NormPSD:       complex(vsq/3/fs, 0),
	}

	for norm, w := range truth {
		got, err := Normalize(spec, n, fs, norm, WithTwoSided())
		if err != nil {
			t.Fatalf("%s: %v", norm, err)
		}

		testutil.RequireComplexNearlyEqual(t, got, []complex128{w, w, w}, 1e-15)
	}

	if _, err := Normalize(spec, n, fs, NormRMS, WithTwoSided()); !errors.Is(err, ErrInvalidNorm) {
		t.Fatalf("two-sided rms error = %v, want ErrInvalidNorm", err)
	}
}

func TestNormalizeWindowCancels(t *testing.T) {
	spec := []complex128{0.5, 1, 0.5}
	w := []float64{1, 1, 1, 1}

	for _, norm := range []Norm{NormUnitary, NormAmplitude, NormRMS, NormPower, NormPSD} {
		out, err := Normalize(spec, 4, 44100, norm, WithWindow(w))
		if err != nil {
			t.Fatalf("%s: %v", norm, err)
		}

		back, err := Denormalize(out, 4, 44100, norm, WithWindow(w))
		if err != nil {
			t.Fatalf("%s inverse: %v", norm, err)
		}

		testutil.RequireComplexNearlyEqual(t, back, spec, 1e-15)
	}
}

func TestNormalizeErrors(t *testing.T) {
	_, err := Normalize([]complex128{0.5, 1, 0.5}, 4, 44100, NormAmplitude, WithWindow([]float64{1, 1, 1, 1, 1}))
	if !errors.Is(err, ErrWindowLength) || !strings.Contains(err.Error(), "window must be 4 long but is 5 long") {
		t.Fatalf("window error = %v", err)
	}

	_, err = ParseNorm("goofy")
	if !errors.Is(err, ErrInvalidNorm) || !strings.Contains(err.Error(), "but is 'goofy'") {
		t.Fatalf("ParseNorm error = %v", err)
	}

	if _, err := Normalize([]complex128{1}, 1, 1, Norm(42)); !errors.Is(err, ErrInvalidNorm) {
		t.Fatalf("out-of-range norm error = %v", err)
	}
}

func TestNormNoneIsIdentity(t *testing.T) {
	spec := []complex128{1, 2 + 1i, 3}

	got, err := Normalize(spec, 4, 44100, NormNone)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireComplexNearlyEqual(t, got, spec, 0)

	got[0] = 99
	if spec[0] != 1 {
		t.Fatal("Normalize modified its input")
	}
}

func TestNormTextRoundTrip(t *testing.T) {
	for i := range normNames {
		n := Norm(i)

		text, err := n.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", i, err)
		}

		var back Norm
		if err := back.UnmarshalText(text); err != nil || back != n {
			t.Fatalf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}
}
