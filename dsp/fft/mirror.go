package fft

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// AddMirrorSpectrum expands a single-sided spectrum to the two-sided
// spectrum of a real signal. evenSamples tells whether the last bin is the
// Nyquist bin of an even-length signal.
func AddMirrorSpectrum(half []complex128, evenSamples bool) []complex128 {
	if len(half) == 0 {
		return nil
	}

	n := 2*len(half) - 1
	if evenSamples {
		n = 2 * (len(half) - 1)
	}

	full := make([]complex128, n)
	copy(full, half)

	for k := 1; k < len(half); k++ {
		if n-k >= len(half) {
			full[n-k] = cmplx.Conj(half[k])
		}
	}

	return full
}

// RemoveMirrorSpectrum keeps the non-negative frequencies of a two-sided
// spectrum.
func RemoveMirrorSpectrum(full []complex128) []complex128 {
	return append([]complex128(nil), full[:NumBins(len(full))]...)
}

// IsConjugateSymmetric reports whether a two-sided spectrum belongs to a
// real-valued signal.
func IsConjugateSymmetric(full []complex128) bool {
	n := len(full)
	for k := 1; k < n; k++ {
		if cmplx.Abs(full[k]-cmplx.Conj(full[n-k])) > 1e-10*(1+cmplx.Abs(full[k])) {
			return false
		}
	}

	return n == 0 || math.Abs(imag(full[0])) <= 1e-10*(1+cmplx.Abs(full[0]))
}

// PowerSpectrum returns |X[k]|^2 for every bin.
func PowerSpectrum(spec []complex128) []float64 {
	re := make([]float64, len(spec))
	im := make([]float64, len(spec))

	for i, c := range spec {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, len(spec))
	vecmath.Power(out, re, im)

	return out
}

// MagnitudeSpectrum returns |X[k]| for every bin.
func MagnitudeSpectrum(spec []complex128) []float64 {
	re := make([]float64, len(spec))
	im := make([]float64, len(spec))

	for i, c := range spec {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, len(spec))
	vecmath.Magnitude(out, re, im)

	return out
}
