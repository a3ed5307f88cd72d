package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-acoustics/dsp/core"
	"gonum.org/v1/gonum/dsp/fourier"
)

// NumBins returns the number of single-sided bins of a real signal with
// nSamples samples.
func NumBins(nSamples int) int {
	return nSamples/2 + 1
}

// NumSamples returns the even sample count that produces nBins
// single-sided bins.
func NumSamples(nBins int) int {
	return (nBins - 1) * 2
}

// RFFTFreq returns the centre frequency of every single-sided bin.
func RFFTFreq(nSamples int, sampleRate float64) []float64 {
	freqs := make([]float64, NumBins(nSamples))
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(nSamples)
	}

	return freqs
}

// RFFT returns the normalised single-sided spectrum of x. x is truncated or
// zero-padded to nSamples.
func RFFT(x []float64, nSamples int, sampleRate float64, norm Norm) ([]complex128, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidLength, nSamples)
	}

	buf := make([]float64, nSamples)
	copy(buf, x)

	var spec []complex128

	if core.IsPowerOfTwo(nSamples) {
		full, err := complexTransform(toComplex(buf), false)
		if err != nil {
			return nil, err
		}

		spec = full[:NumBins(nSamples)]
	} else {
		spec = fourier.NewFFT(nSamples).Coefficients(nil, buf)
	}

	return Normalize(spec, nSamples, sampleRate, norm)
}

// IRFFT reverts RFFT. spec is truncated or zero-padded to the bin count of
// nSamples; the imaginary parts of the DC and Nyquist bins are ignored.
func IRFFT(spec []complex128, nSamples int, sampleRate float64, norm Norm) ([]float64, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidLength, nSamples)
	}

	raw, err := Denormalize(spec, nSamples, sampleRate, norm)
	if err != nil {
		return nil, err
	}

	half := make([]complex128, NumBins(nSamples))
	copy(half, raw)

	if !core.IsPowerOfTwo(nSamples) {
		out := fourier.NewFFT(nSamples).Sequence(nil, half)
		scale := 1 / float64(nSamples)

		for i := range out {
			out[i] *= scale
		}

		return out, nil
	}

	full, err := complexTransform(AddMirrorSpectrum(half, nSamples%2 == 0), true)
	if err != nil {
		return nil, err
	}

	out := make([]float64, nSamples)
	for i := range out {
		out[i] = real(full[i])
	}

	return out, nil
}

// FFT returns the normalised two-sided spectrum of a complex sequence.
func FFT(x []complex128, nSamples int, sampleRate float64, norm Norm) ([]complex128, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidLength, nSamples)
	}

	buf := make([]complex128, nSamples)
	copy(buf, x)

	spec, err := complexTransform(buf, false)
	if err != nil {
		return nil, err
	}

	return Normalize(spec, nSamples, sampleRate, norm, WithTwoSided())
}

// IFFT reverts FFT.
func IFFT(spec []complex128, nSamples int, sampleRate float64, norm Norm) ([]complex128, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidLength, nSamples)
	}

	raw, err := Denormalize(spec, nSamples, sampleRate, norm, WithTwoSided())
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, nSamples)
	copy(buf, raw)

	return complexTransform(buf, true)
}

// complexTransform runs an unnormalised forward or a 1/N-scaled inverse
// DFT of len(src) points.
func complexTransform(src []complex128, inverse bool) ([]complex128, error) {
	n := len(src)
	dst := make([]complex128, n)

	if !core.IsPowerOfTwo(n) {
		plan := fourier.NewCmplxFFT(n)
		if !inverse {
			return plan.Coefficients(dst, src), nil
		}

		plan.Sequence(dst, src)

		scale := complex(1/float64(n), 0)
		for i := range dst {
			dst[i] *= scale
		}

		return dst, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create plan of size %d: %w", n, err)
	}

	if inverse {
		err = plan.Inverse(dst, src)
	} else {
		err = plan.Forward(dst, src)
	}

	if err != nil {
		return nil, fmt.Errorf("fft: transform of size %d: %w", n, err)
	}

	return dst, nil
}

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}

	return out
}
