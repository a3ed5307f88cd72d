package fir

import (
	"fmt"

	"github.com/cwbudde/algo-acoustics/dsp/core"
	"github.com/cwbudde/algo-acoustics/dsp/fft"
)

// Convolve filters x with taps from zero initial state and returns as
// many samples as x holds, the same result a fresh Filter would produce.
// The work is done by FFT multiplication on a power-of-two grid.
func Convolve(x, taps []float64) ([]float64, error) {
	if len(x) == 0 || len(taps) == 0 {
		return make([]float64, len(x)), nil
	}

	n := core.NextPowerOfTwo(len(x) + len(taps) - 1)

	xs, err := fft.RFFT(x, n, 1, fft.NormNone)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	hs, err := fft.RFFT(taps, n, 1, fft.NormNone)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	for k := range xs {
		xs[k] *= hs[k]
	}

	y, err := fft.IRFFT(xs, n, 1, fft.NormNone)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	return y[:len(x)], nil
}

// Apply is Convolve with the filter's taps. The filter state is not used.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	return Convolve(x, f.taps)
}
