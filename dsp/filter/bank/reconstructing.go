package bank

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/fft"
	"github.com/cwbudde/algo-acoustics/dsp/window"
)

// ReconstructingDesign holds the linear-phase FIR taps of an
// amplitude-preserving bank. The bands sum to a unit impulse delayed by
// half the filter length.
type ReconstructingDesign struct {
	taps        [][]float64
	grid        []int
	diagnostics []Diagnostic
}

// DesignReconstructing synthesises one linear-phase FIR filter of nSamples
// taps per fractional-octave band of freqRange.
//
// Neighbouring bands cross over with squared sine and cosine ramps centred
// on the lower band edge, which places the -6 dB points on the band edges.
// overlap in [0, 1] sets the ramp half-width relative to the distance
// between centre and upper edge; each increment of slope warps the ramp
// once more through sin(pi/2*x) and steepens it. The lowest band has no
// fade-in and the highest no fade-out. Bands whose centre lies at or above
// the Nyquist frequency are skipped with a diagnostic.
func DesignReconstructing(numFractions int, freqRange []float64, overlap float64, slope, nSamples int, sampleRate float64, opts ...DesignOption) (*ReconstructingDesign, error) {
	if !(overlap >= 0 && overlap <= 1) {
		return nil, fmt.Errorf("%w: overlap must be between 0 and 1, got %v", ErrInvalidParameter, overlap)
	}

	if slope < 0 {
		return nil, fmt.Errorf("%w: slope must be a non-negative integer, got %d", ErrInvalidParameter, slope)
	}

	if nSamples < 2 {
		return nil, fmt.Errorf("%w: number of samples must be at least 2, got %d", ErrInvalidParameter, nSamples)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sampling rate must be positive, got %v", ErrInvalidParameter, sampleRate)
	}

	g, err := Frequencies(numFractions, freqRange)
	if err != nil {
		return nil, err
	}

	cfg := newDesignConfig(opts)
	d := &ReconstructingDesign{}

	for i, f := range g.Exact {
		if f >= sampleRate/2 {
			cfg.warn(&d.diagnostics, Diagnostic{
				Kind:      BandSkipped,
				Band:      i,
				Frequency: f,
				Message:   "skipping band above the Nyquist frequency",
			})

			continue
		}

		d.grid = append(d.grid, i)
	}

	// DFT bins of the lower edge and centre, and the ramp half-width.
	n := float64(nSamples)
	k1 := make([]int, len(d.grid))
	half := make([]int, len(d.grid))

	for b, i := range d.grid {
		k1[b] = int(math.RoundToEven(n * g.Cutoff.Lower[i] / sampleRate))
		km := int(math.RoundToEven(n * g.Exact[i] / sampleRate))
		k2 := int(math.RoundToEven(n * g.Cutoff.Upper[i] / sampleRate))
		half[b] = int(math.RoundToEven(overlap / 2 * float64(k2-km)))
	}

	nBins := fft.NumBins(nSamples)
	freqs := fft.RFFTFreq(nSamples, sampleRate)
	delay := n / 2 / sampleRate

	hann, err := window.Hann(nSamples)
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}

	d.taps = make([][]float64, len(d.grid))
	spec := make([]complex128, nBins)

	for b := range d.grid {
		mask := make([]float64, nBins)
		for k := range mask {
			mask[k] = 1
		}

		if b > 0 {
			fadeIn(mask, k1[b], half[b], slope)
		}

		if b < len(d.grid)-1 {
			fadeOut(mask, k1[b+1], half[b+1], slope)
		}

		for k, m := range mask {
			spec[k] = complex(m*m, 0) * cmplx.Exp(complex(0, -2*math.Pi*freqs[k]*delay))
		}

		taps, err := fft.IRFFT(spec, nSamples, sampleRate, fft.NormNone)
		if err != nil {
			return nil, fmt.Errorf("bank: band %d: %w", b, err)
		}

		if err := window.ApplyCoefficientsInPlace(taps, hann); err != nil {
			return nil, fmt.Errorf("bank: band %d: %w", b, err)
		}

		d.taps[b] = taps
	}

	return d, nil
}

// crossoverRamp returns 2p+1 values rising from 0 to 1. The ramp starts
// linear on [-1, 1] and is passed through sin(pi/2*x) slope times before
// being mapped to [0, 1].
func crossoverRamp(p, slope int) []float64 {
	phi := make([]float64, 2*p+1)
	for i := range phi {
		x := float64(i-p) / float64(p)
		for range slope {
			x = math.Sin(math.Pi / 2 * x)
		}

		phi[i] = 0.5 * (x + 1)
	}

	return phi
}

// fadeIn applies the rising half of the crossover centred on bin k and
// zeroes everything below it.
func fadeIn(mask []float64, k, p, slope int) {
	if p > 0 {
		for i, phi := range crossoverRamp(p, slope) {
			if j := k - p + i; j >= 0 && j < len(mask) {
				mask[j] = math.Sin(math.Pi / 2 * phi)
			}
		}
	}

	clear(mask[:clampBin(k-p, len(mask))])
}

// fadeOut applies the falling half of the crossover centred on bin k and
// zeroes everything from its last ramp bin upward.
func fadeOut(mask []float64, k, p, slope int) {
	if p > 0 {
		for i, phi := range crossoverRamp(p, slope) {
			if j := k - p + i; j >= 0 && j < len(mask) {
				mask[j] = math.Cos(math.Pi / 2 * phi)
			}
		}
	}

	clear(mask[clampBin(k+p, len(mask)):])
}

func clampBin(k, n int) int {
	return min(max(k, 0), n)
}

// NumBands returns the number of designed bands.
func (d *ReconstructingDesign) NumBands() int { return len(d.taps) }

// NumSamples returns the filter length.
func (d *ReconstructingDesign) NumSamples() int {
	if len(d.taps) == 0 {
		return 0
	}

	return len(d.taps[0])
}

// Taps returns a copy of the (bands, nSamples) tap matrix.
func (d *ReconstructingDesign) Taps() [][]float64 {
	out := make([][]float64, len(d.taps))
	for i, t := range d.taps {
		out[i] = slices.Clone(t)
	}

	return out
}

// GridIndices maps each designed band to its index in the frequency grid.
func (d *ReconstructingDesign) GridIndices() []int { return slices.Clone(d.grid) }

// Diagnostics returns the non-fatal events raised during design.
func (d *ReconstructingDesign) Diagnostics() []Diagnostic { return slices.Clone(d.diagnostics) }

func (d *ReconstructingDesign) equal(o *ReconstructingDesign) bool {
	if len(d.taps) != len(o.taps) || !slices.Equal(d.grid, o.grid) {
		return false
	}

	for i := range d.taps {
		if !slices.Equal(d.taps[i], o.taps[i]) {
			return false
		}
	}

	return true
}
