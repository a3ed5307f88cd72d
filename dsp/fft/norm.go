package fft

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Norm selects how a spectrum is scaled relative to the raw DFT.
type Norm int

const (
	NormNone Norm = iota
	NormUnitary
	NormAmplitude
	NormRMS
	NormPower
	NormPSD
)

var normNames = [...]string{"none", "unitary", "amplitude", "rms", "power", "psd"}

func (n Norm) String() string {
	if n < 0 || int(n) >= len(normNames) {
		return fmt.Sprintf("Norm(%d)", int(n))
	}

	return normNames[n]
}

// ParseNorm resolves a normalisation by name.
func ParseNorm(name string) (Norm, error) {
	for i, n := range normNames {
		if strings.EqualFold(n, name) {
			return Norm(i), nil
		}
	}

	return NormNone, fmt.Errorf(
		"%w: norm type must be 'unitary', 'amplitude', 'rms', 'power', or 'psd' but is '%s'",
		ErrInvalidNorm, name)
}

// MarshalText implements encoding.TextMarshaler.
func (n Norm) MarshalText() ([]byte, error) {
	if n < 0 || int(n) >= len(normNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNorm, int(n))
	}

	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Norm) UnmarshalText(text []byte) error {
	v, err := ParseNorm(string(text))
	if err != nil {
		return err
	}

	*n = v

	return nil
}

// NormOption configures Normalize and Denormalize.
type NormOption func(*normConfig)

type normConfig struct {
	window   []float64
	twoSided bool
}

// WithWindow accounts for a window that was applied before the transform.
// Its length must equal the number of time samples.
func WithWindow(w []float64) NormOption {
	return func(c *normConfig) {
		c.window = w
	}
}

// WithTwoSided treats the spectrum as two-sided, so no single-sided energy
// correction is applied. NormRMS is undefined for two-sided spectra.
func WithTwoSided() NormOption {
	return func(c *normConfig) {
		c.twoSided = true
	}
}

// Normalize scales a spectrum obtained from an unnormalised transform of
// nSamples time samples. The result is written to a new slice; for
// NormPower and NormPSD it holds real values.
func Normalize(spec []complex128, nSamples int, sampleRate float64, norm Norm, opts ...NormOption) ([]complex128, error) {
	return normalization(spec, nSamples, sampleRate, norm, false, opts)
}

// Denormalize reverts Normalize. Power normalisations lose the phase, so
// for NormPower and NormPSD only the magnitude of the original spectrum is
// recovered.
func Denormalize(spec []complex128, nSamples int, sampleRate float64, norm Norm, opts ...NormOption) ([]complex128, error) {
	return normalization(spec, nSamples, sampleRate, norm, true, opts)
}

func normalization(spec []complex128, nSamples int, sampleRate float64, norm Norm, inverse bool, opts []NormOption) ([]complex128, error) {
	out := append([]complex128(nil), spec...)
	if norm == NormNone {
		return out, nil
	}

	if norm < NormNone || norm > NormPSD {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNorm, int(norm))
	}

	var cfg normConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.window != nil && len(cfg.window) != nSamples {
		return nil, fmt.Errorf("%w: window must be %d long but is %d long",
			ErrWindowLength, nSamples, len(cfg.window))
	}

	if cfg.twoSided && norm == NormRMS {
		return nil, fmt.Errorf("%w: 'rms' normalization does only exist for single-sided spectra", ErrInvalidNorm)
	}

	factors := binFactors(len(out), nSamples, sampleRate, norm, cfg)
	squared := norm == NormPower || norm == NormPSD

	for k := range out {
		if inverse {
			if squared {
				out[k] = complex(math.Sqrt(cmplx.Abs(out[k])), 0)
			}

			out[k] /= complex(factors[k], 0)

			continue
		}

		out[k] *= complex(factors[k], 0)
		if squared {
			a := cmplx.Abs(out[k])
			out[k] = complex(a*a, 0)
		}
	}

	return out, nil
}

// binFactors returns the amplitude scale per bin. For power normalisations
// the factor is squared afterwards together with the spectrum.
func binFactors(nBins, nSamples int, sampleRate float64, norm Norm, cfg normConfig) []float64 {
	sum, sumSq := float64(nSamples), float64(nSamples)
	if cfg.window != nil {
		sum, sumSq = 0, 0
		for _, w := range cfg.window {
			sum += w
			sumSq += w * w
		}
	}

	base := 1.0
	switch norm {
	case NormAmplitude, NormRMS, NormPower:
		base = 1 / sum
	case NormPSD:
		base = 1 / math.Sqrt(sumSq*sampleRate)
	}

	factors := make([]float64, nBins)
	for k := range factors {
		factors[k] = base
	}

	if cfg.twoSided || nBins < 2 {
		return factors
	}

	// Bins above DC carry the energy of their negative-frequency mirror,
	// except the Nyquist bin of an even-length transform.
	last := nBins
	if nSamples%2 == 0 {
		last = nBins - 1
	}

	single := 2.0
	if norm == NormRMS || norm == NormPower || norm == NormPSD {
		single = math.Sqrt2
	}

	for k := 1; k < last; k++ {
		factors[k] *= single
	}

	return factors
}
