package weighting

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-acoustics/dsp/filter/iir"
)

var (
	// ErrUnknownType is returned for weighting names or values outside A, B, C and Z.
	ErrUnknownType = errors.New("weighting: unknown type")
	// ErrInvalidSampleRate is returned for non-positive sampling rates.
	ErrInvalidSampleRate = errors.New("weighting: sample rate must be positive")
)

// Corner frequencies of the IEC 61672 analog weighting networks in Hz.
const (
	fLow  = 20.598997 // double pole, all curves
	fA1   = 107.65265
	fA2   = 737.86223
	fB    = 158.48932
	fHigh = 12194.217 // double pole, all curves
)

const refFreq = 1000.0

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeA approximates the 40-phon equal-loudness contour.
	TypeA Type = iota
	// TypeB approximates the 70-phon contour.
	TypeB
	// TypeC approximates the 100-phon contour and stays flat down to
	// about 50 Hz.
	TypeC
	// TypeZ is flat.
	TypeZ
)

func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	case TypeZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// ParseType accepts "A", "B", "C" and "Z" in either case. An empty string
// selects Z.
func ParseType(name string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "A":
		return TypeA, nil
	case "B":
		return TypeB, nil
	case "C":
		return TypeC, nil
	case "Z", "":
		return TypeZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// analog returns the zero count at the origin and the real pole frequencies
// of the analog network.
func (t Type) analog() (zeros int, poles []float64, err error) {
	switch t {
	case TypeA:
		return 4, []float64{fLow, fLow, fA1, fA2, fHigh, fHigh}, nil
	case TypeB:
		return 3, []float64{fLow, fLow, fB, fHigh, fHigh}, nil
	case TypeC:
		return 2, []float64{fLow, fLow, fHigh, fHigh}, nil
	case TypeZ:
		return 0, nil, nil
	default:
		return 0, nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
}

// Design returns the biquad sections of weighting t at the given sampling
// rate, normalized to 0 dB at 1 kHz.
//
// The analog poles are mapped with the bilinear transform. Poles below
// Nyquist are pre-warped so each corner lands at its nominal frequency;
// poles at or above Nyquist are transformed unwarped.
func Design(t Type, sampleRate float64) ([]biquad.Coefficients, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	nZeros, poles, err := t.analog()
	if err != nil {
		return nil, err
	}

	if len(poles) == 0 {
		return []biquad.Coefficients{biquad.Passthrough()}, nil
	}

	zpk := iir.ZPK{
		Zeros: make([]complex128, nZeros),
		Poles: make([]complex128, len(poles)),
		Gain:  1,
	}

	for i, f := range poles {
		zpk.Poles[i] = complex(-warp(f, sampleRate), 0)
	}

	sections, err := zpk.Bilinear(sampleRate).ToSections()
	if err != nil {
		return nil, fmt.Errorf("weighting %s: %w", t, err)
	}

	mag := cmplx.Abs(biquad.CascadeResponse(sections, refFreq, sampleRate))
	if mag == 0 || math.IsNaN(mag) {
		return nil, fmt.Errorf("weighting %s: degenerate response at %g Hz", t, refFreq)
	}

	sections[0].B0 /= mag
	sections[0].B1 /= mag
	sections[0].B2 /= mag

	return sections, nil
}

// New returns a ready-to-run filter chain for weighting t.
func New(t Type, sampleRate float64) (*biquad.Chain, error) {
	sections, err := Design(t, sampleRate)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(sections), nil
}

func warp(f, sampleRate float64) float64 {
	if f >= sampleRate/2 {
		return 2 * math.Pi * f
	}

	return 2 * sampleRate * math.Tan(math.Pi*f/sampleRate)
}

// Correction returns the analog weighting at freq in dB relative to 1 kHz.
// It is the value added to an unweighted band level at the band centre to
// obtain the weighted band level.
func Correction(t Type, freq float64) (float64, error) {
	if t == TypeZ {
		return 0, nil
	}

	if freq <= 0 {
		return math.Inf(-1), nil
	}

	num, err := analogMagnitude(t, freq)
	if err != nil {
		return 0, err
	}

	den, _ := analogMagnitude(t, refFreq)

	return 20 * math.Log10(num/den), nil
}

func analogMagnitude(t Type, freq float64) (float64, error) {
	nZeros, poles, err := t.analog()
	if err != nil {
		return 0, err
	}

	f2 := freq * freq
	mag := math.Pow(freq, float64(nZeros))

	for _, p := range poles {
		mag /= math.Sqrt(f2 + p*p)
	}

	return mag, nil
}
