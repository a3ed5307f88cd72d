package bank

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-acoustics/dsp/filter/iir"
)

// BandKind tells how a band of an energy-preserving bank was designed.
type BandKind int

const (
	BandPass BandKind = iota
	HighPass
)

func (k BandKind) String() string {
	switch k {
	case BandPass:
		return "bandpass"
	case HighPass:
		return "highpass"
	default:
		return fmt.Sprintf("BandKind(%d)", int(k))
	}
}

// BandSections is the biquad cascade of one band. A bandpass of order N
// has N sections, a highpass ceil(N/2).
type BandSections struct {
	Kind     BandKind
	Sections []biquad.Coefficients
}

// EnergyDesign is the set of Butterworth cascades of an energy-preserving
// bank. The squared magnitudes of its bands sum to approximately one.
type EnergyDesign struct {
	order       int
	bands       []BandSections
	grid        []int
	diagnostics []Diagnostic
}

// DesignEnergyPreserving designs one Butterworth bandpass of the given
// order per fractional-octave band of freqRange, with -3 dB points at the
// band edges.
//
// Bands whose lower edge lies at or above the Nyquist frequency are
// skipped. A band whose upper edge reaches the Nyquist frequency is built
// as a highpass at its lower edge instead. Both cases are reported as
// diagnostics and never fail the design.
func DesignEnergyPreserving(sampleRate float64, numFractions int, freqRange []float64, order int, opts ...DesignOption) (*EnergyDesign, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sampling rate must be positive, got %v", ErrInvalidParameter, sampleRate)
	}

	if order < 1 {
		return nil, fmt.Errorf("%w: order must be at least 1, got %d", ErrInvalidParameter, order)
	}

	g, err := Frequencies(numFractions, freqRange)
	if err != nil {
		return nil, err
	}

	cfg := newDesignConfig(opts)
	d := &EnergyDesign{order: order}

	for i := range g.Exact {
		lower, upper := g.Cutoff.Lower[i], g.Cutoff.Upper[i]

		if lower/sampleRate*2 >= 1 {
			cfg.warn(&d.diagnostics, Diagnostic{
				Kind:      BandSkipped,
				Band:      i,
				Frequency: g.Exact[i],
				Message:   "skipping band above the Nyquist frequency",
			})

			continue
		}

		band := BandSections{Kind: BandPass}

		if upper/sampleRate*2 >= 1 {
			cfg.warn(&d.diagnostics, Diagnostic{
				Kind:      HighpassFallback,
				Band:      i,
				Frequency: g.Exact[i],
				Message: fmt.Sprintf("upper frequency limit %.1f Hz is above the Nyquist frequency, using a highpass instead of a bandpass",
					math.Round(upper*10)/10),
			})

			band.Kind = HighPass
			band.Sections, err = iir.Butterworth(order, iir.Highpass, []float64{lower}, sampleRate)
		} else {
			band.Sections, err = iir.Butterworth(order, iir.Bandpass, []float64{lower, upper}, sampleRate)
		}

		if err != nil {
			return nil, fmt.Errorf("bank: band %d (%.1f Hz): %w", i, g.Exact[i], err)
		}

		d.bands = append(d.bands, band)
		d.grid = append(d.grid, i)
	}

	return d, nil
}

// Order returns the Butterworth order of every band.
func (d *EnergyDesign) Order() int { return d.order }

// NumBands returns the number of designed bands.
func (d *EnergyDesign) NumBands() int { return len(d.bands) }

// Bands returns a copy of the per-band cascades, lowest band first.
func (d *EnergyDesign) Bands() []BandSections {
	out := make([]BandSections, len(d.bands))
	for i, b := range d.bands {
		out[i] = BandSections{Kind: b.Kind, Sections: slices.Clone(b.Sections)}
	}

	return out
}

// GridIndices maps each designed band to its index in the frequency grid.
func (d *EnergyDesign) GridIndices() []int { return slices.Clone(d.grid) }

// Diagnostics returns the non-fatal events raised during design.
func (d *EnergyDesign) Diagnostics() []Diagnostic { return slices.Clone(d.diagnostics) }

// Tensor returns the design as a (bands, order, 6) array of
// [b0 b1 b2 a0 a1 a2] rows. Highpass bands are padded with passthrough
// sections to the common length.
func (d *EnergyDesign) Tensor() [][][6]float64 {
	out := make([][][6]float64, len(d.bands))
	for i, b := range d.bands {
		out[i] = biquad.SOSMatrix(biquad.ExtendSections(b.Sections, d.order))
	}

	return out
}

func (d *EnergyDesign) equal(o *EnergyDesign) bool {
	if d.order != o.order || len(d.bands) != len(o.bands) || !slices.Equal(d.grid, o.grid) {
		return false
	}

	for i := range d.bands {
		if d.bands[i].Kind != o.bands[i].Kind || !slices.Equal(d.bands[i].Sections, o.bands[i].Sections) {
			return false
		}
	}

	return true
}
