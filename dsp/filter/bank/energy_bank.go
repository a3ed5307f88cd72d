package bank

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-acoustics/dsp/signal"
)

// EnergyPreservingBank is a fractional-octave bank of Butterworth
// bandpass cascades with -3 dB band edges. For a sufficiently high order
// the band energies sum to the energy of the input.
type EnergyPreservingBank struct {
	params EnergyParams
	grid   *Grid
	design *EnergyDesign
	logger *slog.Logger
}

// NewEnergyPreserving designs an energy-preserving bank. Without options it
// is an order-14 octave bank from 20 Hz to 20 kHz at 44.1 kHz.
func NewEnergyPreserving(opts ...Option) (*EnergyPreservingBank, error) {
	cfg := defaultEnergyConfig()
	cfg.apply(opts)

	p := EnergyParams{
		NumFractions:   cfg.fractions,
		SampleRate:     cfg.sampleRate,
		FrequencyRange: slices.Clone(cfg.freqRange),
		Order:          cfg.order,
	}

	design, err := DesignEnergyPreserving(p.SampleRate, p.NumFractions, p.FrequencyRange, p.Order,
		WithDesignLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	grid, err := Frequencies(p.NumFractions, p.FrequencyRange)
	if err != nil {
		return nil, err
	}

	return &EnergyPreservingBank{
		params: p,
		grid:   grid,
		design: design,
		logger: cfg.logger,
	}, nil
}

// NewEnergyPreservingFromParams rebuilds a bank from stored parameters.
func NewEnergyPreservingFromParams(p EnergyParams, opts ...Option) (*EnergyPreservingBank, error) {
	return NewEnergyPreserving(append(p.options(), opts...)...)
}

// Params returns the constructor parameters.
func (b *EnergyPreservingBank) Params() EnergyParams {
	p := b.params
	p.FrequencyRange = slices.Clone(p.FrequencyRange)

	return p
}

func (b *EnergyPreservingBank) NumFractions() int         { return b.params.NumFractions }
func (b *EnergyPreservingBank) SampleRate() float64       { return b.params.SampleRate }
func (b *EnergyPreservingBank) FrequencyRange() []float64 { return slices.Clone(b.params.FrequencyRange) }
func (b *EnergyPreservingBank) Order() int                { return b.params.Order }

// NominalFrequencies returns the IEC nominal centre frequencies of the grid.
func (b *EnergyPreservingBank) NominalFrequencies() []float64 { return slices.Clone(b.grid.Nominal) }

// ExactFrequencies returns the exact centre frequencies of the grid.
func (b *EnergyPreservingBank) ExactFrequencies() []float64 { return slices.Clone(b.grid.Exact) }

// CutoffFrequencies returns the lower and upper band edges of the grid.
func (b *EnergyPreservingBank) CutoffFrequencies() (lower, upper []float64) {
	return slices.Clone(b.grid.Cutoff.Lower), slices.Clone(b.grid.Cutoff.Upper)
}

// NumBands returns the number of designed bands. Bands above the Nyquist
// frequency are not counted.
func (b *EnergyPreservingBank) NumBands() int { return b.design.NumBands() }

// Bands describes the designed bands, lowest first.
func (b *EnergyPreservingBank) Bands() []Band { return bandsOf(b.grid, b.design.grid) }

// Design returns the filter coefficients.
func (b *EnergyPreservingBank) Design() *EnergyDesign { return b.design }

// Diagnostics returns the bands that were skipped or degraded.
func (b *EnergyPreservingBank) Diagnostics() []Diagnostic { return b.design.Diagnostics() }

func (b *EnergyPreservingBank) String() string {
	return fmt.Sprintf("Energy-preserving 1/%d-octave filter bank with %d bands between %g and %g Hz with %g Hz sampling rate",
		b.params.NumFractions, b.NumBands(), b.params.FrequencyRange[0], b.params.FrequencyRange[1], b.params.SampleRate)
}

// Comment is attached to processed signals.
func (b *EnergyPreservingBank) Comment() string {
	return fmt.Sprintf("Second order section 1/%d fractional octave band filter of order %d",
		b.params.NumFractions, b.params.Order)
}

// Equal reports whether both banks have the same parameters and
// coefficients.
func (b *EnergyPreservingBank) Equal(other *EnergyPreservingBank) bool {
	if b == nil || other == nil {
		return b == other
	}

	return b.params.equal(other.params) && b.design.equal(other.design)
}

// Process filters every channel of in through every band. The result has
// one channel per band and input channel with shape (bands, in.Shape()...).
func (b *EnergyPreservingBank) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := checkInput(in, b.params.SampleRate, b.NumBands()); err != nil {
		return nil, err
	}

	out := make([][]float64, 0, b.NumBands()*in.NumChannels())

	for _, band := range b.design.bands {
		chain := biquad.NewChain(band.Sections)

		for ch := range in.NumChannels() {
			chain.Reset()

			buf := slices.Clone(in.Channel(ch))
			chain.ProcessBlock(buf)
			out = append(out, buf)
		}
	}

	return stack(out, in, b.NumBands(), b.Comment())
}
