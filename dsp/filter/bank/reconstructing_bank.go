package bank

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/filter/fir"
	"github.com/cwbudde/algo-acoustics/dsp/signal"
)

// ReconstructingBank is a fractional-octave bank of linear-phase FIR
// filters with -6 dB band edges. The band outputs sum to the input delayed
// by half the filter length.
type ReconstructingBank struct {
	params ReconstructingParams
	grid   *Grid
	design *ReconstructingDesign
	logger *slog.Logger
}

// NewReconstructing designs a reconstructing bank. Without options it is
// an octave bank from 63 Hz to 16 kHz with 4096 taps at 44.1 kHz, overlap 1
// and slope 0.
func NewReconstructing(opts ...Option) (*ReconstructingBank, error) {
	cfg := defaultReconstructingConfig()
	cfg.apply(opts)

	p := ReconstructingParams{
		NumFractions:   cfg.fractions,
		FrequencyRange: slices.Clone(cfg.freqRange),
		Overlap:        cfg.overlap,
		Slope:          cfg.slope,
		NumSamples:     cfg.nSamples,
		SampleRate:     cfg.sampleRate,
	}

	design, err := DesignReconstructing(p.NumFractions, p.FrequencyRange, p.Overlap, p.Slope, p.NumSamples, p.SampleRate,
		WithDesignLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	grid, err := Frequencies(p.NumFractions, p.FrequencyRange)
	if err != nil {
		return nil, err
	}

	return &ReconstructingBank{
		params: p,
		grid:   grid,
		design: design,
		logger: cfg.logger,
	}, nil
}

// NewReconstructingFromParams rebuilds a bank from stored parameters.
func NewReconstructingFromParams(p ReconstructingParams, opts ...Option) (*ReconstructingBank, error) {
	return NewReconstructing(append(p.options(), opts...)...)
}

// Params returns the constructor parameters.
func (b *ReconstructingBank) Params() ReconstructingParams {
	p := b.params
	p.FrequencyRange = slices.Clone(p.FrequencyRange)

	return p
}

func (b *ReconstructingBank) NumFractions() int         { return b.params.NumFractions }
func (b *ReconstructingBank) SampleRate() float64       { return b.params.SampleRate }
func (b *ReconstructingBank) FrequencyRange() []float64 { return slices.Clone(b.params.FrequencyRange) }
func (b *ReconstructingBank) Overlap() float64          { return b.params.Overlap }
func (b *ReconstructingBank) Slope() int                { return b.params.Slope }
func (b *ReconstructingBank) NumSamples() int           { return b.params.NumSamples }

// NominalFrequencies returns the IEC nominal centre frequencies of the grid.
func (b *ReconstructingBank) NominalFrequencies() []float64 { return slices.Clone(b.grid.Nominal) }

// ExactFrequencies returns the exact centre frequencies of the grid.
func (b *ReconstructingBank) ExactFrequencies() []float64 { return slices.Clone(b.grid.Exact) }

// CutoffFrequencies returns the lower and upper band edges of the grid.
func (b *ReconstructingBank) CutoffFrequencies() (lower, upper []float64) {
	return slices.Clone(b.grid.Cutoff.Lower), slices.Clone(b.grid.Cutoff.Upper)
}

// NumBands returns the number of designed bands.
func (b *ReconstructingBank) NumBands() int { return b.design.NumBands() }

// Bands describes the designed bands, lowest first.
func (b *ReconstructingBank) Bands() []Band { return bandsOf(b.grid, b.design.grid) }

// Design returns the filter taps.
func (b *ReconstructingBank) Design() *ReconstructingDesign { return b.design }

// Diagnostics returns the bands that were skipped.
func (b *ReconstructingBank) Diagnostics() []Diagnostic { return b.design.Diagnostics() }

func (b *ReconstructingBank) String() string {
	return fmt.Sprintf("Amplitude-preserving 1/%d-octave filter bank with %d bands between %g and %g Hz with %g Hz sampling rate",
		b.params.NumFractions, b.NumBands(), b.params.FrequencyRange[0], b.params.FrequencyRange[1], b.params.SampleRate)
}

// Comment is attached to processed signals.
func (b *ReconstructingBank) Comment() string {
	return fmt.Sprintf("Reconstructing linear phase fractional octave filter bank."+
		"(num_fractions=%d, frequency_range=(%g, %g), overlap=%g, slope=%d)",
		b.params.NumFractions, b.params.FrequencyRange[0], b.params.FrequencyRange[1], b.params.Overlap, b.params.Slope)
}

// Equal reports whether both banks have the same parameters and taps.
func (b *ReconstructingBank) Equal(other *ReconstructingBank) bool {
	if b == nil || other == nil {
		return b == other
	}

	return b.params.equal(other.params) && b.design.equal(other.design)
}

// Process convolves every channel of in with every band. The result has
// one channel per band and input channel with shape (bands, in.Shape()...)
// and the length of the input.
func (b *ReconstructingBank) Process(in *signal.Signal) (*signal.Signal, error) {
	if err := checkInput(in, b.params.SampleRate, b.NumBands()); err != nil {
		return nil, err
	}

	out := make([][]float64, 0, b.NumBands()*in.NumChannels())

	for band, taps := range b.design.taps {
		f := fir.New(taps)

		for ch := range in.NumChannels() {
			y, err := f.Apply(in.Channel(ch))
			if err != nil {
				return nil, fmt.Errorf("bank: band %d: %w", band, err)
			}

			out = append(out, y)
		}
	}

	return stack(out, in, b.NumBands(), b.Comment())
}
