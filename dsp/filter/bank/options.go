package bank

import (
	"log/slog"
	"slices"
)

const (
	defaultFractions  = 1
	defaultSampleRate = 44100.0

	defaultEnergyOrder = 14

	defaultOverlap  = 1.0
	defaultSlope    = 0
	defaultNSamples = 1 << 12
)

var (
	defaultEnergyRange         = []float64{20, 20000}
	defaultReconstructingRange = []float64{63, 16000}
)

type bankConfig struct {
	fractions  int
	sampleRate float64
	freqRange  []float64
	order      int
	overlap    float64
	slope      int
	nSamples   int
	logger     *slog.Logger
}

func defaultEnergyConfig() bankConfig {
	return bankConfig{
		fractions:  defaultFractions,
		sampleRate: defaultSampleRate,
		freqRange:  slices.Clone(defaultEnergyRange),
		order:      defaultEnergyOrder,
	}
}

func defaultReconstructingConfig() bankConfig {
	return bankConfig{
		fractions:  defaultFractions,
		sampleRate: defaultSampleRate,
		freqRange:  slices.Clone(defaultReconstructingRange),
		overlap:    defaultOverlap,
		slope:      defaultSlope,
		nSamples:   defaultNSamples,
	}
}

func (cfg *bankConfig) apply(opts []Option) {
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
}

// Option configures a filter bank. Values are validated when the bank is
// designed, not when the option is applied.
type Option func(*bankConfig)

// WithFractions sets the number of bands per octave (1 for octave bands,
// 3 for third-octave bands, ...).
func WithFractions(n int) Option {
	return func(cfg *bankConfig) { cfg.fractions = n }
}

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(fs float64) Option {
	return func(cfg *bankConfig) { cfg.sampleRate = fs }
}

// WithFrequencyRange sets the lower and upper frequency limits in Hz.
// Exactly two values are expected.
func WithFrequencyRange(limits ...float64) Option {
	return func(cfg *bankConfig) { cfg.freqRange = slices.Clone(limits) }
}

// WithOrder sets the Butterworth order of an energy-preserving bank.
func WithOrder(n int) Option {
	return func(cfg *bankConfig) { cfg.order = n }
}

// WithOverlap sets the crossover overlap of a reconstructing bank, in [0, 1].
func WithOverlap(v float64) Option {
	return func(cfg *bankConfig) { cfg.overlap = v }
}

// WithSlope sets how many times the crossover ramps of a reconstructing
// bank are sine-warped.
func WithSlope(n int) Option {
	return func(cfg *bankConfig) { cfg.slope = n }
}

// WithSamples sets the FIR length of a reconstructing bank.
func WithSamples(n int) Option {
	return func(cfg *bankConfig) { cfg.nSamples = n }
}

// WithLogger sets the logger that receives design diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *bankConfig) { cfg.logger = logger }
}
