package signal

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Signal is a multi-channel, real-valued time signal.
type Signal struct {
	data       [][]float64
	sampleRate float64
	shape      []int
	norm       fft.Norm
	comment    string
}

// Option configures New.
type Option func(*Signal)

// WithShape sets the logical channel shape. The product of its entries must
// equal the number of channels.
func WithShape(shape ...int) Option {
	return func(s *Signal) {
		s.shape = slices.Clone(shape)
	}
}

// WithNorm sets the normalisation used by Spectrum.
func WithNorm(norm fft.Norm) Option {
	return func(s *Signal) {
		s.norm = norm
	}
}

// WithComment attaches a free-form description.
func WithComment(comment string) Option {
	return func(s *Signal) {
		s.comment = comment
	}
}

// New wraps channel data. The rows are copied.
func New(data [][]float64, sampleRate float64, opts ...Option) (*Signal, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmpty
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	s := &Signal{
		data:       make([][]float64, len(data)),
		sampleRate: sampleRate,
		shape:      []int{len(data)},
	}

	n := len(data[0])
	for i, ch := range data {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrShape, i, len(ch), n)
		}

		s.data[i] = slices.Clone(ch)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if prod(s.shape) != len(data) {
		return nil, fmt.Errorf("%w: cshape %v does not hold %d channels", ErrShape, s.shape, len(data))
	}

	return s, nil
}

// NewMono wraps a single channel.
func NewMono(samples []float64, sampleRate float64, opts ...Option) (*Signal, error) {
	return New([][]float64{samples}, sampleRate, opts...)
}

// SampleRate returns the sampling rate in Hz.
func (s *Signal) SampleRate() float64 { return s.sampleRate }

// NumSamples returns the number of samples per channel.
func (s *Signal) NumSamples() int { return len(s.data[0]) }

// NumChannels returns the flat channel count.
func (s *Signal) NumChannels() int { return len(s.data) }

// Shape returns a copy of the channel shape.
func (s *Signal) Shape() []int { return slices.Clone(s.shape) }

// Norm returns the FFT normalisation used by Spectrum.
func (s *Signal) Norm() fft.Norm { return s.norm }

// Comment returns the attached description.
func (s *Signal) Comment() string { return s.comment }

// Channel returns channel i. The slice aliases the signal's storage.
func (s *Signal) Channel(i int) []float64 { return s.data[i] }

// Data returns a deep copy of all channels.
func (s *Signal) Data() [][]float64 {
	out := make([][]float64, len(s.data))
	for i, ch := range s.data {
		out[i] = slices.Clone(ch)
	}

	return out
}

// Copy returns an independent copy of s.
func (s *Signal) Copy() *Signal {
	return &Signal{
		data:       s.Data(),
		sampleRate: s.sampleRate,
		shape:      slices.Clone(s.shape),
		norm:       s.norm,
		comment:    s.comment,
	}
}

// Times returns the sampling instants in seconds.
func (s *Signal) Times() []float64 {
	t := make([]float64, s.NumSamples())
	for i := range t {
		t[i] = float64(i) / s.sampleRate
	}

	return t
}

// Frequencies returns the single-sided bin frequencies of Spectrum.
func (s *Signal) Frequencies() []float64 {
	return fft.RFFTFreq(s.NumSamples(), s.sampleRate)
}

// Spectrum returns the single-sided spectrum of every channel, normalised
// with the signal's Norm.
func (s *Signal) Spectrum() ([][]complex128, error) {
	out := make([][]complex128, len(s.data))
	for i, ch := range s.data {
		spec, err := fft.RFFT(ch, len(ch), s.sampleRate, s.norm)
		if err != nil {
			return nil, fmt.Errorf("signal: channel %d: %w", i, err)
		}

		out[i] = spec
	}

	return out, nil
}

// Sum adds all channels sample by sample and returns a mono signal.
func (s *Signal) Sum() *Signal {
	out := make([]float64, s.NumSamples())
	for _, ch := range s.data {
		floats.Add(out, ch)
	}

	return &Signal{
		data:       [][]float64{out},
		sampleRate: s.sampleRate,
		shape:      []int{1},
		norm:       s.norm,
	}
}

// RMS returns the root-mean-square value of every channel.
func (s *Signal) RMS() []float64 {
	out := make([]float64, len(s.data))
	for i, ch := range s.data {
		out[i] = math.Sqrt(floats.Dot(ch, ch) / float64(len(ch)))
	}

	return out
}

// Peak returns the largest absolute sample over all channels.
func (s *Signal) Peak() float64 {
	peak := 0.0
	for _, ch := range s.data {
		peak = math.Max(peak, math.Max(floats.Max(ch), -floats.Min(ch)))
	}

	return peak
}

// Equal reports whether two signals hold identical samples and metadata.
func (s *Signal) Equal(other *Signal) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.sampleRate != other.sampleRate || s.norm != other.norm || !slices.Equal(s.shape, other.shape) {
		return false
	}

	return slices.EqualFunc(s.data, other.data, func(a, b []float64) bool {
		return slices.Equal(a, b)
	})
}

func prod(shape []int) int {
	p := 1
	for _, d := range shape {
		p *= d
	}

	return p
}
