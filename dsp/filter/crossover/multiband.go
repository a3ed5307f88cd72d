package crossover

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-acoustics/dsp/signal"
)

// MultiBand splits a signal into N+1 bands at N crossover frequencies.
//
// Stage i splits the highpass remainder of stage i-1. Band i is then
// passed through the allpass of every stage above i+1, so that all bands
// share the same phase and sum to the product of the stage allpasses.
type MultiBand struct {
	stages []*Crossover
	comp   [][]*Crossover
	freqs  []float64
	order  int
}

// NewMultiBand creates a multi-way crossover. Frequencies must be strictly
// ascending and inside (0, sampleRate/2). The order applies to every stage.
func NewMultiBand(freqs []float64, order int, sampleRate float64) (*MultiBand, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: at least one frequency is required", ErrInvalidFrequency)
	}

	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return nil, fmt.Errorf("%w: frequencies must be strictly ascending, got %g after %g",
				ErrInvalidFrequency, freqs[i], freqs[i-1])
		}
	}

	m := &MultiBand{
		stages: make([]*Crossover, len(freqs)),
		comp:   make([][]*Crossover, len(freqs)+1),
		freqs:  append([]float64(nil), freqs...),
		order:  order,
	}

	for i, f := range freqs {
		xo, err := New(f, order, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("crossover: stage %d: %w", i, err)
		}

		m.stages[i] = xo
	}

	for band := range m.comp {
		for j := band + 1; j < len(freqs); j++ {
			ap, err := New(freqs[j], order, sampleRate)
			if err != nil {
				return nil, err
			}

			m.comp[band] = append(m.comp[band], ap)
		}
	}

	return m, nil
}

// NumBands returns the number of output bands.
func (m *MultiBand) NumBands() int { return len(m.stages) + 1 }

// Stages returns the two-way splitting stages.
func (m *MultiBand) Stages() []*Crossover { return m.stages }

// Frequencies returns the crossover frequencies in Hz.
func (m *MultiBand) Frequencies() []float64 { return append([]float64(nil), m.freqs...) }

// Order returns the Linkwitz-Riley order of every stage.
func (m *MultiBand) Order() int { return m.order }

// SampleRate returns the sampling rate in Hz.
func (m *MultiBand) SampleRate() float64 { return m.stages[0].sampleRate }

// Comment describes the network, e.g. for processed signals.
func (m *MultiBand) Comment() string {
	parts := make([]string, len(m.freqs))
	for i, f := range m.freqs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}

	return fmt.Sprintf("Linkwitz-Riley cross over network of order %d at %s Hz.", m.order, strings.Join(parts, ", "))
}

// ProcessSample filters one input sample and returns the band outputs,
// lowest band first.
func (m *MultiBand) ProcessSample(x float64) []float64 {
	out := make([]float64, m.NumBands())

	remainder := x
	for i, stage := range m.stages {
		out[i], remainder = stage.ProcessSample(remainder)
	}

	out[len(m.stages)] = remainder

	for band, aps := range m.comp {
		for _, ap := range aps {
			out[band] = ap.allpass(out[band])
		}
	}

	return out
}

// ProcessBlock filters input and returns one block per band.
func (m *MultiBand) ProcessBlock(input []float64) [][]float64 {
	out := make([][]float64, m.NumBands())
	for i := range out {
		out[i] = make([]float64, len(input))
	}

	for i, x := range input {
		for b, y := range m.ProcessSample(x) {
			out[b][i] = y
		}
	}

	return out
}

// Response returns the complex response of every band at freqHz.
func (m *MultiBand) Response(freqHz float64) []complex128 {
	out := make([]complex128, m.NumBands())

	through := complex(1, 0)
	for i, stage := range m.stages {
		lo, hi := stage.Response(freqHz)
		out[i] = through * lo
		through *= hi
	}

	out[len(m.stages)] = through

	for band, aps := range m.comp {
		for _, ap := range aps {
			lo, hi := ap.Response(freqHz)
			out[band] *= lo + hi
		}
	}

	return out
}

// Reset clears all filter states.
func (m *MultiBand) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}

	for _, aps := range m.comp {
		for _, ap := range aps {
			ap.Reset()
		}
	}
}

// Split filters every channel of in from a cleared state. The result has
// shape (bands, in.Shape()...).
func (m *MultiBand) Split(in *signal.Signal) (*signal.Signal, error) {
	if in == nil {
		return nil, fmt.Errorf("crossover: nil signal")
	}

	if in.SampleRate() != m.SampleRate() {
		return nil, fmt.Errorf("%w: signal has %g Hz, network has %g Hz",
			ErrInvalidFrequency, in.SampleRate(), m.SampleRate())
	}

	nCh := in.NumChannels()
	data := make([][]float64, m.NumBands()*nCh)

	for ch := range nCh {
		m.Reset()

		for b, y := range m.ProcessBlock(in.Channel(ch)) {
			data[b*nCh+ch] = y
		}
	}

	m.Reset()

	shape := append([]int{m.NumBands()}, in.Shape()...)

	out, err := signal.New(data, in.SampleRate(),
		signal.WithShape(shape...),
		signal.WithNorm(in.Norm()),
		signal.WithComment(m.Comment()),
	)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}

	return out, nil
}
