package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic mono test signals at a fixed sampling
// rate.
type Generator struct {
	sampleRate float64
	seed       int64
	signalOpt  Option
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed sets the random seed used by WhiteNoise.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithSignalOption applies opt to every generated signal.
func WithSignalOption(opt Option) GeneratorOption {
	return func(g *Generator) {
		g.signalOpt = opt
	}
}

// NewGenerator returns a generator for the given sampling rate.
func NewGenerator(sampleRate float64, opts ...GeneratorOption) *Generator {
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the generator's sampling rate.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Impulse returns a unit impulse of nSamples samples delayed by delay
// samples.
func (g *Generator) Impulse(nSamples, delay int) (*Signal, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", nSamples)
	}

	if delay < 0 || delay >= nSamples {
		return nil, fmt.Errorf("impulse delay must be in [0, %d): %d", nSamples, delay)
	}

	data := make([]float64, nSamples)
	data[delay] = 1

	return NewMono(data, g.sampleRate, g.signalOpt)
}

// Sine returns a sine of the given frequency starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, nSamples int) (*Signal, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", nSamples)
	}

	data := make([]float64, nSamples)
	step := 2 * math.Pi * freqHz / g.sampleRate

	for i := range data {
		data[i] = amplitude * math.Sin(step*float64(i))
	}

	return NewMono(data, g.sampleRate, g.signalOpt)
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, nSamples int) (*Signal, error) {
	if nSamples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", nSamples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	rng := rand.New(rand.NewSource(g.seed))

	data := make([]float64, nSamples)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return NewMono(data, g.sampleRate, g.signalOpt)
}

// Normalize scales s so that its peak equals targetPeak.
func Normalize(s *Signal, targetPeak float64) (*Signal, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	out := s.Copy()

	peak := s.Peak()
	if peak == 0 {
		return out, nil
	}

	scale := targetPeak / peak
	for _, ch := range out.data {
		for i := range ch {
			ch[i] *= scale
		}
	}

	return out, nil
}
