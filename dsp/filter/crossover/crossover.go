package crossover

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-acoustics/dsp/filter/iir"
)

var (
	// ErrInvalidOrder reports an odd or non-positive order.
	ErrInvalidOrder = errors.New("crossover: the order must be a positive even number")

	// ErrInvalidFrequency reports crossover frequencies outside (0, Nyquist)
	// or not strictly ascending.
	ErrInvalidFrequency = errors.New("crossover: invalid crossover frequency")
)

// Crossover is a two-way Linkwitz-Riley crossover network that splits
// an input signal into complementary lowpass and highpass outputs.
//
// For orders 2, 6, 10, ... the highpass polarity is inverted so that the
// outputs always sum to an allpass.
type Crossover struct {
	lp         *biquad.Chain
	hp         *biquad.Chain
	freq       float64
	order      int
	sampleRate float64
}

// New creates a two-way Linkwitz-Riley crossover at freq Hz. order is the
// Linkwitz-Riley order and must be a positive even integer.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if order <= 0 || order%2 != 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidOrder, order)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidFrequency, sampleRate)
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return nil, fmt.Errorf("%w: %v Hz not in (0, %v)", ErrInvalidFrequency, freq, sampleRate/2)
	}

	lp, err := iir.Butterworth(order/2, iir.Lowpass, []float64{freq}, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("crossover: lowpass: %w", err)
	}

	hp, err := iir.Butterworth(order/2, iir.Highpass, []float64{freq}, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("crossover: highpass: %w", err)
	}

	hpSquared := square(hp)
	if order%4 == 2 {
		s := &hpSquared[0]
		s.B0, s.B1, s.B2 = -s.B0, -s.B1, -s.B2
	}

	return &Crossover{
		lp:         biquad.NewChain(square(lp)),
		hp:         biquad.NewChain(hpSquared),
		freq:       freq,
		order:      order,
		sampleRate: sampleRate,
	}, nil
}

func square(sections []biquad.Coefficients) []biquad.Coefficients {
	out := make([]biquad.Coefficients, 0, 2*len(sections))
	out = append(out, sections...)

	return append(out, sections...)
}

// ProcessSample filters one input sample and returns the lowpass and
// highpass outputs.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// ProcessBlock filters input, writing the lowpass output to lo and the
// highpass output to hi. All three slices must have the same length.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	n := len(input)
	if n == 0 {
		return
	}

	_ = lo[n-1]
	_ = hi[n-1]

	c.lp.ProcessBlockTo(lo, input)
	c.hp.ProcessBlockTo(hi, input)
}

// Response returns the complex lowpass and highpass responses at freqHz.
func (c *Crossover) Response(freqHz float64) (lo, hi complex128) {
	return c.lp.Response(freqHz, c.sampleRate), c.hp.Response(freqHz, c.sampleRate)
}

// LP returns the lowpass chain.
func (c *Crossover) LP() *biquad.Chain { return c.lp }

// HP returns the highpass chain, including a polarity inversion for
// orders 2, 6, 10, ...
func (c *Crossover) HP() *biquad.Chain { return c.hp }

func (c *Crossover) Freq() float64       { return c.freq }
func (c *Crossover) Order() int          { return c.order }
func (c *Crossover) SampleRate() float64 { return c.sampleRate }

// Reset clears the filter state of both chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}

// allpass filters one sample through lowpass plus highpass.
func (c *Crossover) allpass(x float64) float64 {
	lo, hi := c.ProcessSample(x)
	return lo + hi
}
