package fir

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-acoustics/dsp/core"
)

// Filter is a direct-form FIR filter with a circular delay line.
type Filter struct {
	taps  []float64
	delay []float64
	pos   int
}

// New creates a filter from the given taps. The taps are copied.
func New(taps []float64) *Filter {
	return &Filter{
		taps:  slices.Clone(taps),
		delay: make([]float64, len(taps)),
	}
}

// ProcessSample returns y[n] = sum_k h[k]*x[n-k].
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.taps)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x

	y := 0.0
	p := f.pos

	for _, h := range f.taps {
		y += h * f.delay[p]
		if p == 0 {
			p = n
		}
		p--
	}

	f.pos = (f.pos + 1) % n

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns len(taps) - 1.
func (f *Filter) Order() int {
	return len(f.taps) - 1
}

// Taps returns a copy of the filter taps.
func (f *Filter) Taps() []float64 {
	return slices.Clone(f.taps)
}

// Response computes H(e^jw) at the given frequency and sample rate.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range f.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}

// MagnitudeDB returns the magnitude response in dB.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
