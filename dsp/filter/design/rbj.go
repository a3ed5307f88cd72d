package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
)

const shelfQ = 1 / math.Sqrt2

// Bell designs a second-order peaking equalizer with gainDB at freq and
// quality q. DC and Nyquist are left at unity gain.
func Bell(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	if err := checkQ(q); err != nil {
		return biquad.Coefficients{}, err
	}

	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	return normalizeBiquad(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	), nil
}

// LowShelf designs a low shelf of order 1 or 2 with gainDB below freq. The
// gain at freq is half the shelf gain in dB.
func LowShelf(freq, gainDB float64, order int, sampleRate float64) (biquad.Coefficients, error) {
	return shelf(freq, gainDB, order, sampleRate, false)
}

// HighShelf designs a high shelf of order 1 or 2 with gainDB above freq. The
// gain at freq is half the shelf gain in dB.
func HighShelf(freq, gainDB float64, order int, sampleRate float64) (biquad.Coefficients, error) {
	return shelf(freq, gainDB, order, sampleRate, true)
}

func shelf(freq, gainDB float64, order int, sampleRate float64, high bool) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	switch order {
	case 1:
		return firstOrderShelf(w0, gainDB, high), nil
	case 2:
		return secondOrderShelf(w0, gainDB, high), nil
	default:
		return biquad.Coefficients{}, fmt.Errorf("%w: order must be 1 or 2 but is %d", ErrInvalidOrder, order)
	}
}

func secondOrderShelf(w0, gainDB float64, high bool) biquad.Coefficients {
	cw, sw := math.Cos(w0), math.Sin(w0)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * sw / (2 * shelfQ)

	if high {
		return normalizeBiquad(
			a*((a+1)+(a-1)*cw+beta),
			-2*a*((a-1)+(a+1)*cw),
			a*((a+1)+(a-1)*cw-beta),
			(a+1)-(a-1)*cw+beta,
			2*((a-1)-(a+1)*cw),
			(a+1)-(a-1)*cw-beta,
		)
	}

	return normalizeBiquad(
		a*((a+1)-(a-1)*cw+beta),
		2*a*((a-1)-(a+1)*cw),
		a*((a+1)-(a-1)*cw-beta),
		(a+1)+(a-1)*cw+beta,
		-2*((a-1)+(a+1)*cw),
		(a+1)+(a-1)*cw-beta,
	)
}

// firstOrderShelf maps (s + wc*g)/(s + wc/g), g = sqrt(G), through the
// bilinear transform with wc prewarped to w0. The high shelf is
// G*(s + wc/g)/(s + wc*g).
func firstOrderShelf(w0, gainDB float64, high bool) biquad.Coefficients {
	wc := math.Tan(w0 / 2)
	gain := math.Pow(10, gainDB/20)
	g := math.Sqrt(gain)

	if high {
		b0, b1 := bilinear1(gain, gain*wc/g)
		a0, a1 := bilinear1(1, wc*g)

		return normalizeBiquad(b0, b1, 0, a0, a1, 0)
	}

	b0, b1 := bilinear1(1, wc*g)
	a0, a1 := bilinear1(1, wc/g)

	return normalizeBiquad(b0, b1, 0, a0, a1, 0)
}

// bilinear1 maps c1*s + c2 to d0 + d1*z^-1 for s = (1 - z^-1)/(1 + z^-1).
func bilinear1(c1, c2 float64) (d0, d1 float64) {
	return c1 + c2, c2 - c1
}

// Notch designs a second-order notch with a zero at freq and unity gain at
// DC and Nyquist. q is the ratio of freq to the -3 dB bandwidth.
func Notch(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	if err := checkQ(q); err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha), nil
}

// Allpass designs a second-order allpass whose phase passes -180 degrees
// at freq.
func Allpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	if err := checkQ(q); err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1-alpha, -2*cw, 1+alpha, 1+alpha, -2*cw, 1-alpha), nil
}

// FirstOrderAllpass designs a first-order allpass whose phase passes
// -90 degrees at freq.
func FirstOrderAllpass(freq, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	wc := math.Tan(w0 / 2)
	c := (wc - 1) / (wc + 1)

	return biquad.Coefficients{B0: c, B1: 1, A1: c}, nil
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: sample rate %v", ErrInvalidFrequency, sampleRate)
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return 0, fmt.Errorf("%w: %v Hz at %v Hz sampling rate", ErrInvalidFrequency, freq, sampleRate)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func checkQ(q float64) error {
	if !(q > 0) || math.IsInf(q, 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidQ, q)
	}

	return nil
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
