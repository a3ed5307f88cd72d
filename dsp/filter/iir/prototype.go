package iir

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ButterworthPrototype returns the analog Butterworth lowpass of order n
// with its -3 dB point at 1 rad/s.
func ButterworthPrototype(n int) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		poles = append(poles, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}

	return ZPK{Poles: poles, Gain: 1}, nil
}

// Chebyshev1Prototype returns the analog Chebyshev type I lowpass of order
// n with rippleDB of passband ripple; the passband ends at 1 rad/s.
func Chebyshev1Prototype(n int, rippleDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}

	if rippleDB <= 0 {
		return ZPK{}, fmt.Errorf("%w: passband ripple %v dB", ErrInvalidRipple, rippleDB)
	}

	eps := math.Sqrt(math.Pow(10, 0.1*rippleDB) - 1)
	mu := math.Asinh(1/eps) / float64(n)

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		theta := math.Pi * float64(m) / float64(2*n)
		poles = append(poles, -cmplx.Sinh(complex(mu, theta)))
	}

	gain := real(prodNeg(poles))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + eps*eps)
	}

	return ZPK{Poles: poles, Gain: gain}, nil
}

// Chebyshev2Prototype returns the analog Chebyshev type II lowpass of order
// n whose stopband, attenuated by at least attenuationDB, begins at 1 rad/s.
func Chebyshev2Prototype(n int, attenuationDB float64) (ZPK, error) {
	if n < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}

	if attenuationDB <= 0 {
		return ZPK{}, fmt.Errorf("%w: stopband attenuation %v dB", ErrInvalidRipple, attenuationDB)
	}

	de := 1 / math.Sqrt(math.Pow(10, 0.1*attenuationDB)-1)
	mu := math.Asinh(1/de) / float64(n)

	zeros := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		if m == 0 {
			continue
		}

		zeros = append(zeros, -cmplx.Conj(complex(0, 1)/complex(math.Sin(float64(m)*math.Pi/float64(2*n)), 0)))
	}

	poles := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		b := -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n)))
		warped := complex(math.Sinh(mu)*real(b), math.Cosh(mu)*imag(b))
		poles = append(poles, 1/warped)
	}

	return ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  real(prodNeg(poles) / prodNeg(zeros)),
	}, nil
}

// BesselNorm selects the frequency normalisation of a Bessel prototype.
type BesselNorm int

const (
	// BesselPhase places the phase midpoint at 1 rad/s; the high-frequency
	// asymptote then matches a Butterworth filter of the same order.
	BesselPhase BesselNorm = iota
	// BesselDelay gives a group delay of 1 s at DC.
	BesselDelay
	// BesselMag places the -3 dB point at 1 rad/s.
	BesselMag
)

// ParseBesselNorm resolves "phase", "delay" or "mag".
func ParseBesselNorm(name string) (BesselNorm, error) {
	switch name {
	case "phase":
		return BesselPhase, nil
	case "delay":
		return BesselDelay, nil
	case "mag":
		return BesselMag, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidNorm, name)
}

const maxBesselOrder = 10

// BesselPrototype returns the analog Bessel (Thomson) lowpass of order n
// (1..10) with unity DC gain.
func BesselPrototype(n int, norm BesselNorm) (ZPK, error) {
	if n < 1 || n > maxBesselOrder {
		return ZPK{}, fmt.Errorf("%w: %d (Bessel supports 1..%d)", ErrInvalidOrder, n, maxBesselOrder)
	}

	poles := make([]complex128, 0, n)
	for _, p := range besselDelayPoles[n] {
		poles = append(poles, p)
		if imag(p) != 0 {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	var scale float64

	switch norm {
	case BesselDelay:
		scale = 1
	case BesselMag:
		// measured on the tabulated poles so the rounding of the table
		// does not move the -3 dB point
		scale = 1 / besselCutoff(poles)
	case BesselPhase:
		scale = math.Pow(besselConstantTerm(n), -1/float64(n))
	default:
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidNorm, int(norm))
	}

	for i := range poles {
		poles[i] *= complex(scale, 0)
	}

	return ZPK{Poles: poles, Gain: real(prodNeg(poles))}, nil
}

// besselConstantTerm is (2n)! / (n! 2^n), the constant coefficient of the
// reverse Bessel polynomial.
func besselConstantTerm(n int) float64 {
	v := 1.0
	for k := n + 1; k <= 2*n; k++ {
		v *= float64(k)
	}

	return v / math.Ldexp(1, n)
}

// besselDelayPoles holds the delay-normalised Bessel poles, one per
// conjugate pair (positive imaginary part) plus the real pole of odd orders.
//
// Source: C.R. Bond, "Bessel Filter Constants".
var besselDelayPoles = [maxBesselOrder + 1][]complex128{
	{},
	{complex(-1.0, 0)},
	{complex(-1.5, 0.8660254038)},
	{complex(-1.8389073227, 1.7543809598), complex(-2.3221853546, 0)},
	{complex(-2.1037893972, 2.6574180419), complex(-2.8962106028, 0.8672341289)},
	{
		complex(-2.3246743032, 3.5710229203),
		complex(-3.3519563992, 1.7426614162),
		complex(-3.6467385953, 0),
	},
	{
		complex(-2.5159322478, 4.4926729537),
		complex(-3.7357083563, 2.6262723114),
		complex(-4.2483593959, 0.8675096732),
	},
	{
		complex(-2.6856768789, 5.4206941307),
		complex(-4.0701391636, 3.5171740477),
		complex(-4.7582905282, 1.7392860613),
		complex(-4.9717868585, 0),
	},
	{
		complex(-2.8389839177, 6.3539112470),
		complex(-4.3682892668, 4.4144425006),
		complex(-5.2048407906, 2.6161751538),
		complex(-5.5878860022, 0.8676144454),
	},
	{
		complex(-2.9792607983, 7.2914651564),
		complex(-4.6384398714, 5.3172716754),
		complex(-5.6044218195, 3.4981415816),
		complex(-6.1293679040, 1.7378483835),
		complex(-6.2970079817, 0),
	},
	{
		complex(-3.1088931555, 8.2324678728),
		complex(-4.8862195924, 6.2249854825),
		complex(-5.9675283089, 4.3849471924),
		complex(-6.6152909655, 2.6115679208),
		complex(-6.9220449048, 0.8676594792),
	},
}

// besselCutoff returns the -3 dB frequency in rad/s of the lowpass with
// the given poles and unity DC gain. The response is monotone, so the
// half-power point is bracketed and bisected.
func besselCutoff(poles []complex128) float64 {
	dc := 1.0
	for _, p := range poles {
		dc *= real(p * cmplx.Conj(p))
	}

	mag2 := func(w float64) float64 {
		g := dc
		for _, p := range poles {
			d := complex(0, w) - p
			g /= real(d * cmplx.Conj(d))
		}

		return g
	}

	lo, hi := 0.0, 1.0
	for mag2(hi) > 0.5 {
		lo, hi = hi, 2*hi
	}

	for range 200 {
		mid := (lo + hi) / 2
		if mid <= lo || mid >= hi {
			break
		}

		if mag2(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2
}
