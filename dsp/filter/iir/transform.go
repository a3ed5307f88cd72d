package iir

import (
	"math"
	"math/cmplx"
)

// LowpassToLowpass moves the cutoff of a lowpass prototype from 1 rad/s to
// wo rad/s.
func (f ZPK) LowpassToLowpass(wo float64) ZPK {
	degree := max(f.Degree(), 0)
	w := complex(wo, 0)

	out := ZPK{
		Zeros: make([]complex128, len(f.Zeros)),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain * math.Pow(wo, float64(degree)),
	}

	for i, z := range f.Zeros {
		out.Zeros[i] = z * w
	}

	for i, p := range f.Poles {
		out.Poles[i] = p * w
	}

	return out
}

// LowpassToHighpass turns a lowpass prototype into a highpass with cutoff
// wo rad/s. Zeros at infinity move to the origin.
func (f ZPK) LowpassToHighpass(wo float64) ZPK {
	degree := max(f.Degree(), 0)
	w := complex(wo, 0)

	out := ZPK{
		Zeros: make([]complex128, 0, len(f.Zeros)+degree),
		Poles: make([]complex128, len(f.Poles)),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}

	for _, z := range f.Zeros {
		out.Zeros = append(out.Zeros, w/z)
	}

	for range degree {
		out.Zeros = append(out.Zeros, 0)
	}

	for i, p := range f.Poles {
		out.Poles[i] = w / p
	}

	return out
}

// LowpassToBandpass turns a lowpass prototype into a bandpass centred at
// wo rad/s with bandwidth bw rad/s. Every root splits into two; zeros at
// infinity contribute zeros at the origin.
func (f ZPK) LowpassToBandpass(wo, bw float64) ZPK {
	degree := max(f.Degree(), 0)
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			out = append(out, r*half+cmplx.Sqrt(r*half*r*half-wo2))
		}

		for _, r := range roots {
			out = append(out, r*half-cmplx.Sqrt(r*half*r*half-wo2))
		}

		return out
	}

	out := ZPK{
		Zeros: split(f.Zeros),
		Poles: split(f.Poles),
		Gain:  f.Gain * math.Pow(bw, float64(degree)),
	}

	for range degree {
		out.Zeros = append(out.Zeros, 0)
	}

	return out
}

// LowpassToBandstop turns a lowpass prototype into a bandstop centred at
// wo rad/s with stopband width bw rad/s. Zeros at infinity move to +-j*wo.
func (f ZPK) LowpassToBandstop(wo, bw float64) ZPK {
	degree := max(f.Degree(), 0)
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			h := half / r
			out = append(out, h+cmplx.Sqrt(h*h-wo2))
		}

		for _, r := range roots {
			h := half / r
			out = append(out, h-cmplx.Sqrt(h*h-wo2))
		}

		return out
	}

	out := ZPK{
		Zeros: split(f.Zeros),
		Poles: split(f.Poles),
		Gain:  f.Gain * real(prodNeg(f.Zeros)/prodNeg(f.Poles)),
	}

	for range degree {
		out.Zeros = append(out.Zeros, complex(0, wo))
	}

	for range degree {
		out.Zeros = append(out.Zeros, complex(0, -wo))
	}

	return out
}

// Bilinear maps an analog ZPK to the z-plane with s = 2*fs*(z-1)/(z+1).
// Zeros at infinity map to z = -1.
func (f ZPK) Bilinear(fs float64) ZPK {
	degree := max(f.Degree(), 0)
	fs2 := complex(2*fs, 0)

	out := ZPK{
		Zeros: make([]complex128, 0, len(f.Zeros)+degree),
		Poles: make([]complex128, len(f.Poles)),
	}

	num, den := complex(1, 0), complex(1, 0)

	for _, z := range f.Zeros {
		out.Zeros = append(out.Zeros, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}

	for range degree {
		out.Zeros = append(out.Zeros, -1)
	}

	for i, p := range f.Poles {
		out.Poles[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}

	out.Gain = f.Gain * real(num/den)

	return out
}
