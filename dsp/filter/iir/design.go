package iir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
)

// BandType selects the frequency transformation applied to a prototype.
type BandType int

const (
	Lowpass BandType = iota
	Highpass
	Bandpass
	Bandstop
)

func (b BandType) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("BandType(%d)", int(b))
	}
}

// ParseBandType accepts the names returned by [BandType.String].
func ParseBandType(name string) (BandType, error) {
	for _, b := range []BandType{Lowpass, Highpass, Bandpass, Bandstop} {
		if b.String() == name {
			return b, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidBandType, name)
}

// numEdges is the number of critical frequencies b expects.
func (b BandType) numEdges() int {
	if b == Bandpass || b == Bandstop {
		return 2
	}

	return 1
}

// DesignZPK maps the analog lowpass prototype proto onto a digital filter
// of band type btype. freqs holds the edge frequency (lowpass, highpass) or
// the lower and upper band edges (bandpass, bandstop) in Hz; fs is the
// sample rate in Hz.
func DesignZPK(proto ZPK, btype BandType, freqs []float64, fs float64) (ZPK, error) {
	if btype < Lowpass || btype > Bandstop {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidBandType, int(btype))
	}

	if len(freqs) != btype.numEdges() {
		return ZPK{}, fmt.Errorf("%w: %s needs %d frequencies, got %d",
			ErrInvalidBandType, btype, btype.numEdges(), len(freqs))
	}

	if !(fs > 0) || math.IsInf(fs, 0) {
		return ZPK{}, fmt.Errorf("%w: sample rate %v", ErrInvalidFrequency, fs)
	}

	warped := make([]float64, len(freqs))
	for i, f := range freqs {
		wn := 2 * f / fs
		if !(wn > 0 && wn < 1) {
			return ZPK{}, fmt.Errorf("%w: %v Hz at fs=%v Hz", ErrInvalidFrequency, f, fs)
		}

		// pre-warp for a bilinear transform at fs = 2
		warped[i] = 4 * math.Tan(math.Pi*wn/2)
	}

	var analog ZPK

	switch btype {
	case Lowpass:
		analog = proto.LowpassToLowpass(warped[0])
	case Highpass:
		analog = proto.LowpassToHighpass(warped[0])
	default:
		if warped[0] >= warped[1] {
			return ZPK{}, fmt.Errorf("%w: band edges %v Hz and %v Hz are not increasing",
				ErrInvalidFrequency, freqs[0], freqs[1])
		}

		bw := warped[1] - warped[0]
		wo := math.Sqrt(warped[0] * warped[1])

		if btype == Bandpass {
			analog = proto.LowpassToBandpass(wo, bw)
		} else {
			analog = proto.LowpassToBandstop(wo, bw)
		}
	}

	return analog.Bilinear(2), nil
}

// Design is [DesignZPK] followed by [ZPK.ToSections].
func Design(proto ZPK, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	zpk, err := DesignZPK(proto, btype, freqs, fs)
	if err != nil {
		return nil, err
	}

	return zpk.ToSections()
}

// Butterworth designs a digital Butterworth filter. A bandpass or bandstop
// design has twice the prototype order.
func Butterworth(order int, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	proto, err := ButterworthPrototype(order)
	if err != nil {
		return nil, err
	}

	return Design(proto, btype, freqs, fs)
}

// Chebyshev1 designs a digital Chebyshev type I filter with rippleDB of
// passband ripple.
func Chebyshev1(order int, rippleDB float64, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	proto, err := Chebyshev1Prototype(order, rippleDB)
	if err != nil {
		return nil, err
	}

	return Design(proto, btype, freqs, fs)
}

// Chebyshev2 designs a digital Chebyshev type II filter. freqs are the
// stopband edges.
func Chebyshev2(order int, attenuationDB float64, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	proto, err := Chebyshev2Prototype(order, attenuationDB)
	if err != nil {
		return nil, err
	}

	return Design(proto, btype, freqs, fs)
}

// Elliptic designs a digital elliptic filter.
func Elliptic(order int, rippleDB, attenuationDB float64, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	proto, err := EllipticPrototype(order, rippleDB, attenuationDB)
	if err != nil {
		return nil, err
	}

	return Design(proto, btype, freqs, fs)
}

// Bessel designs a digital Bessel filter.
func Bessel(order int, norm BesselNorm, btype BandType, freqs []float64, fs float64) ([]biquad.Coefficients, error) {
	proto, err := BesselPrototype(order, norm)
	if err != nil {
		return nil, err
	}

	return Design(proto, btype, freqs, fs)
}
