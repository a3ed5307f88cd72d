package iir

import "errors"

var (
	// ErrInvalidOrder reports a non-positive or unsupported filter order.
	ErrInvalidOrder = errors.New("iir: invalid order")

	// ErrInvalidFrequency reports critical frequencies outside (0, Nyquist)
	// or band edges in the wrong order.
	ErrInvalidFrequency = errors.New("iir: invalid critical frequency")

	// ErrInvalidBandType reports an unknown band type or a frequency count
	// that does not fit the band type.
	ErrInvalidBandType = errors.New("iir: invalid band type")

	// ErrInvalidRipple reports non-positive ripple or attenuation values.
	ErrInvalidRipple = errors.New("iir: invalid ripple specification")

	// ErrInvalidNorm reports an unknown Bessel normalisation.
	ErrInvalidNorm = errors.New("iir: invalid Bessel normalization")
)
