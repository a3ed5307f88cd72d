package biquad

import (
	"errors"
	"fmt"
)

// ErrInvalidSOS reports a second-order section with a zero leading
// denominator coefficient.
var ErrInvalidSOS = errors.New("biquad: a0 must be non-zero")

// FromSOS converts [b0, b1, b2, a0, a1, a2] into Coefficients, dividing
// every term by a0.
func FromSOS(sos [6]float64) (Coefficients, error) {
	a0 := sos[3]
	if a0 == 0 {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrInvalidSOS, sos)
	}

	return Coefficients{
		B0: sos[0] / a0,
		B1: sos[1] / a0,
		B2: sos[2] / a0,
		A1: sos[4] / a0,
		A2: sos[5] / a0,
	}, nil
}

// SOS returns c in [b0, b1, b2, 1, a1, a2] layout.
func (c Coefficients) SOS() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, 1, c.A1, c.A2}
}

// FromSOSMatrix converts rows of [b0, b1, b2, a0, a1, a2].
func FromSOSMatrix(rows [][6]float64) ([]Coefficients, error) {
	out := make([]Coefficients, len(rows))
	for i, row := range rows {
		c, err := FromSOS(row)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}

		out[i] = c
	}

	return out, nil
}

// SOSMatrix converts a cascade into rows of [b0, b1, b2, 1, a1, a2].
func SOSMatrix(coeffs []Coefficients) [][6]float64 {
	out := make([][6]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = c.SOS()
	}

	return out
}

// ExtendSections pads coeffs with pass-through sections up to n sections.
// Cascades that already have n or more sections are returned unchanged.
func ExtendSections(coeffs []Coefficients, n int) []Coefficients {
	out := append([]Coefficients(nil), coeffs...)
	for len(out) < n {
		out = append(out, Passthrough())
	}

	return out
}
