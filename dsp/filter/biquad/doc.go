// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections are
// cascaded via [Chain] for higher-order filters.
//
// Coefficients convert to and from the six-element second-order-section
// layout [b0, b1, b2, a0, a1, a2] used by filter-design tools, see
// [FromSOS] and [Coefficients.SOS].
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/iir and dsp/filter/design.
package biquad
