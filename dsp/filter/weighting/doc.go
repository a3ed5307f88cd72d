// Package weighting provides the A, B, C and Z frequency weightings of
// IEC 61672.
//
// [Design] builds a weighting as biquad sections by mapping the analog
// network through the bilinear transform of package iir. [Correction]
// evaluates the analog curve directly, which is how weighted levels are
// formed from fractional-octave band levels: the correction at each band
// centre is added to the unweighted band level.
//
// All curves are normalized to 0 dB at 1 kHz.
package weighting
