// Package iir designs digital IIR filters in zero/pole/gain form and
// converts them into cascades of biquad sections.
//
// Design proceeds in three steps, each exposed on its own:
//
//  1. An analog lowpass prototype with cutoff 1 rad/s
//     ([ButterworthPrototype], [Chebyshev1Prototype], [Chebyshev2Prototype],
//     [EllipticPrototype], [BesselPrototype]).
//  2. A frequency transformation to the target band
//     ([ZPK.LowpassToLowpass], [ZPK.LowpassToHighpass],
//     [ZPK.LowpassToBandpass], [ZPK.LowpassToBandstop]) at pre-warped edge
//     frequencies.
//  3. The bilinear transform ([ZPK.Bilinear]) and pairing of poles and
//     zeros into second-order sections ([ZPK.ToSections]).
//
// Pairing matches every pole pair, starting with the one closest to the
// unit circle, with its nearest zeros and orders the sections so that the
// poles closest to the unit circle come last. The overall gain is applied
// to the first section. The result agrees with the second-order-section
// output of common scientific design tools, so coefficient tables can be
// compared directly.
package iir
