// Package crossover provides Linkwitz-Riley crossover networks for splitting
// an audio signal into frequency bands.
//
// A Linkwitz-Riley filter of order 2N is a Butterworth filter of order N
// applied twice. Lowpass and highpass meet at -6.02 dB and their sum is an
// allpass, so the bands add back to a phase-shifted copy of the input.
//
// [Crossover] is a two-way network. [MultiBand] splits into N+1 bands at N
// frequencies and compensates the lower bands with the allpass of every
// higher crossover, which keeps the summed magnitude flat for any spacing.
//
// Example:
//
//	xo, _ := crossover.New(1000, 4, 48000) // LR4 at 1 kHz
//	lo, hi := xo.ProcessSample(inputSample)
//	sum := lo + hi // allpass-filtered input
package crossover
