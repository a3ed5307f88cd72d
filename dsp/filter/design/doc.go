// Package design provides audio equalizer biquads: bells, shelves, shelf
// cascades, notches and allpasses.
//
// The second-order designs follow the RBJ audio EQ cookbook. First-order
// shelves and allpasses are bilinear transforms of their analog
// prototypes, prewarped to the given frequency. General lowpass, highpass,
// bandpass and bandstop cascades live in dsp/filter/iir.
package design
