// Package signal provides the multi-channel time-domain container exchanged
// between filters, file I/O and spectral analysis, along with deterministic
// test-signal generators.
//
// A Signal stores its channels as equally long rows. The channel shape
// (cshape) describes how the flat list of rows is arranged logically, e.g.
// a filter bank applied to a stereo signal yields cshape (bands, 2).
package signal
