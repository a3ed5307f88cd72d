// Package fir provides finite-impulse-response filter runtime primitives.
//
// [Filter] is a streaming direct-form filter that keeps its delay line
// between calls. [Convolve] applies taps to a complete block in one pass
// using fast convolution, which is the efficient choice for long filters
// such as the reconstructing filter bank's kernels.
package fir
