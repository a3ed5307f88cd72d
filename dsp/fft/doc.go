// Package fft provides real and complex discrete Fourier transforms with
// the spectrum normalisations used in acoustics.
//
// Forward transforms follow the numpy sign and scaling convention:
//
//	X[k] = sum_n x[n] * exp(-2*pi*i*k*n/N)
//
// and the inverse carries the 1/N factor, so RFFT and IRFFT with NormNone
// are exact inverses. The other normalisations scale single-sided spectra so
// that bin magnitudes read as amplitudes (NormAmplitude), RMS values
// (NormRMS), powers (NormPower) or power spectral densities (NormPSD).
//
// Power-of-two lengths run on algo-fft plans; all other lengths fall back
// to gonum's mixed-radix transforms.
package fft
