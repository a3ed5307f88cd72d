package fft

import "errors"

var (
	// ErrInvalidNorm reports an unknown normalisation or one that does not
	// exist for the requested spectrum type.
	ErrInvalidNorm = errors.New("fft: invalid normalization")

	// ErrWindowLength reports a window whose length differs from the
	// number of time samples.
	ErrWindowLength = errors.New("fft: window length mismatch")

	// ErrInvalidLength reports a non-positive transform length.
	ErrInvalidLength = errors.New("fft: invalid length")
)
