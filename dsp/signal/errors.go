package signal

import "errors"

var (
	// ErrEmpty is returned for signals without channels or samples.
	ErrEmpty = errors.New("signal: empty data")

	// ErrShape reports channels of unequal length or a channel shape that
	// does not match the channel count.
	ErrShape = errors.New("signal: invalid shape")

	// ErrSampleRate reports a non-positive sampling rate.
	ErrSampleRate = errors.New("signal: invalid sample rate")
)
