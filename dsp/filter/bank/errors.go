package bank

import "errors"

var (
	// ErrInvalidRange reports a frequency range that is not an increasing
	// pair of positive frequencies.
	ErrInvalidRange = errors.New("bank: invalid frequency range")

	// ErrInvalidParameter reports an out-of-domain design parameter.
	ErrInvalidParameter = errors.New("bank: invalid parameter")

	// ErrSampleRateMismatch is returned by Process when the signal and the
	// bank were built for different sampling rates.
	ErrSampleRateMismatch = errors.New("bank: sample rate mismatch")

	// ErrUnknownBankType reports an unknown bank name.
	ErrUnknownBankType = errors.New("bank: unknown bank type")
)
