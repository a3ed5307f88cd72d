package design

import "errors"

var (
	ErrInvalidFrequency = errors.New("design: frequency must be in (0, Nyquist)")
	ErrInvalidQ         = errors.New("design: quality must be positive")
	ErrInvalidOrder     = errors.New("design: unsupported order")
)
