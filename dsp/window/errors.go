package window

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned for non-positive window lengths.
var ErrInvalidLength = errors.New("window: size must be > 0")

var errMismatchedLength = errors.New("samples and coefficients must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}

	return nil
}
