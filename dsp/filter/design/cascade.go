package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
)

// LowShelfCascade spreads gainDB over n second-order low shelves placed
// log-uniformly between lower and upper. The result has the full gain below
// lower, unity gain above upper and an approximately constant slope in dB
// per octave in between. n < 1 selects one shelf per started octave.
func LowShelfCascade(lower, upper, gainDB float64, n int, sampleRate float64) ([]biquad.Coefficients, error) {
	return shelfCascade(lower, upper, gainDB, n, sampleRate, false)
}

// HighShelfCascade is the high-shelf counterpart of LowShelfCascade.
func HighShelfCascade(lower, upper, gainDB float64, n int, sampleRate float64) ([]biquad.Coefficients, error) {
	return shelfCascade(lower, upper, gainDB, n, sampleRate, true)
}

func shelfCascade(lower, upper, gainDB float64, n int, sampleRate float64, high bool) ([]biquad.Coefficients, error) {
	if !(lower > 0 && upper > lower) {
		return nil, fmt.Errorf("%w: need 0 < lower < upper, got %v and %v", ErrInvalidFrequency, lower, upper)
	}

	octaves := math.Log2(upper / lower)
	if n < 1 {
		n = max(1, int(math.Ceil(octaves)))
	}

	out := make([]biquad.Coefficients, n)
	for k := range out {
		f := lower * math.Exp2(octaves*(float64(k)+0.5)/float64(n))

		s, err := shelf(f, gainDB/float64(n), 2, sampleRate, high)
		if err != nil {
			return nil, fmt.Errorf("design: shelf %d: %w", k, err)
		}

		out[k] = s
	}

	return out, nil
}
