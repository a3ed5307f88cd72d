package bank

import (
	"fmt"
	"math"
)

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

const referenceFreq = 1000.0

// IEC 61260 nominal mid-band frequencies.
var (
	nominalOctave = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

	nominalThirdOctave = []float64{
		25, 31.5, 40, 50, 63, 80, 100, 125, 160, 200,
		250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000,
		2500, 3150, 4000, 5000, 6300, 8000, 10000, 12500, 16000, 20000,
	}
)

// Cutoff holds the lower and upper -3 dB band edges, one entry per band.
type Cutoff struct {
	Lower []float64
	Upper []float64
}

// Grid is the set of fractional-octave bands covering a frequency range.
// Nominal is empty unless the fraction has a standardised table (1 and 3).
type Grid struct {
	Nominal []float64
	Exact   []float64
	Cutoff  Cutoff
}

// NumBands returns the number of bands in the grid.
func (g *Grid) NumBands() int { return len(g.Exact) }

// Frequencies computes the centre and cutoff frequencies of all 1/numFractions
// octave bands in freqRange = [low, high].
//
// For octave and third-octave bands the IEC 61260 nominal table is used and
// bands are kept when their nominal frequency lies inside the range
// (inclusive). Other fractions are spaced in powers of two around 1 kHz and
// carry no nominal values. The band edges are
//
//	lower = exact * G^(-1/(2b))
//	upper = exact * G^(+1/(2b))
//
// with G = 10^(3/10) and b = numFractions.
func Frequencies(numFractions int, freqRange []float64) (*Grid, error) {
	if err := validateFractions(numFractions); err != nil {
		return nil, err
	}

	low, high, err := validateRange(freqRange)
	if err != nil {
		return nil, err
	}

	g := &Grid{}

	if table := nominalTable(numFractions); table != nil {
		for _, nom := range table {
			if nom < low || nom > high {
				continue
			}

			g.Nominal = append(g.Nominal, nom)
			g.Exact = append(g.Exact, iecExact(nom, numFractions))
		}
	} else {
		g.Nominal = []float64{}
		g.Exact = log2Centers(numFractions, low, high)
	}

	b := float64(numFractions)
	up := math.Pow(octaveRatio, 1/(2*b))
	down := math.Pow(octaveRatio, -1/(2*b))

	g.Cutoff.Lower = make([]float64, len(g.Exact))
	g.Cutoff.Upper = make([]float64, len(g.Exact))

	for i, f := range g.Exact {
		g.Cutoff.Lower[i] = f * down
		g.Cutoff.Upper[i] = f * up
	}

	return g, nil
}

// CenterFrequencies returns only the nominal and exact centre frequencies.
func CenterFrequencies(numFractions int, freqRange []float64) (nominal, exact []float64, err error) {
	g, err := Frequencies(numFractions, freqRange)
	if err != nil {
		return nil, nil, err
	}

	return g.Nominal, g.Exact, nil
}

// NominalFrequencies returns the IEC 61260 nominal frequencies inside
// freqRange. Only octave and third-octave bands have nominal values.
func NominalFrequencies(numFractions int, freqRange []float64) ([]float64, error) {
	if nominalTable(numFractions) == nil {
		return nil, fmt.Errorf("%w: number of fractions can only be 1 or 3 for nominal frequencies, got %d",
			ErrInvalidParameter, numFractions)
	}

	nominal, _, err := CenterFrequencies(numFractions, freqRange)

	return nominal, err
}

func nominalTable(numFractions int) []float64 {
	switch numFractions {
	case 1:
		return nominalOctave
	case 3:
		return nominalThirdOctave
	default:
		return nil
	}
}

// iecExact maps a nominal frequency to the exact base-10 mid-band
// frequency. Even fractions sit on half indices so that 1 kHz is a band
// edge rather than a centre.
func iecExact(nominal float64, numFractions int) float64 {
	b := float64(numFractions)
	x := math.Log(nominal/referenceFreq) / math.Log(octaveRatio)

	var exponent float64
	if numFractions%2 == 1 {
		exponent = math.RoundToEven(b*x) / b
	} else {
		idx := math.RoundToEven(2*b*x-1) / 2
		exponent = (2*idx + 1) / (2 * b)
	}

	return referenceFreq * math.Pow(octaveRatio, exponent)
}

// log2Centers spaces centres at 2^(i/b) around 1 kHz.
func log2Centers(numFractions int, low, high float64) []float64 {
	b := float64(numFractions)
	first := -int(math.RoundToEven(b * math.Log2(referenceFreq/low)))
	last := int(math.RoundToEven(b * math.Log2(high/referenceFreq)))

	exact := make([]float64, 0, max(last-first+1, 0))
	for i := first; i <= last; i++ {
		exact = append(exact, referenceFreq*math.Pow(2, float64(i)/b))
	}

	return exact
}

func validateFractions(numFractions int) error {
	if numFractions < 1 {
		return fmt.Errorf("%w: number of fractions must be at least 1, got %d", ErrInvalidParameter, numFractions)
	}

	return nil
}

func validateRange(freqRange []float64) (low, high float64, err error) {
	if len(freqRange) != 2 {
		return 0, 0, fmt.Errorf("%w: you need to specify a lower and upper limit frequency, got %v",
			ErrInvalidRange, freqRange)
	}

	low, high = freqRange[0], freqRange[1]

	if !(low > 0) || math.IsInf(high, 0) || math.IsNaN(high) {
		return 0, 0, fmt.Errorf("%w: limits must be positive and finite, got %v", ErrInvalidRange, freqRange)
	}

	if low > high {
		return 0, 0, fmt.Errorf("%w: the second frequency needs to be higher than the first, got %v",
			ErrInvalidRange, freqRange)
	}

	return low, high, nil
}
