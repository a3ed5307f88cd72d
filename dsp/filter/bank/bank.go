package bank

import (
	"fmt"

	"github.com/cwbudde/algo-acoustics/dsp/core"
	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"gonum.org/v1/gonum/floats"
)

// Band describes one band of a designed bank.
type Band struct {
	Index      int     `json:"index" yaml:"index"`                         // position in the frequency grid
	Nominal    float64 `json:"nominal,omitempty" yaml:"nominal,omitempty"` // IEC nominal frequency, 0 when none is defined
	CenterFreq float64 `json:"center" yaml:"center"`                       // exact centre frequency in Hz
	LowCutoff  float64 `json:"lower" yaml:"lower"`                         // lower band edge in Hz
	HighCutoff float64 `json:"upper" yaml:"upper"`                         // upper band edge in Hz
}

func bandsOf(g *Grid, indices []int) []Band {
	out := make([]Band, len(indices))
	for i, gi := range indices {
		out[i] = Band{
			Index:      gi,
			CenterFreq: g.Exact[gi],
			LowCutoff:  g.Cutoff.Lower[gi],
			HighCutoff: g.Cutoff.Upper[gi],
		}

		if gi < len(g.Nominal) {
			out[i].Nominal = g.Nominal[gi]
		}
	}

	return out
}

// FilterBank is implemented by both bank types.
type FilterBank interface {
	Process(in *signal.Signal) (*signal.Signal, error)
	NumBands() int
	Bands() []Band
	SampleRate() float64
	Diagnostics() []Diagnostic
	String() string
}

var (
	_ FilterBank = (*EnergyPreservingBank)(nil)
	_ FilterBank = (*ReconstructingBank)(nil)
)

// Kind names a bank type.
type Kind int

const (
	KindEnergy Kind = iota
	KindReconstructing
)

func (k Kind) String() string {
	switch k {
	case KindEnergy:
		return "energy"
	case KindReconstructing:
		return "reconstructing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "energy" and "reconstructing".
func ParseKind(name string) (Kind, error) {
	switch name {
	case "energy":
		return KindEnergy, nil
	case "reconstructing":
		return KindReconstructing, nil
	}

	return 0, fmt.Errorf("%w: %q (want energy or reconstructing)", ErrUnknownBankType, name)
}

// New builds a bank of the given kind. Options that do not apply to the
// kind are ignored.
func New(kind Kind, opts ...Option) (FilterBank, error) {
	switch kind {
	case KindEnergy:
		return NewEnergyPreserving(opts...)
	case KindReconstructing:
		return NewReconstructing(opts...)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBankType, kind)
	}
}

// Levels returns the energy of every band of a processed signal in dB,
// summed over the input channels. out must come from a bank's Process.
func Levels(out *signal.Signal) ([]float64, error) {
	shape := out.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("%w: signal shape %v has no band axis", ErrInvalidParameter, shape)
	}

	nBands := shape[0]
	perBand := out.NumChannels() / nBands

	levels := make([]float64, nBands)
	for b := range nBands {
		var e float64
		for ch := range perBand {
			x := out.Channel(b*perBand + ch)
			e += floats.Dot(x, x)
		}

		levels[b] = core.LinearPowerToDB(e)
	}

	return levels, nil
}

func checkInput(in *signal.Signal, sampleRate float64, nBands int) error {
	if in == nil {
		return fmt.Errorf("%w: nil signal", ErrInvalidParameter)
	}

	if in.SampleRate() != sampleRate {
		return fmt.Errorf("%w: signal has %g Hz, bank has %g Hz", ErrSampleRateMismatch, in.SampleRate(), sampleRate)
	}

	if nBands == 0 {
		return fmt.Errorf("%w: bank has no bands below the Nyquist frequency", ErrInvalidParameter)
	}

	return nil
}

// stack wraps per-band channel data with a leading band axis.
func stack(data [][]float64, in *signal.Signal, nBands int, comment string) (*signal.Signal, error) {
	shape := append([]int{nBands}, in.Shape()...)

	out, err := signal.New(data, in.SampleRate(),
		signal.WithShape(shape...),
		signal.WithNorm(in.Norm()),
		signal.WithComment(comment),
	)
	if err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}

	return out, nil
}
