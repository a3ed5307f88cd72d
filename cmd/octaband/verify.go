package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-acoustics/dsp/filter/biquad"
	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// verifyPoints is the number of log-spaced frequencies of the energy check.
const verifyPoints = 512

type verifyReport struct {
	Bank      string  `json:"bank" yaml:"bank"`
	Check     string  `json:"check" yaml:"check"`
	Deviation float64 `json:"deviation" yaml:"deviation"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Passed    bool    `json:"passed" yaml:"passed"`
}

func (r *verifyReport) writeTable(w *tabwriter.Writer) {
	status := "FAIL"
	if r.Passed {
		status = "ok"
	}

	fmt.Fprintf(w, "%s\t\n%s\tdeviation %.3g\ttolerance %.3g\t%s\t\n", r.Bank, r.Check, r.Deviation, r.Tolerance, status)
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the reconstruction or energy property of a bank",
		Long: `verify checks the defining property of the configured bank.

A reconstructing bank filters a unit impulse; the sum of the bands must equal
the impulse delayed by half the filter length within --tolerance.

For an energy bank the squared magnitude responses of all bands are summed
between the lowest and highest bandpass centre; the sum must stay within
--energy-tolerance of one.

The command fails when the check does not pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fb, err := a.newBank()
			if err != nil {
				return err
			}

			var report *verifyReport

			switch b := fb.(type) {
			case *bank.ReconstructingBank:
				report, err = verifyReconstruction(b, a.cfg.Verify.Tolerance)
			case *bank.EnergyPreservingBank:
				report, err = verifyEnergy(b, a.cfg.Verify.EnergyTolerance)
			default:
				err = fmt.Errorf("no check for %T", fb)
			}

			if err != nil {
				return err
			}

			if err := a.render(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if !report.Passed {
				return fmt.Errorf("%s: deviation %.3g exceeds tolerance %.3g", report.Check, report.Deviation, report.Tolerance)
			}

			return nil
		},
	}

	cmd.Flags().Float64("tolerance", 1e-6, "maximum sample error of a reconstructing bank")
	cmd.Flags().Float64("energy-tolerance", 0.1, "maximum deviation of the summed band power of an energy bank")

	return cmd
}

func verifyReconstruction(b *bank.ReconstructingBank, tol float64) (*verifyReport, error) {
	n := b.NumSamples()

	in, err := signal.NewGenerator(b.SampleRate()).Impulse(n, 0)
	if err != nil {
		return nil, err
	}

	out, err := b.Process(in)
	if err != nil {
		return nil, err
	}

	want := make([]float64, n)
	want[n/2] = 1

	dev := floats.Distance(out.Sum().Channel(0), want, math.Inf(1))

	return &verifyReport{
		Bank:      b.String(),
		Check:     "reconstruction",
		Deviation: dev,
		Tolerance: tol,
		Passed:    dev <= tol,
	}, nil
}

// verifyEnergy sweeps from the lowest band centre to the centre of the
// highest bandpass band. A highpass fallback band is not power
// complementary to its neighbour and is left out of the sweep range.
func verifyEnergy(b *bank.EnergyPreservingBank, tol float64) (*verifyReport, error) {
	bands := b.Bands()
	sections := b.Design().Bands()

	last := -1
	for i, s := range sections {
		if s.Kind == bank.BandPass {
			last = i
		}
	}

	if last < 0 {
		return nil, fmt.Errorf("energy check needs at least one bandpass band")
	}

	lo, hi := bands[0].CenterFreq, bands[last].CenterFreq

	dev := 0.0
	for i := range verifyPoints {
		f := lo * math.Pow(hi/lo, float64(i)/(verifyPoints-1))

		sum := 0.0
		for _, s := range sections {
			h := biquad.CascadeResponse(s.Sections, f, b.SampleRate())
			sum += real(h * cmplx.Conj(h))
		}

		dev = math.Max(dev, math.Abs(sum-1))
	}

	return &verifyReport{
		Bank:      b.String(),
		Check:     "energy",
		Deviation: dev,
		Tolerance: tol,
		Passed:    dev <= tol,
	}, nil
}
