package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/spf13/cobra"
)

type bandRow struct {
	bank.Band `yaml:",inline"`

	Kind        string       `json:"kind" yaml:"kind"`
	NumSections int          `json:"sections,omitempty" yaml:"sections,omitempty"`
	Taps        int          `json:"taps,omitempty" yaml:"taps,omitempty"`
	SOS         [][6]float64 `json:"sos,omitempty" yaml:"sos,omitempty,flow"`
}

type designReport struct {
	Bank        string    `json:"bank" yaml:"bank"`
	Params      any       `json:"params" yaml:"params"`
	Bands       []bandRow `json:"bands" yaml:"bands"`
	Diagnostics []string  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func (r *designReport) writeTable(w *tabwriter.Writer) {
	fmt.Fprintln(w, "band\tnominal\tcentre\tlower\tupper\tkind\tsize\t")
	for _, b := range r.Bands {
		size := b.Taps
		if size == 0 {
			size = b.NumSections
		}

		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%s\t%d\t\n",
			b.Index, hz(b.Nominal), b.CenterFreq, b.LowCutoff, b.HighCutoff, b.Kind, size)
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
}

func newDesignCmd(a *app) *cobra.Command {
	var coefficients bool

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design a filter bank and print its bands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fb, err := a.newBank()
			if err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), describe(fb, coefficients))
		},
	}

	cmd.Flags().BoolVar(&coefficients, "coefficients", false, "include second-order sections of energy banks")

	return cmd
}

func describe(fb bank.FilterBank, coefficients bool) *designReport {
	report := &designReport{Bank: fb.String()}

	for _, d := range fb.Diagnostics() {
		report.Diagnostics = append(report.Diagnostics, d.String())
	}

	bands := fb.Bands()

	switch b := fb.(type) {
	case *bank.EnergyPreservingBank:
		report.Params = b.Params()

		for i, sections := range b.Design().Bands() {
			row := bandRow{Band: bands[i], Kind: sections.Kind.String(), NumSections: len(sections.Sections)}
			if coefficients {
				row.SOS = make([][6]float64, len(sections.Sections))
				for j, s := range sections.Sections {
					row.SOS[j] = s.SOS()
				}
			}

			report.Bands = append(report.Bands, row)
		}
	case *bank.ReconstructingBank:
		report.Params = b.Params()

		for _, band := range bands {
			report.Bands = append(report.Bands, bandRow{Band: band, Kind: "fir", Taps: b.NumSamples()})
		}
	}

	return report
}
