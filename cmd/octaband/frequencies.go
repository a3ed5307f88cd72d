package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/spf13/cobra"
)

type gridRow struct {
	Index   int     `json:"index" yaml:"index"`
	Nominal float64 `json:"nominal,omitempty" yaml:"nominal,omitempty"`
	Exact   float64 `json:"exact" yaml:"exact"`
	Lower   float64 `json:"lower" yaml:"lower"`
	Upper   float64 `json:"upper" yaml:"upper"`
}

type gridReport struct {
	NumFractions   int       `json:"num_fractions" yaml:"num_fractions"`
	FrequencyRange []float64 `json:"freq_range" yaml:"freq_range"`
	Bands          []gridRow `json:"bands" yaml:"bands"`
}

func (r *gridReport) writeTable(w *tabwriter.Writer) {
	fmt.Fprintln(w, "band\tnominal\texact\tlower\tupper\t")
	for _, b := range r.Bands {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t\n", b.Index, hz(b.Nominal), b.Exact, b.Lower, b.Upper)
	}
}

func newFrequenciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frequencies",
		Short: "Print the nominal, exact and cutoff frequencies of a band grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			freqRange := a.cfg.Bank.FrequencyRange
			if len(freqRange) == 0 {
				freqRange = []float64{20, 20000}
			}

			g, err := bank.Frequencies(a.cfg.Bank.NumFractions, freqRange)
			if err != nil {
				return err
			}

			report := &gridReport{NumFractions: a.cfg.Bank.NumFractions, FrequencyRange: freqRange}
			for i := range g.Exact {
				row := gridRow{Index: i, Exact: g.Exact[i], Lower: g.Cutoff.Lower[i], Upper: g.Cutoff.Upper[i]}
				if i < len(g.Nominal) {
					row.Nominal = g.Nominal[i]
				}

				report.Bands = append(report.Bands, row)
			}

			return a.render(cmd.OutOrStdout(), report)
		},
	}
}
