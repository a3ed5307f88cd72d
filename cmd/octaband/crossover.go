package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-acoustics/dsp/filter/crossover"
	"github.com/cwbudde/algo-acoustics/dsp/signal/wavio"
	"github.com/spf13/cobra"
)

type crossoverRow struct {
	Band    int     `json:"band" yaml:"band"`
	Lower   float64 `json:"lower" yaml:"lower"`
	Upper   float64 `json:"upper" yaml:"upper"`
	LevelDB float64 `json:"level_db" yaml:"level_db"`
	File    string  `json:"file" yaml:"file"`
}

type crossoverReport struct {
	Input   string         `json:"input" yaml:"input"`
	Network string         `json:"network" yaml:"network"`
	Bands   []crossoverRow `json:"bands" yaml:"bands"`
}

func (r *crossoverReport) writeTable(w *tabwriter.Writer) {
	fmt.Fprintf(w, "%s\n", r.Network)
	fmt.Fprintln(w, "band\tlower\tupper\tlevel [dB]\tfile\t")

	for _, b := range r.Bands {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t\n", b.Band, hz(b.Lower), hz(b.Upper), b.LevelDB, b.File)
	}
}

func newCrossoverCmd(a *app) *cobra.Command {
	var (
		freqs []string
		order int
	)

	cmd := &cobra.Command{
		Use:   "crossover INPUT.wav",
		Short: "Split a WAV file with a Linkwitz-Riley crossover network",
		Long: `crossover splits every channel of INPUT.wav into len(--freqs)+1 bands
with a Linkwitz-Riley network whose outputs sum to an allpass, and writes
one WAV file per band to --out-dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoffs, err := parseFreqs(freqs)
			if err != nil {
				return err
			}

			in, err := wavio.Read(args[0])
			if err != nil {
				return err
			}

			mb, err := crossover.NewMultiBand(cutoffs, order, in.SampleRate())
			if err != nil {
				return err
			}

			out, err := mb.Split(in)
			if err != nil {
				return err
			}

			levels, err := bank.Levels(out)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(a.cfg.Split.OutDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			report := &crossoverReport{Input: args[0], Network: mb.Comment()}

			for i := range mb.NumBands() {
				name := filepath.Join(a.cfg.Split.OutDir, fmt.Sprintf("%s_xo%02d.wav", base, i))
				if err := a.writeBand(name, out, i, in.NumChannels()); err != nil {
					return err
				}

				row := crossoverRow{Band: i, LevelDB: levels[i], File: name}
				if i > 0 {
					row.Lower = cutoffs[i-1]
				}

				if i < len(cutoffs) {
					row.Upper = cutoffs[i]
				}

				report.Bands = append(report.Bands, row)
			}

			a.logger.Info("crossover written", "bands", mb.NumBands(), "order", order)

			return a.render(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringSliceVar(&freqs, "freqs", nil, "ascending crossover frequencies in Hz")
	cmd.Flags().IntVar(&order, "xo-order", 4, "Linkwitz-Riley order, positive and even")
	cmd.Flags().String("out-dir", ".", "directory for the band files")
	cmd.Flags().Int("bit-depth", 24, "PCM bit depth of the band files (16, 24, 32)")

	_ = cmd.MarkFlagRequired("freqs")

	return cmd
}

func parseFreqs(values []string) ([]float64, error) {
	out := make([]float64, len(values))

	for i, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("crossover frequency %q: %w", v, err)
		}

		out[i] = f
	}

	return out, nil
}
