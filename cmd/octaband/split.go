package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-acoustics/dsp/filter/weighting"
	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"github.com/cwbudde/algo-acoustics/dsp/signal/wavio"
	"github.com/spf13/cobra"
)

type splitRow struct {
	Band       int     `json:"band" yaml:"band"`
	Center     float64 `json:"center" yaml:"center"`
	LevelDB    float64 `json:"level_db" yaml:"level_db"`
	WeightedDB float64 `json:"weighted_db" yaml:"weighted_db"`
	File       string  `json:"file" yaml:"file"`
}

type splitReport struct {
	Input     string     `json:"input" yaml:"input"`
	Bank      string     `json:"bank" yaml:"bank"`
	Weighting string     `json:"weighting" yaml:"weighting"`
	Bands     []splitRow `json:"bands" yaml:"bands"`
}

func (r *splitReport) writeTable(w *tabwriter.Writer) {
	fmt.Fprintf(w, "band\tcentre\tlevel [dB]\tL%s [dB]\tfile\t\n", r.Weighting)
	for _, b := range r.Bands {
		fmt.Fprintf(w, "%d\t%.1f\t%.2f\t%.2f\t%s\t\n", b.Band, b.Center, b.LevelDB, b.WeightedDB, b.File)
	}
}

func newSplitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split INPUT.wav",
		Short: "Split a WAV file into one WAV file per band",
		Long: `split filters every channel of INPUT.wav with the configured bank and
writes one multi-channel WAV file per band. The bank sampling rate is taken
from the input file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := wavio.Read(args[0])
			if err != nil {
				return err
			}

			fb, err := a.newBank(bank.WithSampleRate(in.SampleRate()))
			if err != nil {
				return err
			}

			report, err := a.split(args[0], in, fb)
			if err != nil {
				return err
			}

			return a.render(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().String("out-dir", ".", "directory for the band files")
	cmd.Flags().Int("bit-depth", 24, "PCM bit depth of the band files (16, 24, 32)")
	cmd.Flags().String("weighting", "Z", "frequency weighting of the weighted band levels (A, B, C, Z)")

	return cmd
}

func (a *app) split(path string, in *signal.Signal, fb bank.FilterBank) (*splitReport, error) {
	out, err := fb.Process(in)
	if err != nil {
		return nil, err
	}

	levels, err := bank.Levels(out)
	if err != nil {
		return nil, err
	}

	wt, err := weighting.ParseType(a.cfg.Split.Weighting)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(a.cfg.Split.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	nCh := in.NumChannels()
	report := &splitReport{Input: path, Bank: fb.String(), Weighting: wt.String()}

	for i, band := range fb.Bands() {
		name := filepath.Join(a.cfg.Split.OutDir, fmt.Sprintf("%s_band%02d_%.0fHz.wav", base, band.Index, band.CenterFreq))
		if err := a.writeBand(name, out, i, nCh); err != nil {
			return nil, err
		}

		corr, err := weighting.Correction(wt, band.CenterFreq)
		if err != nil {
			return nil, err
		}

		a.logger.Info("band written", "band", band.Index, "file", name, "level_db", levels[i])

		report.Bands = append(report.Bands, splitRow{
			Band:       band.Index,
			Center:     band.CenterFreq,
			LevelDB:    levels[i],
			WeightedDB: levels[i] + corr,
			File:       name,
		})
	}

	return report, nil
}

// writeBand writes the nCh channels of band i of out to a WAV file.
func (a *app) writeBand(name string, out *signal.Signal, i, nCh int) error {
	data := make([][]float64, nCh)
	for ch := range nCh {
		data[ch] = out.Channel(i*nCh + ch)
	}

	sig, err := signal.New(data, out.SampleRate())
	if err != nil {
		return err
	}

	return wavio.Write(name, sig, a.cfg.Split.BitDepth)
}
