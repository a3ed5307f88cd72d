package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-acoustics/configs"
	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	configFile string
	cfg        *configs.Config
	logger     *slog.Logger
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"output":           "output_format",
	"bank":             "bank.type",
	"fractions":        "bank.num_fractions",
	"sampling-rate":    "bank.sampling_rate",
	"range":            "bank.freq_range",
	"order":            "bank.order",
	"overlap":          "bank.overlap",
	"slope":            "bank.slope",
	"samples":          "bank.n_samples",
	"tolerance":        "verify.tolerance",
	"energy-tolerance": "verify.energy_tolerance",
	"out-dir":          "split.out_dir",
	"bit-depth":        "split.bit_depth",
	"weighting":        "split.weighting",
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "octaband",
		Short: "Fractional-octave filter bank designer",
		Long: `octaband designs IEC 61260 fractional-octave filter banks.

Two bank types are available:
  energy          Butterworth bandpass cascades whose band energies sum to
                  the input energy
  reconstructing  linear-phase FIR filters whose outputs sum to the input
                  delayed by half the filter length`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default is ./configs/octaband.yaml)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringP("output", "o", "table", "output format (table, json, yaml)")
	pf.String("bank", "energy", "bank type (energy, reconstructing)")
	pf.IntP("fractions", "b", 1, "bands per octave")
	pf.Float64P("sampling-rate", "r", 44100, "sampling rate in Hz")
	pf.StringSlice("range", nil, "lower and upper frequency limit in Hz (default depends on --bank)")
	pf.Int("order", 14, "Butterworth order of the energy bank")
	pf.Float64("overlap", 1, "crossover overlap of the reconstructing bank, 0 to 1")
	pf.Int("slope", 0, "crossover steepness of the reconstructing bank")
	pf.Int("samples", 4096, "FIR length of the reconstructing bank")

	root.AddCommand(
		newFrequenciesCmd(a),
		newDesignCmd(a),
		newSplitCmd(a),
		newCrossoverCmd(a),
		newVerifyCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := configs.NewViper(a.configFile)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := configs.Load(v)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = cfg.Logger(cmd.ErrOrStderr())
	a.logger.Debug("configuration loaded", "file", v.ConfigFileUsed(), "bank", cfg.Bank.Type)

	return nil
}

// bindFlags binds every flag that has a configuration key, so that
// explicitly set flags override file and environment values.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed {
			return
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func (a *app) newBank(extra ...bank.Option) (bank.FilterBank, error) {
	kind, err := a.cfg.Bank.Kind()
	if err != nil {
		return nil, err
	}

	opts := append(a.cfg.Bank.Options(), bank.WithLogger(a.logger))

	fb, err := bank.New(kind, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("design %s bank: %w", kind, err)
	}

	return fb, nil
}
