// Package configs loads the octaband command configuration from defaults,
// a YAML file, OCTABAND_* environment variables and command-line flags.
package configs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-acoustics/dsp/filter/bank"
	"github.com/cwbudde/algo-acoustics/dsp/filter/weighting"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g.
// OCTABAND_BANK_ORDER for bank.order.
const EnvPrefix = "OCTABAND"

// Config represents the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	Bank   BankConfig   `mapstructure:"bank"`
	Verify VerifyConfig `mapstructure:"verify"`
	Split  SplitConfig  `mapstructure:"split"`
}

// BankConfig holds the filter-bank parameters. An empty frequency range
// selects the default range of the bank type.
type BankConfig struct {
	Type           string    `mapstructure:"type"`
	NumFractions   int       `mapstructure:"num_fractions"`
	SampleRate     float64   `mapstructure:"sampling_rate"`
	FrequencyRange []float64 `mapstructure:"freq_range"`
	Order          int       `mapstructure:"order"`
	Overlap        float64   `mapstructure:"overlap"`
	Slope          int       `mapstructure:"slope"`
	NumSamples     int       `mapstructure:"n_samples"`
}

// VerifyConfig contains the limits of the verify command. Tolerance bounds
// the sample error of a reconstructing bank, EnergyTolerance the deviation
// of the summed band power of an energy bank from one.
type VerifyConfig struct {
	Tolerance       float64 `mapstructure:"tolerance"`
	EnergyTolerance float64 `mapstructure:"energy_tolerance"`
}

// SplitConfig contains the output settings of the split command. Weighting
// names the IEC 61672 curve (A, B, C or Z) applied to the reported band
// levels.
type SplitConfig struct {
	OutDir    string `mapstructure:"out_dir"`
	BitDepth  int    `mapstructure:"bit_depth"`
	Weighting string `mapstructure:"weighting"`
}

var outputFormats = []string{"table", "json", "yaml"}

// NewViper returns a viper instance with defaults and environment lookup
// configured. A non-empty path is read as the config file; otherwise
// octaband.yaml is searched in ./configs and $HOME/.config/octaband and
// silently skipped when missing.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("octaband")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.config/octaband")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configs: read config: %w", err)
		}
	}

	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToFloatSliceHookFunc(","),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// stringToFloatSliceHookFunc decodes "20,20000" from the environment or a
// quoted YAML value into a []float64.
func stringToFloatSliceHookFunc(sep string) mapstructure.DecodeHookFuncType {
	floats := reflect.TypeOf([]float64(nil))

	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != floats {
			return data, nil
		}

		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return []float64{}, nil
		}

		parts := strings.Split(raw, sep)
		out := make([]float64, len(parts))

		for i, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q in %q: %w", part, raw, err)
			}

			out[i] = f
		}

		return out, nil
	}
}

// Validate checks the settings that are not validated by the bank
// designers themselves.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	if !slices.Contains(outputFormats, c.OutputFormat) {
		return fmt.Errorf("output format must be one of %s, got %q", strings.Join(outputFormats, ", "), c.OutputFormat)
	}

	if _, err := bank.ParseKind(c.Bank.Type); err != nil {
		return err
	}

	if n := len(c.Bank.FrequencyRange); n != 0 && n != 2 {
		return fmt.Errorf("bank.freq_range needs a lower and upper limit, got %d values", n)
	}

	if c.Verify.Tolerance <= 0 || c.Verify.EnergyTolerance <= 0 {
		return fmt.Errorf("verify tolerances must be positive")
	}

	switch c.Split.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("split bit depth must be 16, 24 or 32, got %d", c.Split.BitDepth)
	}

	if _, err := weighting.ParseType(c.Split.Weighting); err != nil {
		return err
	}

	return nil
}

// Kind returns the configured bank type.
func (b BankConfig) Kind() (bank.Kind, error) {
	return bank.ParseKind(b.Type)
}

// Options converts the configuration into bank options.
func (b BankConfig) Options() []bank.Option {
	opts := []bank.Option{
		bank.WithFractions(b.NumFractions),
		bank.WithSampleRate(b.SampleRate),
		bank.WithOrder(b.Order),
		bank.WithOverlap(b.Overlap),
		bank.WithSlope(b.Slope),
		bank.WithSamples(b.NumSamples),
	}

	if len(b.FrequencyRange) > 0 {
		opts = append(opts, bank.WithFrequencyRange(b.FrequencyRange...))
	}

	return opts
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level must be debug, info, warn or error, got %q", name)
	}

	return level, nil
}
