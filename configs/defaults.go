package configs

import "github.com/spf13/viper"

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("output_format", "table")

	// bank defaults match the library defaults
	v.SetDefault("bank.type", "energy")
	v.SetDefault("bank.num_fractions", 1)
	v.SetDefault("bank.sampling_rate", 44100.0)
	v.SetDefault("bank.freq_range", []float64{})
	v.SetDefault("bank.order", 14)
	v.SetDefault("bank.overlap", 1.0)
	v.SetDefault("bank.slope", 0)
	v.SetDefault("bank.n_samples", 4096)

	v.SetDefault("verify.tolerance", 1e-6)
	v.SetDefault("verify.energy_tolerance", 0.1)

	v.SetDefault("split.out_dir", ".")
	v.SetDefault("split.bit_depth", 24)
	v.SetDefault("split.weighting", "Z")
}
