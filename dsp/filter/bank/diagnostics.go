package bank

import (
	"fmt"
	"log/slog"
)

// DiagnosticKind classifies a non-fatal design event.
type DiagnosticKind int

const (
	// BandSkipped marks a band that lies above the Nyquist frequency and
	// was left out of the design.
	BandSkipped DiagnosticKind = iota
	// HighpassFallback marks a band whose upper edge reaches the Nyquist
	// frequency and was designed as a highpass.
	HighpassFallback
)

func (k DiagnosticKind) String() string {
	switch k {
	case BandSkipped:
		return "band-skipped"
	case HighpassFallback:
		return "highpass-fallback"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic describes a band that was dropped or degraded during design.
// Band indexes the frequency grid, not the designed bank.
type Diagnostic struct {
	Kind      DiagnosticKind
	Band      int
	Frequency float64
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: band %d (%.1f Hz): %s", d.Kind, d.Band, d.Frequency, d.Message)
}

// DesignOption configures DesignEnergyPreserving and DesignReconstructing.
type DesignOption func(*designConfig)

type designConfig struct {
	logger *slog.Logger
}

// WithDesignLogger routes diagnostics to logger instead of slog.Default().
func WithDesignLogger(logger *slog.Logger) DesignOption {
	return func(cfg *designConfig) {
		cfg.logger = logger
	}
}

func newDesignConfig(opts []DesignOption) designConfig {
	var cfg designConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return cfg
}

// warn records d and logs it at warning level.
func (cfg designConfig) warn(list *[]Diagnostic, d Diagnostic) {
	*list = append(*list, d)
	cfg.logger.Warn("bank: "+d.Message,
		"kind", d.Kind.String(),
		"band", d.Band,
		"frequency_hz", d.Frequency,
	)
}
