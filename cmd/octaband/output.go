package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// tabular is implemented by reports that have a table rendering.
type tabular interface {
	writeTable(w *tabwriter.Writer)
}

// render writes report in the configured output format.
func (a *app) render(w io.Writer, report tabular) error {
	switch a.cfg.OutputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(report); err != nil {
			return err
		}

		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		report.writeTable(tw)

		return tw.Flush()
	}
}

func hz(f float64) string {
	if f == 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f", f)
}
