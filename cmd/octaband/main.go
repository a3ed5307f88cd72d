// Command octaband designs fractional-octave filter banks and applies them
// to WAV files.
//
// Usage:
//
//	octaband [command] [flags]
//
// Examples:
//
//	octaband frequencies --fractions 3 --range 20,20000
//	octaband design --bank energy --order 8 -o yaml
//	octaband split input.wav --bank reconstructing --out-dir bands
//	octaband verify --bank reconstructing --samples 8192
//
// Settings are read from --config (or ./configs/octaband.yaml), then from
// OCTABAND_* environment variables, then from flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
