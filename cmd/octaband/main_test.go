package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"github.com/cwbudde/algo-acoustics/dsp/signal/wavio"
	"github.com/cwbudde/algo-acoustics/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func TestFrequencies_JSON(t *testing.T) {
	out, err := run(t, "frequencies", "-b", "3", "--range", "20,20000", "-o", "json")
	require.NoError(t, err)

	var report gridReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	require.Len(t, report.Bands, 30)
	assert.Equal(t, 25.0, report.Bands[0].Nominal)
	assert.Equal(t, 20000.0, report.Bands[29].Nominal)
}

func TestFrequencies_Table(t *testing.T) {
	out, err := run(t, "frequencies")
	require.NoError(t, err)

	assert.Contains(t, out, "nominal")
	assert.Contains(t, out, "16000.0")
}

func TestDesign_ReconstructingYAML(t *testing.T) {
	out, err := run(t, "design", "--bank", "reconstructing", "-o", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "taps: 4096")
	assert.Contains(t, out, "n_samples: 4096")
	assert.Contains(t, out, "Amplitude-preserving 1/1-octave filter bank with 9 bands")
}

func TestDesign_EnergyCoefficients(t *testing.T) {
	out, err := run(t, "design", "--order", "2", "-r", "48000", "--range", "1000,4000", "--coefficients", "-o", "json")
	require.NoError(t, err)

	var report struct {
		Bands []struct {
			Nominal  float64      `json:"nominal"`
			Kind     string       `json:"kind"`
			Sections int          `json:"sections"`
			SOS      [][6]float64 `json:"sos"`
		} `json:"bands"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	require.Len(t, report.Bands, 3)
	assert.Equal(t, 1000.0, report.Bands[0].Nominal)
	assert.Equal(t, "bandpass", report.Bands[0].Kind)
	assert.Equal(t, 2, report.Bands[0].Sections)
	assert.InDelta(t, 1.99518917e-03, report.Bands[0].SOS[0][0], 1e-9)
	assert.InDelta(t, -1.94204953, report.Bands[0].SOS[1][4], 1e-7)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify", "--bank", "reconstructing")
	require.NoError(t, err)
	assert.Contains(t, out, "reconstruction")
	assert.Contains(t, out, "ok")

	_, err = run(t, "verify")
	require.NoError(t, err)

	_, err = run(t, "verify", "--bank", "reconstructing", "--tolerance", "1e-12")
	require.ErrorContains(t, err, "exceeds tolerance")
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sine.wav")

	sine, err := signal.NewGenerator(44100).Sine(1000, 0.5, 8820)
	require.NoError(t, err)

	stereo, err := signal.New([][]float64{sine.Channel(0), sine.Channel(0)}, 44100)
	require.NoError(t, err)
	require.NoError(t, wavio.Write(input, stereo, 16))

	outDir := filepath.Join(dir, "bands")
	out, err := run(t, "split", input, "--out-dir", outDir, "--order", "8", "--weighting", "a", "-o", "json")
	require.NoError(t, err)

	var report splitReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Bands, 10)
	assert.Equal(t, "A", report.Weighting)
	assert.InDelta(t, report.Bands[0].LevelDB-39.5, report.Bands[0].WeightedDB, 0.1)

	loudest := report.Bands[0]
	for _, b := range report.Bands {
		_, statErr := os.Stat(b.File)
		require.NoError(t, statErr)

		if b.LevelDB > loudest.LevelDB {
			loudest = b
		}
	}

	assert.InDelta(t, 1000, loudest.Center, 1)
	assert.InDelta(t, loudest.LevelDB, loudest.WeightedDB, 1e-9)

	band, err := wavio.Read(loudest.File)
	require.NoError(t, err)
	assert.Equal(t, 2, band.NumChannels())
	assert.Equal(t, 8820, band.NumSamples())
}

func TestCrossover(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "noise.wav")

	noise, err := signal.NewGenerator(48000, signal.WithSeed(7)).WhiteNoise(0.25, 4800)
	require.NoError(t, err)
	require.NoError(t, wavio.Write(input, noise, 32))

	out, err := run(t, "crossover", input, "--freqs", "300,3000", "--out-dir", dir, "-o", "json")
	require.NoError(t, err)

	var report crossoverReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Bands, 3)
	assert.Equal(t, "Linkwitz-Riley cross over network of order 4 at 300, 3000 Hz.", report.Network)
	assert.Equal(t, 300.0, report.Bands[1].Lower)
	assert.Equal(t, 3000.0, report.Bands[1].Upper)

	// the band files sum back to an allpass-filtered input of equal energy
	var sum []float64
	for _, b := range report.Bands {
		band, err := wavio.Read(b.File)
		require.NoError(t, err)

		if sum == nil {
			sum = make([]float64, band.NumSamples())
		}

		for i, v := range band.Channel(0) {
			sum[i] += v
		}
	}

	assert.InEpsilon(t, testutil.Energy(noise.Channel(0)), testutil.Energy(sum), 0.1)

	_, err = run(t, "crossover", input, "--freqs", "3000,300", "--out-dir", dir)
	require.ErrorContains(t, err, "invalid crossover frequency")

	_, err = run(t, "crossover", input, "--freqs", "1k")
	require.ErrorContains(t, err, "crossover frequency")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "octaband.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: json\nbank:\n  num_fractions: 3\n"), 0o600))

	out, err := run(t, "frequencies", "--config", path, "--range", "900,1100")
	require.NoError(t, err)

	var report gridReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 3, report.NumFractions)
	require.Len(t, report.Bands, 1)
	assert.Equal(t, 1000.0, report.Bands[0].Nominal)
	assert.InDelta(t, 891.25, report.Bands[0].Lower, 0.01)
	assert.InDelta(t, 1122.02, report.Bands[0].Upper, 0.01)
}

func TestInvalidInput(t *testing.T) {
	_, err := run(t, "frequencies", "-o", "csv")
	require.ErrorContains(t, err, "output format")

	_, err = run(t, "design", "--bank", "gammatone")
	require.ErrorContains(t, err, "unknown bank type")

	_, err = run(t, "design", "--bank", "reconstructing", "--overlap", "2")
	require.Error(t, err)

	_, err = run(t, "split")
	require.Error(t, err)
}
