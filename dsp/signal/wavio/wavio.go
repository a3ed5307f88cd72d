// Package wavio reads and writes signal.Signal values as PCM WAV files.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-acoustics/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV reports input that is not a decodable PCM WAV stream.
	ErrInvalidWAV = errors.New("wavio: invalid WAV data")

	// ErrBitDepth reports an unsupported PCM bit depth.
	ErrBitDepth = errors.New("wavio: unsupported bit depth")
)

const pcmFormat = 1

// Read decodes the WAV file at path.
func Read(path string) (*signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	sig, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}

	return sig, nil
}

// Decode reads a complete PCM WAV stream. Samples are scaled to [-1, 1)
// and every file channel becomes one signal channel.
func Decode(r io.ReadSeeker) (*signal.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	bitDepth := int(dec.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	numChans := int(dec.NumChans)
	if numChans <= 0 || len(buf.Data) < numChans {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidWAV)
	}

	frames := len(buf.Data) / numChans
	scale := 1 / fullScale(bitDepth)

	data := make([][]float64, numChans)
	for ch := range data {
		data[ch] = make([]float64, frames)
		for i := range frames {
			data[ch][i] = float64(buf.Data[i*numChans+ch]) * scale
		}
	}

	return signal.New(data, float64(dec.SampleRate))
}

// Write encodes sig into a new WAV file at path.
func Write(path string, sig *signal.Signal, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}

	if err := Encode(f, sig, bitDepth); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: %s: %w", path, err)
	}

	return f.Close()
}

// Encode writes sig as interleaved PCM. Samples outside [-1, 1) are
// clipped; the sampling rate is rounded to an integer.
func Encode(w io.WriteSeeker, sig *signal.Signal, bitDepth int) error {
	if err := checkBitDepth(bitDepth); err != nil {
		return err
	}

	numChans := sig.NumChannels()
	frames := sig.NumSamples()
	sampleRate := int(math.Round(sig.SampleRate()))

	full := fullScale(bitDepth)
	lo, hi := -full, full-1

	data := make([]int, frames*numChans)
	for ch := range numChans {
		samples := sig.Channel(ch)
		for i, v := range samples {
			data[i*numChans+ch] = int(math.Max(lo, math.Min(hi, math.Round(v*full))))
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChans, pcmFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return enc.Close()
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

func fullScale(bitDepth int) float64 {
	return math.Ldexp(1, bitDepth-1)
}
