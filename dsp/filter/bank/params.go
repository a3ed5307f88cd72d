package bank

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnergyParams are the constructor parameters of an EnergyPreservingBank.
// They are all that is persisted; coefficients are re-derived on load.
type EnergyParams struct {
	NumFractions   int       `json:"num_fractions" yaml:"num_fractions"`
	SampleRate     float64   `json:"sampling_rate" yaml:"sampling_rate"`
	FrequencyRange []float64 `json:"freq_range" yaml:"freq_range"`
	Order          int       `json:"order" yaml:"order"`
}

func (p EnergyParams) options() []Option {
	return []Option{
		WithFractions(p.NumFractions),
		WithSampleRate(p.SampleRate),
		WithFrequencyRange(p.FrequencyRange...),
		WithOrder(p.Order),
	}
}

func (p EnergyParams) equal(o EnergyParams) bool {
	return p.NumFractions == o.NumFractions &&
		p.SampleRate == o.SampleRate &&
		p.Order == o.Order &&
		slices.Equal(p.FrequencyRange, o.FrequencyRange)
}

// ReconstructingParams are the constructor parameters of a
// ReconstructingBank.
type ReconstructingParams struct {
	NumFractions   int       `json:"num_fractions" yaml:"num_fractions"`
	FrequencyRange []float64 `json:"freq_range" yaml:"freq_range"`
	Overlap        float64   `json:"overlap" yaml:"overlap"`
	Slope          int       `json:"slope" yaml:"slope"`
	NumSamples     int       `json:"n_samples" yaml:"n_samples"`
	SampleRate     float64   `json:"sampling_rate" yaml:"sampling_rate"`
}

func (p ReconstructingParams) options() []Option {
	return []Option{
		WithFractions(p.NumFractions),
		WithFrequencyRange(p.FrequencyRange...),
		WithOverlap(p.Overlap),
		WithSlope(p.Slope),
		WithSamples(p.NumSamples),
		WithSampleRate(p.SampleRate),
	}
}

func (p ReconstructingParams) equal(o ReconstructingParams) bool {
	return p.NumFractions == o.NumFractions &&
		p.Overlap == o.Overlap &&
		p.Slope == o.Slope &&
		p.NumSamples == o.NumSamples &&
		p.SampleRate == o.SampleRate &&
		slices.Equal(p.FrequencyRange, o.FrequencyRange)
}

// MarshalJSON encodes the constructor parameters only.
func (b *EnergyPreservingBank) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.params)
}

// UnmarshalJSON decodes parameters and redesigns the bank.
func (b *EnergyPreservingBank) UnmarshalJSON(data []byte) error {
	var p EnergyParams
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("bank: decode energy-preserving bank: %w", err)
	}

	return b.load(p)
}

// MarshalYAML encodes the constructor parameters only.
func (b *EnergyPreservingBank) MarshalYAML() (any, error) {
	return b.params, nil
}

// UnmarshalYAML decodes parameters and redesigns the bank.
func (b *EnergyPreservingBank) UnmarshalYAML(node *yaml.Node) error {
	var p EnergyParams
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("bank: decode energy-preserving bank: %w", err)
	}

	return b.load(p)
}

func (b *EnergyPreservingBank) load(p EnergyParams) error {
	nb, err := NewEnergyPreservingFromParams(p, WithLogger(b.logger))
	if err != nil {
		return err
	}

	*b = *nb

	return nil
}

// MarshalJSON encodes the constructor parameters only.
func (b *ReconstructingBank) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.params)
}

// UnmarshalJSON decodes parameters and redesigns the bank.
func (b *ReconstructingBank) UnmarshalJSON(data []byte) error {
	var p ReconstructingParams
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("bank: decode reconstructing bank: %w", err)
	}

	return b.load(p)
}

// MarshalYAML encodes the constructor parameters only.
func (b *ReconstructingBank) MarshalYAML() (any, error) {
	return b.params, nil
}

// UnmarshalYAML decodes parameters and redesigns the bank.
func (b *ReconstructingBank) UnmarshalYAML(node *yaml.Node) error {
	var p ReconstructingParams
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("bank: decode reconstructing bank: %w", err)
	}

	return b.load(p)
}

func (b *ReconstructingBank) load(p ReconstructingParams) error {
	nb, err := NewReconstructingFromParams(p, WithLogger(b.logger))
	if err != nil {
		return err
	}

	*b = *nb

	return nil
}
