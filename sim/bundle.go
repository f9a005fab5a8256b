package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights parameterize the scored policy's floor ranking.
type Weights struct {
	PickupBias    float64 `yaml:"pickup_bias"`    // per pending request at a floor
	DropoffBias   float64 `yaml:"dropoff_bias"`   // per rider destined for a floor
	OpenDoorBias  float64 `yaml:"open_door_bias"` // multiplier on the current floor's base score
	HeatMapBias   float64 `yaml:"heat_map_bias"`  // scale of the neighbor-averaged smoothing term
	DirectionBias float64 `yaml:"direction_bias"` // multiplier on floors ahead in the travel direction
}

// DefaultWeights returns a hand-tuned starting point for the scored policy.
func DefaultWeights() Weights {
	return Weights{
		PickupBias:    1.0,
		DropoffBias:   1.5,
		OpenDoorBias:  3.0,
		HeatMapBias:   0.5,
		DirectionBias: 1.2,
	}
}

// Validate checks that every weight is finite and non-negative.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"pickup_bias", w.PickupBias},
		{"dropoff_bias", w.DropoffBias},
		{"open_door_bias", w.OpenDoorBias},
		{"heat_map_bias", w.HeatMapBias},
		{"direction_bias", w.DirectionBias},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be finite, got %f", f.name, f.value)
		}
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", f.name, f.value)
		}
	}
	return nil
}

// WeightsBundle is the on-disk form of a policy configuration, loadable from
// and savable to a YAML file. The tuner persists its best candidate through
// it; the run command loads it back.
type WeightsBundle struct {
	Policy  string  `yaml:"policy"`
	Weights Weights `yaml:"weights"`
	// Score is the combined average total time the weights achieved when
	// tuned. Informational only; never read back into a decision.
	Score float64 `yaml:"score,omitempty"`
}

// LoadWeightsBundle reads, parses, and validates a YAML weights file.
func LoadWeightsBundle(path string) (*WeightsBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights bundle: %w", err)
	}
	var bundle WeightsBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing weights bundle: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Validate checks the policy name and the weight ranges.
func (b *WeightsBundle) Validate() error {
	if !IsValidPolicy(b.Policy) {
		return fmt.Errorf("unknown dispatch policy %q", b.Policy)
	}
	return b.Weights.Validate()
}

// Save writes the bundle to a YAML file.
func (b *WeightsBundle) Save(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding weights bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing weights bundle: %w", err)
	}
	return nil
}
