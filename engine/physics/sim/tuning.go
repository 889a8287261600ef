package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the global simulation parameters. All values are optional in
// the YAML form; absent fields keep their defaults.
type Tuning struct {
	// Gravity is the acceleration applied to every dynamic body, in units per
	// second squared.
	Gravity [3]float32 `yaml:"gravity"`

	// Damping is the fraction of velocity removed per second.
	Damping float32 `yaml:"damping"`

	// Restitution is the coefficient of restitution for bounces against the
	// world bounds and between entities.
	Restitution float32 `yaml:"restitution"`

	// BoundsMin and BoundsMax are the axis-aligned world bounds. Entities
	// reaching a bound bounce back inside with restitution.
	BoundsMin [3]float32 `yaml:"bounds_min"`
	BoundsMax [3]float32 `yaml:"bounds_max"`
}

// DefaultTuning returns the built-in simulation parameters: standard gravity,
// light damping, a half-bouncy restitution, and a 100-unit arena with the
// floor at y = 0.
//
// Returns:
//   - Tuning: the default parameters
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:     [3]float32{0, -9.81, 0},
		Damping:     0.05,
		Restitution: 0.5,
		BoundsMin:   [3]float32{-50, 0, -50},
		BoundsMax:   [3]float32{50, 100, 50},
	}
}

// LoadTuning reads simulation parameters from a YAML file, layered over the
// defaults. A missing file is not an error; the defaults are returned so a
// bare deployment runs without configuration.
//
// Parameters:
//   - path: the YAML file path, or empty for defaults
//
// Returns:
//   - Tuning: the resolved parameters
//   - error: non-nil if the file exists but cannot be parsed
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tuning, nil
		}
		return tuning, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}
	return tuning, nil
}
