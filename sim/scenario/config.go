package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scenario-sim/scenario-sim/sim/record"
)

// EgoConfig describes the agent under test for a reference run: which
// blueprint stands in for it and the cruise speed the stand-in driver
// commands.
type EgoConfig struct {
	Blueprint string  `yaml:"blueprint"`
	Speed     float64 `yaml:"speed"`
	// Start is the longitudinal position along lane 0 where the ego spawns.
	Start float64 `yaml:"start"`
}

// RunConfig selects everything one scenario run needs: the map, the tick
// period, the ego stand-in, the scenario and its overrides, and where the
// recording lands.
type RunConfig struct {
	Map      record.MapSpec `yaml:"map"`
	DT       float64        `yaml:"dt"`
	Ego      EgoConfig      `yaml:"ego"`
	Scenario string         `yaml:"scenario"`
	// Timeout overrides the scenario's default timeout in simulation
	// seconds; zero keeps the default.
	Timeout   float64 `yaml:"timeout"`
	Recording string  `yaml:"recording"`
}

// DefaultRunConfig returns a runnable configuration: a two-lane two-way
// straight road, 20 Hz ticks, and the dynamic crossing scenario.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Map:       record.MapSpec{Kind: "straight", Lanes: 2, LaneWidth: 3.5},
		DT:        0.05,
		Ego:       EgoConfig{Blueprint: "vehicle.lincoln.mkz2017", Speed: 8},
		Scenario:  "dynamic_object_crossing",
		Recording: "recording.json",
	}
}

// LoadRunConfig reads a YAML run configuration, overlaying it onto the
// defaults so a file only needs to name what it changes.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges the world would otherwise panic on.
func (c RunConfig) Validate() error {
	if c.DT <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.DT)
	}
	if c.Map.LaneWidth <= 0 {
		return fmt.Errorf("map lane_width must be positive, got %v", c.Map.LaneWidth)
	}
	if c.Ego.Speed < 0 {
		return fmt.Errorf("ego speed must be non-negative, got %v", c.Ego.Speed)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	return nil
}
