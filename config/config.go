// Package config provides configuration loading and access for the
// simulation. Defaults are embedded; a YAML file overrides them.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Neural     NeuralConfig     `yaml:"neural"`
	Population PopulationConfig `yaml:"population"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds car motion parameters. The source prototypes carried
// several inconsistent tunings of these; this is the one chosen set, shared
// by every car in a run.
type PhysicsConfig struct {
	AccelFactor     float64 `yaml:"accel_factor"`     // speed gain per unit throttle per second
	BrakeFactor     float64 `yaml:"brake_factor"`     // instantaneous speed loss per unit brake
	Friction        float64 `yaml:"friction"`         // multiplicative speed decay per tick
	MaxSpeed        float64 `yaml:"max_speed"`
	TurnRate        float64 `yaml:"turn_rate"`        // radians per second at full steer
	CollisionRadius float64 `yaml:"collision_radius"` // point-vs-segment contact distance
}

// SensorsConfig holds the ray-sensor fan layout.
type SensorsConfig struct {
	Count     int     `yaml:"count"`      // rays spread evenly across the forward semicircle
	MaxLength float64 `yaml:"max_length"` // ray reach in world units
}

// NeuralConfig holds brain topology settings. Inputs are derived:
// sensors.count + 4 (speed, heading sine, heading cosine, brake).
type NeuralConfig struct {
	Hidden  int `yaml:"hidden"`
	Outputs int `yaml:"outputs"` // steering, throttle, brake
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Size int `yaml:"size"`
}

// FitnessConfig holds the fitness scoring coefficients.
type FitnessConfig struct {
	DistanceWeight   float64 `yaml:"distance_weight"`
	CheckpointWeight float64 `yaml:"checkpoint_weight"`
	SurvivalWeight   float64 `yaml:"survival_weight"`
	DeathPenalty     float64 `yaml:"death_penalty"`   // multiplier (<1) for dead cars
	BrakeThreshold   float64 `yaml:"brake_threshold"` // brake input above this is penalized
	BrakePenalty     float64 `yaml:"brake_penalty"`
}

// EvolutionConfig holds the generational evolution parameters.
type EvolutionConfig struct {
	EliteFrac            float64 `yaml:"elite_frac"`
	CrossoverProb        float64 `yaml:"crossover_prob"`
	MutationRateHigh     float64 `yaml:"mutation_rate_high"`     // used under low diversity
	MutationStrengthHigh float64 `yaml:"mutation_strength_high"`
	MutationRateLow      float64 `yaml:"mutation_rate_low"`      // used under high diversity
	MutationStrengthLow  float64 `yaml:"mutation_strength_low"`
}

// SimulationConfig holds tick and generation timing parameters.
type SimulationConfig struct {
	MaxStep           float64 `yaml:"max_step"`            // wall-clock delta clamp, seconds
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`    // simulation speed scale
	MaxGenerationSec  float64 `yaml:"max_generation_sec"`  // generation timeout
	ParallelThreshold int     `yaml:"parallel_threshold"`  // min cars before the worker pool kicks in
}

// TelemetryConfig holds output settings.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Inputs int // sensors.count + 4
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		// The embedded defaults are part of the build; failing to parse
		// them is a programming error.
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	cfg.derive()
	return cfg
}

// Load returns the defaults overridden by the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.derive()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// derive recomputes the Derived section.
func (c *Config) derive() {
	c.Derived.Inputs = c.Sensors.Count + 4
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Population.Size <= 0 {
		return fmt.Errorf("config: population size must be positive, got %d", c.Population.Size)
	}
	if c.Sensors.Count <= 0 || c.Sensors.Count > 16 {
		return fmt.Errorf("config: sensor count must be in 1..16, got %d", c.Sensors.Count)
	}
	if c.Neural.Hidden <= 0 {
		return fmt.Errorf("config: hidden layer size must be positive, got %d", c.Neural.Hidden)
	}
	if c.Neural.Outputs != 3 {
		return fmt.Errorf("config: outputs must be 3 (steer, throttle, brake), got %d", c.Neural.Outputs)
	}
	if c.Simulation.MaxGenerationSec <= 0 {
		return fmt.Errorf("config: max generation time must be positive, got %v", c.Simulation.MaxGenerationSec)
	}
	if c.Evolution.EliteFrac <= 0 || c.Evolution.EliteFrac > 1 {
		return fmt.Errorf("config: elite fraction must be in (0,1], got %v", c.Evolution.EliteFrac)
	}
	if c.Fitness.DeathPenalty < 0 || c.Fitness.DeathPenalty >= 1 {
		return fmt.Errorf("config: death penalty must be in [0,1), got %v", c.Fitness.DeathPenalty)
	}
	return nil
}

// WriteYAML saves the configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
