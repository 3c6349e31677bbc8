// Package config provides configuration loading for the locomotion simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation  SimulationConfig  `yaml:"simulation"`
	Character   CharacterConfig   `yaml:"character"`
	ThirdPerson ThirdPersonConfig `yaml:"third_person"`
	Fly         FlyConfig         `yaml:"fly"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds tick timing.
type SimulationConfig struct {
	DT       float64 `yaml:"dt"`        // Seconds per tick
	MaxTicks int     `yaml:"max_ticks"` // 0 = unlimited
}

// Vec3Config is a YAML-friendly 3D vector.
type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// CharacterConfig holds locomotion tuning for the controlled character.
type CharacterConfig struct {
	Name              string     `yaml:"name"`
	Spawn             Vec3Config `yaml:"spawn"`
	InputSpeed        float64    `yaml:"input_speed"`        // Walking speed (units/sec)
	BoostSpeed        float64    `yaml:"boost_speed"`        // Speed while boost is held; also enters slide
	WaddleFrequency   float64    `yaml:"waddle_frequency"`   // Waddle clock advance per second
	WaddleAmplitude   float64    `yaml:"waddle_amplitude"`   // Lateral sway amplitude
	SlideDeceleration float64    `yaml:"slide_deceleration"` // Residual speed multiplier per idle tick
	SlideStopSpeed    float64    `yaml:"slide_stop_speed"`   // Residual speed below which the slide ends
	IdleDecay         float64    `yaml:"idle_decay"`         // Foot/body oscillation decay per idle tick
	Color             string     `yaml:"color"`              // Hex body color, exposed on the debug panel
}

// ThirdPersonConfig holds follow camera parameters.
type ThirdPersonConfig struct {
	Distance    float64 `yaml:"distance"`
	Theta       float64 `yaml:"theta"`       // Initial yaw (radians)
	Phi         float64 `yaml:"phi"`         // Initial pitch above the horizon (radians)
	MinPhi      float64 `yaml:"min_phi"`     // Pitch clamp
	MaxPhi      float64 `yaml:"max_phi"`     // Pitch clamp
	TargetY     float64 `yaml:"target_y"`    // Look-at offset above the character origin
	Smoothing   float64 `yaml:"smoothing"`   // Exponential follow rate (1/sec), 0 = snap
	Sensitivity float64 `yaml:"sensitivity"` // Radians per pointer unit
}

// FlyConfig holds free-fly camera parameters.
type FlyConfig struct {
	Speed           float64 `yaml:"speed"`
	BoostMultiplier float64 `yaml:"boost_multiplier"`
	Sensitivity     float64 `yaml:"sensitivity"`
}

// TerrainConfig holds chunked heightfield parameters.
type TerrainConfig struct {
	Seed       int64   `yaml:"seed"`
	ChunkSize  float64 `yaml:"chunk_size"`  // World units per chunk edge
	Resolution int     `yaml:"resolution"`  // Samples per chunk edge
	Radius     int     `yaml:"radius"`      // Chunks kept loaded around the focus
	Scale      float64 `yaml:"scale"`       // Base noise frequency
	Octaves    int     `yaml:"octaves"`     // FBM octaves
	Lacunarity float64 `yaml:"lacunarity"`  // Frequency multiplier per octave
	Gain       float64 `yaml:"gain"`        // Amplitude multiplier per octave
	Amplitude  float64 `yaml:"amplitude"`   // Height of the tallest feature
	Flat       bool    `yaml:"flat"`        // Use a flat plane instead of noise
	FlatHeight float64 `yaml:"flat_height"` // Height of the flat plane
	FlatExtent float64 `yaml:"flat_extent"` // Half-extent of the flat plane (0 = infinite)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
	RecordTrajectory    bool    `yaml:"record_trajectory"`     // Write one CSV row per tick
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StatsWindowTicks int // Telemetry.StatsWindow / Simulation.DT
	MaxSlideTicks    int // Upper bound on idle ticks to stop a slide from boost speed
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Refresh re-validates the config and recomputes derived values after the
// caller has edited fields in place.
func (c *Config) Refresh() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// validate rejects values the integrator cannot work with.
func (c *Config) validate() error {
	if c.Simulation.DT <= 0 || c.Simulation.DT >= 1 {
		return fmt.Errorf("simulation.dt must be in (0, 1), got %v", c.Simulation.DT)
	}
	if c.Character.SlideDeceleration <= 0 || c.Character.SlideDeceleration >= 1 {
		return fmt.Errorf("character.slide_deceleration must be in (0, 1), got %v", c.Character.SlideDeceleration)
	}
	if c.Character.SlideStopSpeed <= 0 {
		return fmt.Errorf("character.slide_stop_speed must be positive, got %v", c.Character.SlideStopSpeed)
	}
	if c.Terrain.ChunkSize <= 0 || c.Terrain.Resolution < 2 {
		return fmt.Errorf("terrain needs chunk_size > 0 and resolution >= 2")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StatsWindowTicks = int(math.Round(c.Telemetry.StatsWindow / c.Simulation.DT))
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}

	// Residual speed shrinks by at least SlideDeceleration each idle tick.
	start := c.Character.BoostSpeed * c.Simulation.DT
	if start > c.Character.SlideStopSpeed {
		c.Derived.MaxSlideTicks = int(math.Ceil(
			math.Log(start/c.Character.SlideStopSpeed)/math.Log(1/c.Character.SlideDeceleration),
		)) + 1
	} else {
		c.Derived.MaxSlideTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
