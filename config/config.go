// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine and host configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Profiles  []ProfileConfig `yaml:"profiles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Render    RenderConfig    `yaml:"render"`
	Demo      DemoConfig      `yaml:"demo"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds host window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SurfaceConfig controls how the measured container maps to the working surface.
type SurfaceConfig struct {
	// HeightScale multiplies the measured container height. The field only
	// occupies the upper half of its container in the layout it was built for.
	HeightScale float64 `yaml:"height_scale"`
}

// ProfileConfig is one row of the breakpoint table.
type ProfileConfig struct {
	Class           string  `yaml:"class"`
	MaxWidth        float64 `yaml:"max_width"` // inclusive upper bound, 0 = unbounded
	Spacing         float64 `yaml:"spacing"`
	Margin          float64 `yaml:"margin"`
	UpdateThickness float64 `yaml:"update_thickness"` // squared force radius
	DrawThickness   float64 `yaml:"draw_thickness"`   // squared shading radius
}

// PhysicsConfig holds integrator constants.
type PhysicsConfig struct {
	Drag float64 `yaml:"drag"` // velocity multiplier per update tick
	Ease float64 `yaml:"ease"` // fraction of the offset to origin removed per tick
}

// RenderConfig holds draw tick constants.
type RenderConfig struct {
	BaseGrey    float64 `yaml:"base_grey"`
	SizeFalloff float64 `yaml:"size_falloff"` // dot shrinks by this fraction when far
	Background  [3]int  `yaml:"background"`
}

// DemoConfig holds the idle motion parameters.
type DemoConfig struct {
	TimeScale float64 `yaml:"time_scale"` // applied to milliseconds
	Amplitude float64 `yaml:"amplitude"`  // fraction of the surface size
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // ticks in the rolling perf window
	LogInterval float64 `yaml:"log_interval"` // seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW float64
	ScreenH float64
	// Profiles sorted by MaxWidth with the unbounded row last.
	Profiles []ProfileConfig
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		// A profiles list in the file replaces the default table as a whole.
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

// validate rejects values that would make the engine misbehave silently.
func (c *Config) validate() error {
	if c.Surface.HeightScale <= 0 {
		return fmt.Errorf("surface.height_scale must be positive, got %v", c.Surface.HeightScale)
	}
	unbounded := 0
	for i, p := range c.Profiles {
		if p.Class == "" {
			return fmt.Errorf("profiles[%d]: class is required", i)
		}
		if p.Spacing <= 0 {
			return fmt.Errorf("profiles[%d] (%s): spacing must be positive", i, p.Class)
		}
		if p.MaxWidth < 0 {
			return fmt.Errorf("profiles[%d] (%s): max_width must not be negative", i, p.Class)
		}
		if p.MaxWidth == 0 {
			unbounded++
		}
	}
	if len(c.Profiles) > 0 && unbounded != 1 {
		return fmt.Errorf("profiles: exactly one unbounded row (max_width: 0) required, got %d", unbounded)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)

	profiles := make([]ProfileConfig, len(c.Profiles))
	copy(profiles, c.Profiles)
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i].MaxWidth, profiles[j].MaxWidth
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})
	c.Derived.Profiles = profiles
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
