// Package config provides configuration loading and access for the demos.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/wasd/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Backdrop  BackdropConfig  `yaml:"backdrop"`
	Click     ClickConfig     `yaml:"click"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// CameraConfig holds camera control settings.
type CameraConfig struct {
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	PanSpeed float64 `yaml:"pan_speed"` // Screen pixels per frame at zoom 1
	ZoomStep float64 `yaml:"zoom_step"` // Factor applied per +/- key press
}

// PhysicsConfig holds frame timing parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`           // Fixed step for headless runs
	MaxFrameDT float64 `yaml:"max_frame_dt"` // Clamp for long graphical frames (0 = no clamp)
}

// PlayerConfig describes the controllable sprite.
type PlayerConfig struct {
	Speed  float64 `yaml:"speed"`  // World units per second
	Radius float64 `yaml:"radius"` // Polygon circumradius
	Sides  int     `yaml:"sides"`
	Z      float64 `yaml:"z"`
	Color  string  `yaml:"color"` // #rrggbb or #rrggbbaa
}

// BackdropConfig describes the static rectangle behind the player.
type BackdropConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Color  string  `yaml:"color"`
}

// ClickConfig holds click-to-move parameters.
type ClickConfig struct {
	FollowWhileHeld bool    `yaml:"follow_while_held"` // Retarget every frame while the button is down
	MarkerRadius    float64 `yaml:"marker_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of sim time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32 // Physics.DT as float32
	MaxFrameDT32  float32 // Physics.MaxFrameDT as float32
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	PlayerColor   components.Color
	BackdropColor components.Color
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse overlays the given YAML onto the embedded defaults.
// Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Physics.DT <= 0 {
		errs = append(errs, fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT))
	}
	if c.Physics.MaxFrameDT < 0 {
		errs = append(errs, fmt.Errorf("physics.max_frame_dt must not be negative, got %v", c.Physics.MaxFrameDT))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player.speed must not be negative, got %v", c.Player.Speed))
	}
	if c.Player.Sides < 3 {
		errs = append(errs, fmt.Errorf("player.sides must be at least 3, got %d", c.Player.Sides))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %v", c.Player.Radius))
	}
	if c.Camera.MinZoom <= 0 {
		errs = append(errs, fmt.Errorf("camera.min_zoom must be positive, got %v", c.Camera.MinZoom))
	}
	if c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("camera.max_zoom (%v) below min_zoom (%v)", c.Camera.MaxZoom, c.Camera.MinZoom))
	}
	if c.Camera.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("camera.zoom_step must be greater than 1, got %v", c.Camera.ZoomStep))
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.MaxFrameDT32 = float32(c.Physics.MaxFrameDT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	var err error
	if c.Derived.PlayerColor, err = ParseColor(c.Player.Color); err != nil {
		return fmt.Errorf("player.color: %w", err)
	}
	if c.Derived.BackdropColor, err = ParseColor(c.Backdrop.Color); err != nil {
		return fmt.Errorf("backdrop.color: %w", err)
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to 255.
func ParseColor(s string) (components.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return components.Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return components.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return components.Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
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
