// Package config loads the viewer configuration: embedded defaults overlaid by an optional YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation error returned from Load.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all viewer configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Input    InputConfig    `yaml:"input"`
	Shader   ShaderConfig   `yaml:"shader"`
	Scene    SceneConfig    `yaml:"scene"`
	Profiler ProfilerConfig `yaml:"profiler"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds window and surface settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
	MSAA   bool   `yaml:"msaa"`
}

// CameraConfig holds the initial camera placement and rig tuning.
type CameraConfig struct {
	Position   [3]float32 `yaml:"position"`    // initial camera position; the rig orbits the origin from here
	FovDegrees float32    `yaml:"fov_degrees"` // vertical field of view
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	MinRadius  float32    `yaml:"min_radius"` // zoom floor
	ZoomRate   float32    `yaml:"zoom_rate"`  // fraction of the radius removed per scroll unit
}

// InputConfig maps logical camera buttons to mouse buttons ("left", "right", "middle").
type InputConfig struct {
	OrbitButton string `yaml:"orbit_button"`
	PanButton   string `yaml:"pan_button"`
}

// ShaderConfig holds the SDF shader paths and hot reload settings.
type ShaderConfig struct {
	Vertex     string `yaml:"vertex"`
	Fragment   string `yaml:"fragment"`
	Watch      bool   `yaml:"watch"`
	DebounceMS int    `yaml:"debounce_ms"`
	Workers    int    `yaml:"workers"`
}

// SceneConfig holds the bounding mesh settings.
type SceneConfig struct {
	CubeSize float32 `yaml:"cube_size"` // edge length of the cube the SDF is ray marched inside
}

// ProfilerConfig holds frame statistics and camera trace settings.
type ProfilerConfig struct {
	Enabled         bool    `yaml:"enabled"`
	IntervalSeconds float64 `yaml:"interval_seconds"`
	TracePath       string  `yaml:"trace_path"` // CSV camera trace output; empty disables tracing
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	FovRadians     float32
	Position       mgl32.Vec3
	OrbitButton    int
	PanButton      int
	Debounce       time.Duration
	ReportInterval time.Duration
}

var global *Config

// Init loads the config and stores it for Cfg.
//
// Parameters:
//   - path: the user config file, or "" for defaults only
//
// Returns:
//   - error: an error if loading fails
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is Init that panics on failure.
//
// Parameters:
//   - path: the user config file, or "" for defaults only
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the config stored by Init.
//
// Returns:
//   - *Config: the global config
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load parses the embedded defaults, overlays the user file if one is given, validates the
// result and computes derived values.
//
// Parameters:
//   - path: the user config file, or "" for defaults only
//
// Returns:
//   - *Config: the loaded config
//   - error: a read or parse error, or a validation error wrapping ErrInvalidConfig
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
		// Only fields present in the file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks value ranges and button names.
//
// Returns:
//   - error: the first problem found, wrapping ErrInvalidConfig
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if !(c.Camera.FovDegrees > 0 && c.Camera.FovDegrees < 180) {
		return invalid("camera.fov_degrees %v must be in (0, 180)", c.Camera.FovDegrees)
	}
	if !(c.Camera.Near > 0) || !(c.Camera.Far > c.Camera.Near) {
		return invalid("camera clip planes near=%v far=%v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if !(c.Camera.MinRadius > 0) {
		return invalid("camera.min_radius %v must be positive", c.Camera.MinRadius)
	}
	if !(c.Camera.ZoomRate > 0 && c.Camera.ZoomRate < 1) {
		return invalid("camera.zoom_rate %v must be in (0, 1)", c.Camera.ZoomRate)
	}
	for _, v := range c.Camera.Position {
		if !common.Float32Finite(v) {
			return invalid("camera.position %v must be finite", c.Camera.Position)
		}
	}
	if _, ok := common.MouseButtonByName(c.Input.OrbitButton); !ok {
		return invalid("input.orbit_button %q is not a mouse button", c.Input.OrbitButton)
	}
	if _, ok := common.MouseButtonByName(c.Input.PanButton); !ok {
		return invalid("input.pan_button %q is not a mouse button", c.Input.PanButton)
	}
	if c.Input.OrbitButton == c.Input.PanButton {
		return invalid("input.orbit_button and input.pan_button are both %q", c.Input.OrbitButton)
	}
	if c.Shader.Vertex == "" || c.Shader.Fragment == "" {
		return invalid("shader.vertex and shader.fragment are required")
	}
	if c.Shader.DebounceMS < 0 || c.Shader.Workers < 1 {
		return invalid("shader.debounce_ms %d must be >= 0 and shader.workers %d >= 1", c.Shader.DebounceMS, c.Shader.Workers)
	}
	if !(c.Scene.CubeSize > 0) {
		return invalid("scene.cube_size %v must be positive", c.Scene.CubeSize)
	}
	if c.Profiler.Enabled && !(c.Profiler.IntervalSeconds > 0) {
		return invalid("profiler.interval_seconds %v must be positive", c.Profiler.IntervalSeconds)
	}
	return nil
}

// computeDerived fills Derived from validated values.
func (c *Config) computeDerived() {
	c.Derived.FovRadians = mgl32.DegToRad(c.Camera.FovDegrees)
	c.Derived.Position = mgl32.Vec3(c.Camera.Position)
	c.Derived.OrbitButton, _ = common.MouseButtonByName(c.Input.OrbitButton)
	c.Derived.PanButton, _ = common.MouseButtonByName(c.Input.PanButton)
	c.Derived.Debounce = time.Duration(c.Shader.DebounceMS) * time.Millisecond
	c.Derived.ReportInterval = time.Duration(c.Profiler.IntervalSeconds * float64(time.Second))
}

// WriteYAML writes the config, without derived values, to path.
//
// Parameters:
//   - path: the output file
//
// Returns:
//   - error: a marshal or write error
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
