// Package config provides configuration loading and access for the dissolve viewer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Device profile names.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Oscillator disable policies.
const (
	DisableFreeze = "freeze"
	DisableReset  = "reset"
)

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig             `yaml:"screen"`
	Device     string                   `yaml:"device"`
	Profiles   map[string]DeviceProfile `yaml:"profiles"`
	Shape      ShapeConfig              `yaml:"shape"`
	Dissolve   DissolveConfig           `yaml:"dissolve"`
	Particles  ParticlesConfig          `yaml:"particles"`
	Oscillator OscillatorConfig         `yaml:"oscillator"`
	Motion     MotionConfig             `yaml:"motion"`
	Noise      NoiseConfig              `yaml:"noise"`
	Telemetry  TelemetryConfig          `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	TargetFPS    int     `yaml:"target_fps"`
	PixelDensity float64 `yaml:"pixel_density"`
}

// DeviceProfile holds the tuning constants that differ between device classes.
type DeviceProfile struct {
	SegmentsTubular  int        `yaml:"segments_tubular"`
	SegmentsRadial   int        `yaml:"segments_radial"`
	ParticleBaseSize float64    `yaml:"particle_base_size"`
	OscillatorStep   float64    `yaml:"oscillator_step"`
	CameraPosition   [3]float64 `yaml:"camera_position"`
}

// ShapeConfig holds torus knot parameters for the base shape.
type ShapeConfig struct {
	Radius float64 `yaml:"radius"`
	Tube   float64 `yaml:"tube"`
	P      int     `yaml:"p"`
	Q      int     `yaml:"q"`
}

// DissolveConfig holds the initial dissolve state.
type DissolveConfig struct {
	Progress  float64 `yaml:"progress"`
	EdgeWidth float64 `yaml:"edge_width"` // Width of the glowing band in noise units
	Frequency float64 `yaml:"frequency"`  // Spatial frequency fed to the noise oracle
	Amplitude float64 `yaml:"amplitude"`  // Noise output scale
	EdgeColor string  `yaml:"edge_color"` // Hex "#rrggbb"
	MeshColor string  `yaml:"mesh_color"` // Hex "#rrggbb"
}

// ParticlesConfig holds particle swarm parameters.
type ParticlesConfig struct {
	SpeedFactor    float64    `yaml:"speed_factor"`
	VelocityFactor [3]float64 `yaml:"velocity_factor"`
	WaveAmplitude  float64    `yaml:"wave_amplitude"`
	ZWave          bool       `yaml:"z_wave"`         // Add the three-harmonic z wave
	SpinIncrement  float64    `yaml:"spin_increment"` // Radians per step
	Color          string     `yaml:"color"`

	TetherMin     float64 `yaml:"tether_min"`
	TetherMax     float64 `yaml:"tether_max"`
	VelocityXYMin float64 `yaml:"velocity_xy_min"`
	VelocityXYMax float64 `yaml:"velocity_xy_max"`
	VelocityZMax  float64 `yaml:"velocity_z_max"`
}

// OscillatorConfig holds auto-dissolve parameters.
type OscillatorConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Low           float64 `yaml:"low"`
	High          float64 `yaml:"high"`
	Step          float64 `yaml:"step"`           // 0 = use device profile
	DisablePolicy string  `yaml:"disable_policy"` // "freeze" or "reset"
}

// MotionConfig holds the shared layer motion parameters.
type MotionConfig struct {
	BobAmplitude float64 `yaml:"bob_amplitude"`
	BobFrequency float64 `yaml:"bob_frequency"`
	SpinRate     float64 `yaml:"spin_rate"` // Radians per second around Y
}

// NoiseConfig selects the noise oracle.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // "simplex" or "perlin"
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// RGB is a color with float32 channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32       // Seconds per tick (1 / target_fps)
	Profile        DeviceProfile // Resolved device profile
	OscillatorStep float32       // Oscillator.Step or the profile value
	EdgeColor      RGB
	MeshColor      RGB
	ParticleColor  RGB
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values the simulation relies on.
func (c *Config) Validate() error {
	if c.Dissolve.EdgeWidth <= 0 {
		return fmt.Errorf("dissolve.edge_width must be > 0, got %v", c.Dissolve.EdgeWidth)
	}
	if c.Dissolve.Frequency <= 0 {
		return fmt.Errorf("dissolve.frequency must be > 0, got %v", c.Dissolve.Frequency)
	}
	if c.Oscillator.Low >= c.Oscillator.High {
		return fmt.Errorf("oscillator bounds inverted: low %v >= high %v", c.Oscillator.Low, c.Oscillator.High)
	}
	if c.Oscillator.Step < 0 {
		return fmt.Errorf("oscillator.step must be >= 0, got %v", c.Oscillator.Step)
	}
	switch c.Oscillator.DisablePolicy {
	case DisableFreeze, DisableReset:
	default:
		return fmt.Errorf("unknown oscillator.disable_policy %q", c.Oscillator.DisablePolicy)
	}
	if c.Particles.TetherMin > c.Particles.TetherMax {
		return fmt.Errorf("particles tether range inverted: %v > %v", c.Particles.TetherMin, c.Particles.TetherMax)
	}
	if _, ok := c.Profiles[c.Device]; !ok {
		return fmt.Errorf("unknown device profile %q", c.Device)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT32 = 1 / float32(fps)

	c.Derived.Profile = c.Profiles[c.Device]
	c.Derived.OscillatorStep = float32(c.Oscillator.Step)
	if c.Derived.OscillatorStep == 0 {
		c.Derived.OscillatorStep = float32(c.Derived.Profile.OscillatorStep)
	}

	var err error
	if c.Derived.EdgeColor, err = ParseHexColor(c.Dissolve.EdgeColor); err != nil {
		return fmt.Errorf("dissolve.edge_color: %w", err)
	}
	if c.Derived.MeshColor, err = ParseHexColor(c.Dissolve.MeshColor); err != nil {
		return fmt.Errorf("dissolve.mesh_color: %w", err)
	}
	if c.Derived.ParticleColor, err = ParseHexColor(c.Particles.Color); err != nil {
		return fmt.Errorf("particles.color: %w", err)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" (the leading '#' is optional).
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
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

// SetDevice switches the device profile and recomputes derived values.
func (c *Config) SetDevice(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("unknown device profile %q", name)
	}
	c.Device = name
	return c.computeDerived()
}
