package storycam

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override read by LoadConfig.
const EnvPrefix = "STORYCAM_"

// ErrInvalidConfig is returned (wrapped) by Config.Validate.
var ErrInvalidConfig = errors.New("storycam: invalid config")

// Config holds every tunable of the camera core.
type Config struct {
	Camera     CameraConfig     `yaml:"camera" envPrefix:"CAMERA_"`
	Spring     SpringConfig     `yaml:"spring" envPrefix:"SPRING_"`
	Autoscroll AutoscrollConfig `yaml:"autoscroll" envPrefix:"AUTOSCROLL_"`
	HoldZoom   HoldZoomConfig   `yaml:"hold_zoom" envPrefix:"HOLD_ZOOM_"`
	Cursor     CursorConfig     `yaml:"cursor" envPrefix:"CURSOR_"`
	// Debug enables debug-level checks such as the effect stack size
	// warning.
	Debug bool `yaml:"debug" env:"DEBUG"`
}

// CameraConfig describes the lens and the framing offset.
type CameraConfig struct {
	FOV    float64 `yaml:"fov" env:"FOV"`
	Near   float64 `yaml:"near" env:"NEAR"`
	Far    float64 `yaml:"far" env:"FAR"`
	Aspect float64 `yaml:"aspect" env:"ASPECT"`
	// Pitch is the X rotation in radians (negative looks down).
	Pitch float64 `yaml:"pitch" env:"PITCH"`
	// Height and Distance offset the eye from its focus point along Y and
	// Z before zoom scaling.
	Height   float64 `yaml:"height" env:"HEIGHT"`
	Distance float64 `yaml:"distance" env:"DISTANCE"`
	// Zoom is the baseline zoom used when no effect supplies one.
	Zoom float64 `yaml:"zoom" env:"ZOOM"`
}

// AutoscrollConfig tunes the AutoscrollCoordinator.
type AutoscrollConfig struct {
	// Step is the depth advanced per autoscroll tick.
	Step float64 `yaml:"step" env:"STEP"`
	// Sensitivity scales wheel deltas in Controlled mode.
	Sensitivity float64 `yaml:"sensitivity" env:"SENSITIVITY"`
}

// HoldZoomConfig tunes the hold-to-zoom effect.
type HoldZoomConfig struct {
	Zoom        float64 `yaml:"zoom" env:"ZOOM"`
	RampSeconds float64 `yaml:"ramp_seconds" env:"RAMP_SECONDS"`
}

// CursorConfig tunes the CursorTracker.
type CursorConfig struct {
	// Threshold is the minimum distance a new raw point must be from the
	// smoothed point before it is accepted.
	Threshold float64      `yaml:"threshold" env:"THRESHOLD"`
	Spring    SpringConfig `yaml:"spring" envPrefix:"SPRING_"`
}

// DefaultConfig returns the tuning the camera ships with.
func DefaultConfig() Config {
	return Config{
		Camera: CameraConfig{
			FOV:      41,
			Near:     0.1,
			Far:      1000,
			Aspect:   16.0 / 9.0,
			Pitch:    -0.95,
			Height:   5,
			Distance: 3.6,
			Zoom:     1,
		},
		Spring: CriticalSpring(120, 1),
		Autoscroll: AutoscrollConfig{
			Step:        0.005,
			Sensitivity: 0.01,
		},
		HoldZoom: HoldZoomConfig{
			Zoom:        0.3,
			RampSeconds: 0.35,
		},
		Cursor: CursorConfig{
			Threshold: 0.25,
			Spring:    SpringConfig{Stiffness: 100, Damping: 30, Mass: 1},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and then applies
// STORYCAM_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first value that would make the core misbehave.
func (c Config) Validate() error {
	switch {
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v out of (0, 180)", ErrInvalidConfig, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Camera.Aspect <= 0:
		return fmt.Errorf("%w: camera aspect %v", ErrInvalidConfig, c.Camera.Aspect)
	case c.Camera.Zoom <= 0:
		return fmt.Errorf("%w: camera zoom %v", ErrInvalidConfig, c.Camera.Zoom)
	case c.Autoscroll.Step < 0:
		return fmt.Errorf("%w: autoscroll step %v", ErrInvalidConfig, c.Autoscroll.Step)
	case c.HoldZoom.Zoom <= 0 || c.HoldZoom.RampSeconds < 0:
		return fmt.Errorf("%w: hold zoom %v over %vs", ErrInvalidConfig, c.HoldZoom.Zoom, c.HoldZoom.RampSeconds)
	case c.Cursor.Threshold < 0:
		return fmt.Errorf("%w: cursor threshold %v", ErrInvalidConfig, c.Cursor.Threshold)
	}
	if err := c.Spring.validate("spring"); err != nil {
		return err
	}
	return c.Cursor.Spring.validate("cursor spring")
}

func (c SpringConfig) validate(name string) error {
	if c.Stiffness <= 0 || c.Mass <= 0 || c.Damping < 0 {
		return fmt.Errorf("%w: %s stiffness=%v damping=%v mass=%v",
			ErrInvalidConfig, name, c.Stiffness, c.Damping, c.Mass)
	}
	return nil
}
