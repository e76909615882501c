package storycam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storycam.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigNoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, `
camera:
  fov: 60
autoscroll:
  step: 0.02
cursor:
  spring:
    mass: 2
debug: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.FOV != 60 {
		t.Errorf("FOV = %v, want 60", cfg.Camera.FOV)
	}
	if cfg.Autoscroll.Step != 0.02 {
		t.Errorf("Step = %v, want 0.02", cfg.Autoscroll.Step)
	}
	if cfg.Cursor.Spring.Mass != 2 || cfg.Cursor.Spring.Stiffness != 100 {
		t.Errorf("cursor spring = %+v, want mass 2 stiffness 100", cfg.Cursor.Spring)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Camera.Near != 0.1 || cfg.Autoscroll.Sensitivity != 0.01 {
		t.Error("unset fields lost their defaults")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "camera:\n  fov: 60\n")
	t.Setenv("STORYCAM_CAMERA_FOV", "50")
	t.Setenv("STORYCAM_SPRING_STIFFNESS", "200")
	t.Setenv("STORYCAM_CURSOR_SPRING_MASS", "3")
	t.Setenv("STORYCAM_HOLD_ZOOM_RAMP_SECONDS", "0")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.FOV != 50 {
		t.Errorf("FOV = %v, want 50", cfg.Camera.FOV)
	}
	if cfg.Spring.Stiffness != 200 {
		t.Errorf("spring stiffness = %v, want 200", cfg.Spring.Stiffness)
	}
	if cfg.Cursor.Spring.Mass != 3 {
		t.Errorf("cursor spring mass = %v, want 3", cfg.Cursor.Spring.Mass)
	}
	if cfg.HoldZoom.RampSeconds != 0 {
		t.Errorf("ramp = %v, want 0", cfg.HoldZoom.RampSeconds)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})
	t.Run("bad yaml", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "camera: [")); err == nil {
			t.Error("expected parse error")
		}
	})
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("STORYCAM_CAMERA_FOV", "wide")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected env parse error")
		}
	})
	t.Run("invalid value", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "camera:\n  far: 0.01\n"))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("err = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fov zero", func(c *Config) { c.Camera.FOV = 0 }},
		{"fov straight", func(c *Config) { c.Camera.FOV = 180 }},
		{"near zero", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"aspect", func(c *Config) { c.Camera.Aspect = 0 }},
		{"zoom", func(c *Config) { c.Camera.Zoom = -1 }},
		{"step", func(c *Config) { c.Autoscroll.Step = -0.1 }},
		{"hold zoom", func(c *Config) { c.HoldZoom.Zoom = 0 }},
		{"ramp", func(c *Config) { c.HoldZoom.RampSeconds = -1 }},
		{"threshold", func(c *Config) { c.Cursor.Threshold = -1 }},
		{"spring mass", func(c *Config) { c.Spring.Mass = 0 }},
		{"cursor stiffness", func(c *Config) { c.Cursor.Spring.Stiffness = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
