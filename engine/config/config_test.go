package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/go-gl/mathgl/mgl32"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Derived.Position != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("expected default position (0,0,10), got %v", cfg.Derived.Position)
	}
	if cfg.Camera.MinRadius != 0.05 || cfg.Camera.ZoomRate != 0.2 {
		t.Errorf("unexpected rig defaults min_radius=%v zoom_rate=%v", cfg.Camera.MinRadius, cfg.Camera.ZoomRate)
	}
	if cfg.Derived.OrbitButton != common.MouseButtonRight || cfg.Derived.PanButton != common.MouseButtonMiddle {
		t.Errorf("expected right=orbit, middle=pan, got %d/%d", cfg.Derived.OrbitButton, cfg.Derived.PanButton)
	}
	if !mgl32.FloatEqualThreshold(cfg.Derived.FovRadians, mgl32.DegToRad(45), 1e-6) {
		t.Errorf("expected 45 degree fov, got %v rad", cfg.Derived.FovRadians)
	}
	if cfg.Derived.Debounce != 100*time.Millisecond {
		t.Errorf("expected 100ms debounce, got %v", cfg.Derived.Debounce)
	}
	if cfg.Profiler.TracePath != "" {
		t.Errorf("tracing must be off by default, got %q", cfg.Profiler.TracePath)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
camera:
  position: [3, 4, 0]
  zoom_rate: 0.5
input:
  orbit_button: left
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Derived.Position != (mgl32.Vec3{3, 4, 0}) {
		t.Errorf("expected overlay position, got %v", cfg.Derived.Position)
	}
	if cfg.Camera.ZoomRate != 0.5 {
		t.Errorf("expected zoom rate 0.5, got %v", cfg.Camera.ZoomRate)
	}
	if cfg.Camera.MinRadius != 0.05 {
		t.Errorf("fields absent from the file must keep defaults, got min_radius %v", cfg.Camera.MinRadius)
	}
	if cfg.Derived.OrbitButton != common.MouseButtonLeft {
		t.Errorf("expected left orbit button, got %d", cfg.Derived.OrbitButton)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "window:\n  width: 0\n"},
		{"fov too wide", "camera:\n  fov_degrees: 180\n"},
		{"far before near", "camera:\n  near: 10\n  far: 1\n"},
		{"zero min radius", "camera:\n  min_radius: 0\n"},
		{"zoom rate one", "camera:\n  zoom_rate: 1\n"},
		{"unknown button", "input:\n  orbit_button: thumb\n"},
		{"same buttons", "input:\n  orbit_button: middle\n"},
		{"no workers", "shader:\n  workers: 0\n"},
		{"missing fragment", "shader:\n  fragment: \"\"\n"},
		{"zero cube", "scene:\n  cube_size: 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := Load(writeConfig(t, "camera: [not, a, map]\n")); err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Camera.ZoomRate = 0.3
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Camera.ZoomRate != 0.3 {
		t.Errorf("expected zoom rate 0.3 after reload, got %v", reloaded.Camera.ZoomRate)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	global = nil
	defer func() {
		if recover() == nil {
			t.Error("expected Cfg to panic before Init")
		}
	}()
	_ = Cfg()
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { global = nil })
	if err := Init(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Cfg().Window.Title != "oxy-sdf" {
		t.Errorf("expected default title, got %q", Cfg().Window.Title)
	}
}
