package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitlab/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Orbital.G <= 0 {
		t.Error("g should be positive")
	}
	if cfg.Orbital.TrailCapacity != 250 {
		t.Errorf("expected trail capacity 250, got %d", cfg.Orbital.TrailCapacity)
	}
	if len(cfg.Orbital.Bodies) == 0 {
		t.Error("expected a default roster")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitlab.yaml")
	cfg := DefaultConfig()
	cfg.Orbital.TimeScale = 12
	cfg.Magnetic.DefaultStrength = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Orbital.TimeScale != 12 || loaded.Magnetic.DefaultStrength != 7 {
		t.Errorf("round trip lost values: %+v", loaded.Orbital)
	}
	if len(loaded.Orbital.Bodies) != len(cfg.Orbital.Bodies) {
		t.Errorf("roster length %d, want %d", len(loaded.Orbital.Bodies), len(cfg.Orbital.Bodies))
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("orbital:\n  time_scale: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Orbital.TimeScale != 5 {
		t.Errorf("time_scale = %v, want 5", cfg.Orbital.TimeScale)
	}
	if cfg.Orbital.G != DefaultG {
		t.Errorf("g = %v, want default %v", cfg.Orbital.G, DefaultG)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("orbital:\n  g: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero time scale", func(c *Config) { c.Orbital.TimeScale = 0 }},
		{"zero trail", func(c *Config) { c.Orbital.TrailCapacity = 0 }},
		{"min below exclusion", func(c *Config) { c.Magnetic.MinRadius = 1 }},
		{"bad body", func(c *Config) { c.Orbital.Bodies[0].Orbit = 0 }},
		{"bad factor", func(c *Config) { c.Orbital.Eccentricity[0].Factor = 1.5 }},
		{"zero fps", func(c *Config) { c.View.FPS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEccentricityFor(t *testing.T) {
	o := DefaultConfig().Orbital
	tests := []struct {
		body     int
		mass     float64
		expected float64
	}{
		{0, 1000, 1},
		{0, 1500, 1},
		{0, 2000, 0.9},
		{1, 2000, 0.9},
		{2, 2000, 1},
		{0, 5000, 0.8},
		{3, 5000, 1},
	}
	for _, tt := range tests {
		if got := o.EccentricityFor(tt.body, tt.mass); got != tt.expected {
			t.Errorf("EccentricityFor(%d, %v) = %v, want %v", tt.body, tt.mass, got, tt.expected)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("inner")
	if err != nil {
		t.Fatalf("GetPreset: %v", err)
	}
	if len(cfg.Orbital.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(cfg.Orbital.Bodies))
	}
	if len(DefaultConfig().Orbital.Bodies) != 4 {
		t.Error("preset mutated the defaults")
	}
	for _, name := range ListPresets() {
		cfg, err := GetPreset(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg, err := GetPreset("nonexistent")
	if cfg != nil || !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v %v", cfg, err)
	}
}

func TestApplyPresetLayersOverLoaded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbital.G = 0.5
	if err := ApplyPreset(cfg, "leapfrog"); err != nil {
		t.Fatal(err)
	}
	if cfg.Orbital.Integrator != "leapfrog" || cfg.Orbital.G != 0.5 {
		t.Errorf("got integrator %q, G %v", cfg.Orbital.Integrator, cfg.Orbital.G)
	}
	if err := ApplyPreset(cfg, "warp"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("err = %v", err)
	}
}

func TestInnerPresetOnShortRoster(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbital.Bodies = append([]BodyConfig(nil), cfg.Orbital.Bodies[:2]...)
	if err := ApplyPreset(cfg, "inner"); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Orbital.Bodies) != 2 || cfg.Orbital.Bodies[1].Name != "Venus" {
		t.Errorf("bodies = %+v", cfg.Orbital.Bodies)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Clone()
	c.Orbital.Bodies[0].Name = "Vulcan"
	c.Orbital.Eccentricity[0].Factor = 0.1
	c.Orbital.G = 1

	if cfg.Orbital.Bodies[0].Name != "Mercury" || cfg.Orbital.Eccentricity[0].Factor != 0.9 || cfg.Orbital.G != DefaultG {
		t.Errorf("clone leaked into original: %+v", cfg.Orbital)
	}
}
