package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/logging"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG             = 0.08
	DefaultTimeScale     = 40.0
	DefaultEpsilon       = 1e-6
	DefaultMaxFrameDelta = 0.1
	DefaultFitMargin     = 0.92
	DefaultSunMass       = 1000.0
	DefaultSunRadius     = 24.0
	DefaultStrength      = 5.0
	DefaultFPS           = 60
	// DefaultBodyMaxScale caps a body's mass-derived size when its
	// max_scale is unset.
	DefaultBodyMaxScale = 3.0
)

type Config struct {
	Orbital  OrbitalConfig  `yaml:"orbital"`
	Magnetic MagneticConfig `yaml:"magnetic"`
	View     ViewConfig     `yaml:"view"`
	Log      logging.Config `yaml:"log"`
}

type OrbitalConfig struct {
	G             float64 `yaml:"g"`
	TimeScale     float64 `yaml:"time_scale"`
	TrailCapacity int     `yaml:"trail_capacity"`
	Epsilon       float64 `yaml:"epsilon"`
	// MaxFrameDelta caps one frame's wall-clock delta, in seconds.
	MaxFrameDelta float64            `yaml:"max_frame_delta"`
	Integrator    string             `yaml:"integrator"`
	Fit           bool               `yaml:"fit"`
	FitMargin     float64            `yaml:"fit_margin"`
	Sun           SunConfig          `yaml:"sun"`
	Bodies        []BodyConfig       `yaml:"bodies"`
	Eccentricity  []EccentricityRule `yaml:"eccentricity"`
}

type SunConfig struct {
	Name        string  `yaml:"name"`
	Radius      float64 `yaml:"radius"`
	DefaultMass float64 `yaml:"default_mass"`
	MinScale    float64 `yaml:"min_scale"`
	MaxScale    float64 `yaml:"max_scale"`
	Color       string  `yaml:"color"`
}

type BodyConfig struct {
	Name        string  `yaml:"name"`
	Orbit       float64 `yaml:"orbit"`
	Radius      float64 `yaml:"radius"`
	DefaultMass float64 `yaml:"default_mass"`
	MinScale    float64 `yaml:"min_scale"`
	MaxScale    float64 `yaml:"max_scale"`
	Color       string  `yaml:"color"`
	PhaseDeg    float64 `yaml:"phase_deg"`
}

// SizeLimit returns the configured max_scale, or DefaultBodyMaxScale.
func (b BodyConfig) SizeLimit() float64 {
	if b.MaxScale > 0 {
		return math.Max(b.MaxScale, b.MinScale)
	}
	return math.Max(DefaultBodyMaxScale, b.MinScale)
}

// EccentricityRule slows the first Bodies orbiters to Factor of circular
// speed once the attractor mass exceeds AboveMass. It is a visual effect,
// not physics.
type EccentricityRule struct {
	AboveMass float64 `yaml:"above_mass"`
	Factor    float64 `yaml:"factor"`
	Bodies    int     `yaml:"bodies"`
}

type MagneticConfig struct {
	MinRadius       float64 `yaml:"min_radius"`
	ExclusionRadius float64 `yaml:"exclusion_radius"`
	LinesPerUnit    float64 `yaml:"lines_per_unit"`
	MaxLines        int     `yaml:"max_lines"`
	AngularStepDeg  float64 `yaml:"angular_step_deg"`
	FillRatio       float64 `yaml:"fill_ratio"`
	DefaultStrength float64 `yaml:"default_strength"`
	StrengthStep    float64 `yaml:"strength_step"`
	Precision       int     `yaml:"precision"`
}

type ViewConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Orbital: OrbitalConfig{
			G:             DefaultG,
			TimeScale:     DefaultTimeScale,
			TrailCapacity: 250,
			Epsilon:       DefaultEpsilon,
			MaxFrameDelta: DefaultMaxFrameDelta,
			Integrator:    "euler",
			Fit:           true,
			FitMargin:     DefaultFitMargin,
			Sun: SunConfig{
				Name:        "Sun",
				Radius:      DefaultSunRadius,
				DefaultMass: DefaultSunMass,
				MinScale:    0.7,
				MaxScale:    2.2,
				Color:       "#ffd27a",
			},
			Bodies: []BodyConfig{
				{Name: "Mercury", Orbit: 70, Radius: 4, DefaultMass: 0.055, MinScale: 0.5, Color: "#b1a79c", PhaseDeg: 0},
				{Name: "Venus", Orbit: 120, Radius: 7, DefaultMass: 0.815, MinScale: 0.6, Color: "#e8c07d", PhaseDeg: 90},
				{Name: "Earth", Orbit: 180, Radius: 10, DefaultMass: 1, MinScale: 0.6, Color: "#7fbfff", PhaseDeg: 180},
				{Name: "Mars", Orbit: 215, Radius: 6, DefaultMass: 0.107, MinScale: 0.5, Color: "#e07a5f", PhaseDeg: 270},
			},
			Eccentricity: []EccentricityRule{
				{AboveMass: 1500, Factor: 0.9, Bodies: 2},
				{AboveMass: 3000, Factor: 0.8, Bodies: 2},
			},
		},
		Magnetic: MagneticConfig{
			MinRadius:       10,
			ExclusionRadius: 6,
			LinesPerUnit:    1,
			MaxLines:        24,
			AngularStepDeg:  5,
			FillRatio:       0.95,
			DefaultStrength: DefaultStrength,
			StrengthStep:    0.5,
			Precision:       2,
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: "cyberpunk",
		},
		Log: logging.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	o, m := c.Orbital, c.Magnetic
	checks := []struct {
		ok     bool
		field  string
		reason string
	}{
		{o.G > 0, "orbital.g", "must be positive"},
		{o.TimeScale > 0, "orbital.time_scale", "must be positive"},
		{o.TrailCapacity > 0, "orbital.trail_capacity", "must be positive"},
		{o.Epsilon >= 0, "orbital.epsilon", "must not be negative"},
		{o.MaxFrameDelta > 0, "orbital.max_frame_delta", "must be positive"},
		{!o.Fit || (o.FitMargin > 0 && o.FitMargin <= 1), "orbital.fit_margin", "must be in (0, 1]"},
		{o.Sun.Radius > 0, "orbital.sun.radius", "must be positive"},
		{o.Sun.DefaultMass > 0, "orbital.sun.default_mass", "must be positive"},
		{m.MinRadius >= m.ExclusionRadius, "magnetic.min_radius", "must not be below exclusion_radius"},
		{m.ExclusionRadius >= 0, "magnetic.exclusion_radius", "must not be negative"},
		{m.LinesPerUnit > 0, "magnetic.lines_per_unit", "must be positive"},
		{m.AngularStepDeg > 0, "magnetic.angular_step_deg", "must be positive"},
		{m.DefaultStrength > 0, "magnetic.default_strength", "must be positive"},
		{c.View.FPS > 0, "view.fps", "must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return &dynamo.ConfigError{Field: chk.field, Reason: chk.reason}
		}
	}
	for i, b := range o.Bodies {
		if b.MaxScale < 0 || b.MaxScale > 0 && b.MaxScale < b.MinScale {
			return &dynamo.ConfigError{
				Field:  fmt.Sprintf("orbital.bodies[%d].max_scale", i),
				Reason: "must not be below min_scale",
			}
		}
		if b.Orbit <= 0 || b.Radius <= 0 || b.DefaultMass <= 0 {
			return &dynamo.ConfigError{
				Field:  fmt.Sprintf("orbital.bodies[%d]", i),
				Reason: "needs positive orbit, radius and default_mass",
			}
		}
	}
	for i, r := range o.Eccentricity {
		if r.Factor <= 0 || r.Factor > 1 {
			return &dynamo.ConfigError{Field: fmt.Sprintf("orbital.eccentricity[%d].factor", i), Reason: "must be in (0, 1]"}
		}
	}
	return nil
}

// EccentricityFor returns the factor for the i-th orbiter under an
// attractor of the given mass: the rule with the highest threshold below
// mass wins, bodies past its count keep 1.
func (o OrbitalConfig) EccentricityFor(i int, mass float64) float64 {
	var best *EccentricityRule
	for k := range o.Eccentricity {
		r := &o.Eccentricity[k]
		if mass > r.AboveMass && (best == nil || r.AboveMass > best.AboveMass) {
			best = r
		}
	}
	if best == nil || i >= best.Bodies {
		return 1
	}
	return best.Factor
}

// MaxOrbit returns the largest configured orbit radius.
func (o OrbitalConfig) MaxOrbit() float64 {
	max := 0.0
	for _, b := range o.Bodies {
		if b.Orbit > max {
			max = b.Orbit
		}
	}
	return max
}

// Clone returns a copy whose slices can be changed without touching c.
func (c *Config) Clone() *Config {
	out := *c
	out.Orbital.Bodies = append([]BodyConfig(nil), c.Orbital.Bodies...)
	out.Orbital.Eccentricity = append([]EccentricityRule(nil), c.Orbital.Eccentricity...)
	return &out
}
