package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitlab/internal/dynamo"
)

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"solar": {
		Description: "four inner planets, semi-implicit Euler",
		Apply:       func(*Config) {},
	},
	"inner": {
		Description: "Mercury, Venus and Earth only",
		Apply: func(c *Config) {
			c.Orbital.Bodies = c.Orbital.Bodies[:min(3, len(c.Orbital.Bodies))]
		},
	},
	"slowmo": {
		Description: "quarter perceived speed with long trails",
		Apply: func(c *Config) {
			c.Orbital.TimeScale = DefaultTimeScale / 4
			c.Orbital.TrailCapacity = 600
		},
	},
	"leapfrog": {
		Description: "kick-drift-kick stepper instead of Euler",
		Apply: func(c *Config) {
			c.Orbital.Integrator = "leapfrog"
		},
	},
	"circular": {
		Description: "no eccentricity rules, orbits stay circular for any sun mass",
		Apply: func(c *Config) {
			c.Orbital.Eccentricity = nil
		},
	},
	"dense-field": {
		Description: "two field lines per unit of current",
		Apply: func(c *Config) {
			c.Magnetic.LinesPerUnit = 2
			c.Magnetic.MaxLines = 40
		},
	},
}

// GetPreset returns a fresh default config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	cfg := DefaultConfig()
	if err := ApplyPreset(cfg, name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset layers the named preset over cfg.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	p.Apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
