package scene

import (
	"testing"

	"github.com/san-kum/orbitlab/internal/config"
)

func TestParseMass(t *testing.T) {
	const d = 1000.0
	cases := []struct {
		in   string
		want float64
	}{
		{"Original", d},
		{"  ORIGINAL mass ", d},
		{"0.5 times", 0.5 * d},
		{"2 Times", 2 * d},
		{"x3 time", 3 * d},
		{".25times", 0.25 * d},
		{"3", 3},
		{"3.5kg", 3.5},
		{"1e3", 1000},
		{"", d},
		{"   ", d},
		{"-4", d},
		{"0", d},
		{"-2 times", d},
		{"times", d},
		{"banana", d},
		{"NaN", d},
		{"Infinity", d},
		{"1e400", d},
	}
	for _, tc := range cases {
		if got := ParseMass(tc.in, d); got != tc.want {
			t.Errorf("ParseMass(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMassDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := ParseMass("0.75 times", 8); got != 6 {
			t.Fatalf("run %d: got %v", i, got)
		}
	}
}

func TestParseOrbitalParams(t *testing.T) {
	cfg := config.DefaultConfig().Orbital
	p := ParseOrbitalParams(cfg, "2 times", map[string]string{
		"Earth":  "0.5 times",
		"Mars":   "banana",
		"Nibiru": "9",
	})
	if p.SunMass != 2*cfg.Sun.DefaultMass {
		t.Errorf("SunMass = %v", p.SunMass)
	}
	if got := p.bodyMass("Earth", 1); got != 0.5 {
		t.Errorf("Earth mass = %v, want 0.5", got)
	}
	if got := p.bodyMass("Mars", 0.107); got != 0.107 {
		t.Errorf("Mars mass = %v, want default", got)
	}
	if _, ok := p.BodyMass["Nibiru"]; ok {
		t.Error("unknown body kept")
	}
	if got := p.bodyMass("Venus", 0.815); got != 0.815 {
		t.Errorf("Venus mass = %v, want default", got)
	}
}

func TestOrbitalParamsZeroValueUsesDefaults(t *testing.T) {
	var p OrbitalParams
	if p.sunMass(1000) != 1000 || p.bodyMass("Earth", 1) != 1 {
		t.Error("zero params did not fall back to defaults")
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]float64{
		"-1":                -1,
		"clockwise":         -1,
		" CW ":              -1,
		"1":                 1,
		"counter-clockwise": 1,
		"ccw":               1,
		"":                  1,
		"sideways":          1,
	}
	for in, want := range cases {
		if got := ParseDirection(in); got != want {
			t.Errorf("ParseDirection(%q) = %v, want %v", in, got, want)
		}
	}
}
