package scene

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/orbitlab/internal/config"
)

var (
	leadingNumber  = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
	embeddedNumber = regexp.MustCompile(`[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
)

// ParseMass resolves free-text mass input against a default mass def.
//
//	"", "Original"         -> def
//	"0.5 times", "x2 time" -> def * number
//	"3", "3kg"             -> 3
//
// Anything unparseable, non-finite or non-positive resolves to def.
func ParseMass(text string, def float64) float64 {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || strings.Contains(s, "original") {
		return def
	}
	if strings.Contains(s, "time") {
		if v, ok := positive(embeddedNumber.FindString(s)); ok {
			return def * v
		}
		return def
	}
	if v, ok := positive(leadingNumber.FindString(s)); ok {
		return v
	}
	return def
}

func positive(num string) (float64, bool) {
	if num == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) || v <= 0 {
		return 0, false
	}
	return v, true
}

// OrbitalParams are the resolved user inputs for one orbital start. Zero or
// missing masses mean "use the configured default".
type OrbitalParams struct {
	SunMass  float64
	BodyMass map[string]float64
}

// ParseOrbitalParams runs ParseMass over raw text inputs: one for the
// attractor and one per roster body, keyed by body name.
func ParseOrbitalParams(cfg config.OrbitalConfig, sun string, bodies map[string]string) OrbitalParams {
	p := OrbitalParams{
		SunMass:  ParseMass(sun, cfg.Sun.DefaultMass),
		BodyMass: make(map[string]float64, len(bodies)),
	}
	for _, b := range cfg.Bodies {
		if text, ok := bodies[b.Name]; ok {
			p.BodyMass[b.Name] = ParseMass(text, b.DefaultMass)
		}
	}
	return p
}

func (p OrbitalParams) sunMass(def float64) float64 {
	return orDefault(p.SunMass, def)
}

func (p OrbitalParams) bodyMass(name string, def float64) float64 {
	return orDefault(p.BodyMass[name], def)
}

func orDefault(v, def float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return def
}

// ParseDirection maps a direction selector to +1 or -1. Negative numbers
// and "clockwise"/"cw" select -1; everything else is counter-clockwise.
func ParseDirection(text string) float64 {
	s := strings.ToLower(strings.TrimSpace(text))
	switch {
	case s == "cw", strings.HasPrefix(s, "clockwise"):
		return -1
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v < 0 {
		return -1
	}
	return 1
}
