package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is a drawing target of known pixel size. Size is read on every
// frame because the host may resize it while a loop runs.
type Surface interface {
	Size() (w, h float64)
	Clear()
	Line(a, b r2.Vec, c colorful.Color)
	Circle(center r2.Vec, r float64, c colorful.Color)
	Disc(center r2.Vec, r float64, c colorful.Color)
	Text(at r2.Vec, s string, c colorful.Color)
}

// Center returns the middle of s.
func Center(s Surface) r2.Vec {
	w, h := s.Size()
	return r2.Vec{X: w / 2, Y: h / 2}
}

// HalfExtent is the radius of the largest circle centred on s that fits.
func HalfExtent(s Surface) float64 {
	w, h := s.Size()
	if w < h {
		return w / 2
	}
	return h / 2
}

// Polyline joins consecutive points, offset by origin.
func Polyline(s Surface, origin r2.Vec, pts []r2.Vec, c colorful.Color) {
	for i := 1; i < len(pts); i++ {
		s.Line(r2.Add(origin, pts[i-1]), r2.Add(origin, pts[i]), c)
	}
}

// MustHex parses a #rrggbb color, falling back to fallback when malformed.
func MustHex(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

var (
	Background = colorful.Color{R: 0.024, G: 0.024, B: 0.047}
	Label      = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	Guide      = colorful.Color{R: 0.25, G: 0.25, B: 0.3}
)
