package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	fieldStrong = colorful.Color{R: 0, G: 1, B: 0.8}
	fieldWeak   = colorful.Color{R: 0.1, G: 0.2, B: 0.5}
	wireColor   = colorful.Color{R: 1, G: 0.75, B: 0.3}
	needleNorth = colorful.Color{R: 1, G: 0.25, B: 0.25}
	needleSouth = colorful.Color{R: 0.9, G: 0.9, B: 0.9}
	probeColor  = colorful.Color{R: 1, G: 1, B: 0.4}
)

// MagneticFrame is the read-only state one magnetic frame draws. Compass
// and Probe are surface coordinates, nil when not placed.
type MagneticFrame struct {
	Field   physics.Field
	Compass *r2.Vec
	Probe   *r2.Vec
	Reading physics.Reading
	Prec    int
}

// DrawMagnetic renders field lines, the source marker, the compass and the
// probe, in that order.
func DrawMagnetic(s Surface, f MagneticFrame) {
	if s == nil {
		return
	}
	center := Center(s)
	extent := HalfExtent(s)

	lines := f.Field.Lines(extent)
	for _, l := range lines {
		c := fieldStrong.BlendLab(fieldWeak, dynamo.Clamp(l.Radius/extent, 0, 1))
		Polyline(s, center, l.Points, c)
		arrowHead(s, center, l, c)
	}

	s.Disc(center, f.Field.ExclusionRadius, wireColor)
	s.Text(center, f.Field.Direction.Glyph(), Background)

	if f.Compass != nil {
		drawCompass(s, center, *f.Compass, f.Field)
	}
	if f.Probe != nil {
		p := *f.Probe
		s.Line(r2.Sub(p, r2.Vec{X: 4}), r2.Add(p, r2.Vec{X: 4}), probeColor)
		s.Line(r2.Sub(p, r2.Vec{Y: 4}), r2.Add(p, r2.Vec{Y: 4}), probeColor)
		s.Text(r2.Add(p, r2.Vec{X: 6, Y: -6}), "B="+f.Reading.Format(f.Prec), probeColor)
	}
}

// arrowHead marks the rotation sense a quarter of the way along a line.
func arrowHead(s Surface, center r2.Vec, l physics.Line, c colorful.Color) {
	if len(l.Points) < 2 {
		return
	}
	k := len(l.Points) / 4
	if k+1 >= len(l.Points) {
		return
	}
	tip := r2.Add(center, l.Points[k+1])
	back := dynamo.Unit(r2.Sub(l.Points[k], l.Points[k+1]))
	side := r2.Vec{X: -back.Y, Y: back.X}
	size := 4.0
	s.Line(tip, r2.Add(tip, r2.Scale(size, r2.Add(back, side))), c)
	s.Line(tip, r2.Add(tip, r2.Scale(size, r2.Sub(back, side))), c)
}

func drawCompass(s Surface, center, at r2.Vec, f physics.Field) {
	const needle = 10.0
	s.Circle(at, needle+2, Guide)
	heading, ok := f.CompassHeading(r2.Sub(at, center))
	if !ok {
		return
	}
	s.Line(at, r2.Add(at, r2.Scale(needle, heading)), needleNorth)
	s.Line(at, r2.Sub(at, r2.Scale(needle, heading)), needleSouth)
}
