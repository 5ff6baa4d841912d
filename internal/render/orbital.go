package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// OrbitalFrame is the read-only state one orbital frame draws. Positions
// are relative to the attractor, which is drawn at the surface center.
// Zoom scales simulation distances and radii onto the surface; zero means 1.
type OrbitalFrame struct {
	Attractor *physics.Body
	Bodies    []*physics.Body
	Guides    bool
	Zoom      float64
}

// View maps attractor-relative simulation points onto the surface.
type View struct {
	Center    r2.Vec
	Attractor r2.Vec
	Zoom      float64
}

func (v View) Point(p r2.Vec) r2.Vec {
	return r2.Add(v.Center, r2.Scale(v.Zoom, r2.Sub(p, v.Attractor)))
}

func (v View) Length(l float64) float64 { return l * v.Zoom }

// DrawOrbital renders guides, the attractor, then every live body as trail
// polyline, disc and label. Destroyed bodies are skipped.
func DrawOrbital(s Surface, f OrbitalFrame) {
	if s == nil || f.Attractor == nil {
		return
	}
	v := View{Center: Center(s), Attractor: f.Attractor.Pos, Zoom: f.Zoom}
	if !(v.Zoom > 0) {
		v.Zoom = 1
	}

	if f.Guides {
		for _, b := range f.Bodies {
			if b.OrbitRadius > 0 {
				dashedCircle(s, v.Center, v.Length(b.OrbitRadius), Guide)
			}
		}
	}

	sun := *f.Attractor
	sun.Radius = v.Length(sun.Radius)
	DrawAttractor(s, v.Center, &sun)

	for _, b := range f.Bodies {
		DrawBody(s, v, b)
	}
}

// DrawAttractor paints a fading glow under the attractor disc.
func DrawAttractor(s Surface, at r2.Vec, sun *physics.Body) {
	for _, k := range []float64{2.2, 1.8, 1.4} {
		glow := sun.Color.BlendLab(Background, (k-1)/1.4)
		s.Circle(at, sun.Radius*k, glow)
	}
	s.Disc(at, sun.Radius, sun.Color)
	s.Text(r2.Add(at, r2.Vec{X: sun.Radius + 6, Y: -sun.Radius - 6}), sun.Name, Label)
}

// DrawBody draws one body's trail, disc and label through v.
func DrawBody(s Surface, v View, b *physics.Body) {
	if b == nil || b.Destroyed {
		return
	}
	faded := b.Color.BlendLab(Background, 0.5)
	trail := b.Trail.Points()
	for i := 1; i < len(trail); i++ {
		s.Line(v.Point(trail[i-1]), v.Point(trail[i]), faded)
	}

	at := v.Point(b.Pos)
	r := v.Length(b.Radius)
	s.Disc(at, r, b.Color)
	s.Text(r2.Add(at, r2.Vec{X: r + 6, Y: -6}), b.Name, Label)
}

func dashedCircle(s Surface, center r2.Vec, r float64, c colorful.Color) {
	const dashes = 48
	step := 2 * math.Pi / (2 * dashes)
	for i := 0; i < dashes; i++ {
		a0 := float64(2*i) * step
		a1 := a0 + step
		s.Line(
			r2.Add(center, r2.Vec{X: r * math.Cos(a0), Y: r * math.Sin(a0)}),
			r2.Add(center, r2.Vec{X: r * math.Cos(a1), Y: r * math.Sin(a1)}),
			c,
		)
	}
}
