package physics

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/integrators"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one disc in the orbital scene. Exactly one body per scene is
// Fixed (the attractor); it never moves and is exempt from Update.
type Body struct {
	Name      string
	Pos       r2.Vec
	Vel       r2.Vec
	Mass      float64
	Radius    float64
	Color     colorful.Color
	Trail     *Trail
	Fixed     bool
	Destroyed bool

	// OrbitRadius is the radius the body was launched at, kept for guides
	// and period readouts.
	OrbitRadius float64
}

// Gravity holds the tunable inverse-square law shared by every body.
type Gravity struct {
	G       float64
	Epsilon float64
	Stepper integrators.Stepper
}

// Accel returns the pull of attractor: G·M/d² directed toward it. Inside
// Epsilon the pull is zero; the collision check catches that case first.
func (g Gravity) Accel(attractor *Body) integrators.Accel {
	return func(p r2.Vec) r2.Vec {
		d := r2.Sub(attractor.Pos, p)
		dist := r2.Norm(d)
		if dist < g.Epsilon || dist == 0 {
			return r2.Vec{}
		}
		a := g.G * attractor.Mass / (dist * dist)
		return r2.Scale(a/dist, d)
	}
}

func (g Gravity) stepper() integrators.Stepper {
	if g.Stepper == nil {
		return integrators.NewSemiImplicitEuler()
	}
	return g.Stepper
}

// Update advances b by dt under attractor and appends the new position to
// the trail. It reports whether b collided during this call. Destroyed is
// terminal: later calls do nothing.
func (b *Body) Update(dt float64, attractor *Body, g Gravity) bool {
	if b.Destroyed || b.Fixed || attractor == nil || !(dt > 0) {
		return false
	}
	if b.touches(attractor, g.Epsilon) {
		b.Destroyed = true
		return true
	}

	b.Pos, b.Vel = g.stepper().Step(b.Pos, b.Vel, g.Accel(attractor), dt)
	b.Trail.Push(b.Pos)

	if b.touches(attractor, g.Epsilon) {
		b.Destroyed = true
		return true
	}
	return false
}

func (b *Body) touches(attractor *Body, eps float64) bool {
	d := dynamo.Distance(b.Pos, attractor.Pos)
	return d < b.Radius+attractor.Radius || d < eps
}

// Speed returns |v|.
func (b *Body) Speed() float64 {
	return r2.Norm(b.Vel)
}

// Clone returns a deep copy, trail included.
func (b *Body) Clone() *Body {
	c := *b
	if b.Trail != nil {
		t := *b.Trail
		t.points = append([]r2.Vec(nil), b.Trail.points...)
		c.Trail = &t
	}
	return &c
}
