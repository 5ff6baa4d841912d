package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbitlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Accel returns the acceleration felt at position p.
type Accel func(p r2.Vec) r2.Vec

// Stepper advances one body by a single step of length dt. No sub-stepping.
type Stepper interface {
	Step(pos, vel r2.Vec, acc Accel, dt float64) (r2.Vec, r2.Vec)
}

// SemiImplicitEuler updates velocity first, then moves with the new velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(pos, vel r2.Vec, acc Accel, dt float64) (r2.Vec, r2.Vec) {
	vel = r2.Add(vel, r2.Scale(dt, acc(pos)))
	pos = r2.Add(pos, r2.Scale(dt, vel))
	return pos, vel
}

// Leapfrog is the kick-drift-kick form: half kick, full drift, half kick at
// the new position.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(pos, vel r2.Vec, acc Accel, dt float64) (r2.Vec, r2.Vec) {
	halfDt := 0.5 * dt
	vel = r2.Add(vel, r2.Scale(halfDt, acc(pos)))
	pos = r2.Add(pos, r2.Scale(dt, vel))
	vel = r2.Add(vel, r2.Scale(halfDt, acc(pos)))
	return pos, vel
}

var registry = map[string]func() Stepper{
	"euler":    func() Stepper { return NewSemiImplicitEuler() },
	"leapfrog": func() Stepper { return NewLeapfrog() },
}

// New returns the stepper registered under name. The empty name selects
// semi-implicit Euler.
func New(name string) (Stepper, error) {
	if name == "" {
		name = "euler"
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

// Names lists registered stepper names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
