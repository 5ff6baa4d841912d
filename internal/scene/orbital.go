package scene

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/integrators"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	IdleStatus  = "Press start to begin."
	ResetStatus = "Simulation reset. Press start to begin."
)

type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Snapshot is a deep copy of the orbital scene at one instant.
type Snapshot struct {
	State     State
	Time      float64 // simulated seconds since start
	G         float64
	Attractor *physics.Body
	Bodies    []*physics.Body
}

// Observer receives a snapshot after every integrated frame.
type Observer interface {
	Observe(Snapshot)
}

// Orbital owns the attractor and its orbiters and runs them on a frame
// scheduler. Every exported method is safe to call between frames from any
// goroutine; a frame holds the lock from reading parameters through
// rendering.
type Orbital struct {
	mu      sync.Mutex
	cfg     config.OrbitalConfig
	sched   frame.Scheduler
	surface render.Surface
	log     logging.Logger
	gravity physics.Gravity

	state   State
	handle  frame.Handle
	lastTs  time.Duration
	hasLast bool
	simTime float64
	// layout is the fit scale the bodies were built with.
	layout float64

	sun    *physics.Body
	bodies []*physics.Body
	status string

	observers []Observer
}

// NewOrbital builds a stopped scene. surface may be nil for headless use.
func NewOrbital(cfg config.OrbitalConfig, sched frame.Scheduler, surface render.Surface, opts ...Option) *Orbital {
	o := buildOptions(opts)
	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		o.logger.Warn(context.Background(), "falling back to default integrator",
			logging.String("integrator", cfg.Integrator), logging.Err(err))
		stepper = integrators.NewSemiImplicitEuler()
	}
	return &Orbital{
		cfg:     cfg,
		sched:   sched,
		surface: surface,
		log:     o.logger.With(logging.String("scene", "orbital")),
		gravity: physics.Gravity{G: cfg.G, Epsilon: cfg.Epsilon, Stepper: stepper},
		status:  IdleStatus,
	}
}

// AddObserver registers ob for every integrated frame.
func (o *Orbital) AddObserver(ob Observer) {
	if ob == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, ob)
}

// Start rebuilds every body from p and runs the loop from a fresh clock
// reference. Starting a running scene restarts it; there is never more than
// one live frame request.
func (o *Orbital) Start(p OrbitalParams) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelLocked()
	o.sun, o.bodies = o.build(p)
	o.simTime = 0
	o.hasLast = false
	o.state = Running
	o.status = o.periodsLocked()
	o.scheduleLocked()

	o.log.Info(context.Background(), "simulation started",
		logging.Float("sun_mass", o.sun.Mass), logging.Int("bodies", len(o.bodies)))
}

// TogglePause flips between running and paused. It does nothing while
// stopped.
func (o *Orbital) TogglePause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case Running:
		o.setStateLocked(Paused)
	case Paused:
		o.setStateLocked(Running)
	}
}

func (o *Orbital) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Running {
		o.setStateLocked(Paused)
	}
}

func (o *Orbital) Resume() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Paused {
		o.setStateLocked(Running)
	}
}

func (o *Orbital) setStateLocked(s State) {
	o.state = s
	o.hasLast = false
	if s == Paused {
		o.log.Info(context.Background(), "simulation paused", logging.Float("t", o.simTime))
	} else {
		o.log.Info(context.Background(), "simulation resumed", logging.Float("t", o.simTime))
	}
}

// Reset stops the loop, drops every body and leaves the surface showing a
// bare attractor.
func (o *Orbital) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelLocked()
	o.state = Stopped
	o.sun, o.bodies = nil, nil
	o.simTime = 0
	o.hasLast = false
	o.status = ResetStatus

	if o.surface != nil {
		o.surface.Clear()
		sun := o.baseSun(o.cfg.Sun.DefaultMass)
		sun.Radius = o.cfg.Sun.Radius
		render.DrawAttractor(o.surface, render.Center(o.surface), sun)
	}
	o.log.Info(context.Background(), "simulation reset")
}

func (o *Orbital) IsRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state != Stopped
}

func (o *Orbital) IsPaused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == Paused
}

func (o *Orbital) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Status is the text summary of the last frame or state change.
func (o *Orbital) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *Orbital) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orbital) snapshotLocked() Snapshot {
	s := Snapshot{State: o.state, Time: o.simTime, G: o.cfg.G}
	if o.sun != nil {
		s.Attractor = o.sun.Clone()
	}
	s.Bodies = make([]*physics.Body, len(o.bodies))
	for i, b := range o.bodies {
		s.Bodies[i] = b.Clone()
	}
	return s
}

func (o *Orbital) cancelLocked() {
	if o.handle != 0 {
		o.sched.Cancel(o.handle)
		o.handle = 0
	}
}

func (o *Orbital) scheduleLocked() {
	var h frame.Handle
	h = o.sched.Request(func(ts time.Duration) { o.onFrame(h, ts) })
	o.handle = h
}

func (o *Orbital) onFrame(h frame.Handle, ts time.Duration) {
	o.mu.Lock()
	if h != o.handle || o.state == Stopped {
		o.mu.Unlock()
		return
	}

	dt := 0.0
	if o.hasLast {
		dt = (ts - o.lastTs).Seconds()
	}
	o.lastTs, o.hasLast = ts, true
	if dt < 0 {
		dt = 0
	}
	if limit := o.cfg.MaxFrameDelta; limit > 0 && dt > limit {
		dt = limit
	}

	var snap *Snapshot
	if o.state == Running && dt > 0 {
		o.stepLocked(dt * o.cfg.TimeScale)
		if len(o.observers) > 0 {
			s := o.snapshotLocked()
			snap = &s
		}
	}

	if o.surface != nil {
		o.surface.Clear()
		render.DrawOrbital(o.surface, render.OrbitalFrame{Attractor: o.sun, Bodies: o.bodies, Guides: true, Zoom: o.zoomLocked()})
	}
	o.status = o.periodsLocked()
	o.scheduleLocked()
	observers := o.observers
	o.mu.Unlock()

	if snap != nil {
		for _, ob := range observers {
			ob.Observe(*snap)
		}
	}
}

func (o *Orbital) stepLocked(dt float64) {
	for _, b := range o.bodies {
		if b.Update(dt, o.sun, o.gravity) {
			o.log.Info(context.Background(), "body collided",
				logging.String("body", b.Name), logging.Float("t", o.simTime))
		}
	}
	o.simTime += dt
	o.log.Debug(context.Background(), "step", logging.Float("dt", dt), logging.Float("t", o.simTime))
}

// build lays out the attractor at the origin and every roster body on a
// circular (or eccentricity-reduced) orbit around it.
func (o *Orbital) build(p OrbitalParams) (*physics.Body, []*physics.Body) {
	sunMass := p.sunMass(o.cfg.Sun.DefaultMass)
	scale := o.fitScale()
	o.layout = scale

	sun := o.baseSun(sunMass)
	sun.Radius *= scale

	bodies := make([]*physics.Body, 0, len(o.cfg.Bodies))
	for i, bc := range o.cfg.Bodies {
		mass := p.bodyMass(bc.Name, bc.DefaultMass)
		r := bc.Orbit * scale
		pos := dynamo.Polar(r, bc.PhaseDeg*math.Pi/180)
		speed := dynamo.CircularSpeed(o.cfg.G, sunMass, r) * o.cfg.EccentricityFor(i, sunMass)

		bodies = append(bodies, &physics.Body{
			Name:        bc.Name,
			Pos:         pos,
			Vel:         r2.Scale(speed, dynamo.Tangent(pos)),
			Mass:        mass,
			Radius:      bc.Radius * dynamo.Clamp(massScale(mass, bc.DefaultMass), bc.MinScale, bc.SizeLimit()) * scale,
			Color:       render.MustHex(bc.Color, render.Label),
			Trail:       physics.NewTrail(o.cfg.TrailCapacity),
			OrbitRadius: r,
		})
	}
	return sun, bodies
}

func (o *Orbital) baseSun(mass float64) *physics.Body {
	sc := o.cfg.Sun
	k := massScale(mass, sc.DefaultMass)
	if sc.MaxScale > 0 {
		k = dynamo.Clamp(k, sc.MinScale, sc.MaxScale)
	}
	return &physics.Body{
		Name:   sc.Name,
		Mass:   mass,
		Radius: sc.Radius * k,
		Color:  render.MustHex(sc.Color, render.Label),
		Fixed:  true,
	}
}

func massScale(mass, def float64) float64 {
	if def <= 0 {
		return 1
	}
	return math.Cbrt(mass / def)
}

// fitScale shrinks or grows the roster so the widest orbit fits the
// surface as it is right now.
func (o *Orbital) fitScale() float64 {
	if !o.cfg.Fit || o.surface == nil {
		return 1
	}
	half := render.HalfExtent(o.surface)
	maxOrbit := o.cfg.MaxOrbit()
	if half <= 0 || maxOrbit <= 0 {
		return 1
	}
	margin := o.cfg.FitMargin
	if margin <= 0 {
		margin = 1
	}
	return half * margin / maxOrbit
}

// zoomLocked maps the start-time layout onto the surface's current size.
// Physics space is left alone.
func (o *Orbital) zoomLocked() float64 {
	if !(o.layout > 0) {
		return 1
	}
	return o.fitScale() / o.layout
}

func (o *Orbital) periodsLocked() string {
	if o.sun == nil {
		return o.status
	}
	parts := make([]string, 0, len(o.bodies))
	for _, b := range o.bodies {
		if b.Destroyed {
			parts = append(parts, b.Name+": collided")
			continue
		}
		omega := dynamo.AngularSpeed(o.cfg.G, o.sun.Mass, b.OrbitRadius)
		parts = append(parts, fmt.Sprintf("%s period: theoretical %ss, visual %ss",
			b.Name,
			formatPeriod(dynamo.OrbitalPeriod(omega)),
			formatPeriod(dynamo.OrbitalPeriod(omega*o.cfg.TimeScale))))
	}
	return strings.Join(parts, " · ")
}

func formatPeriod(v float64) string {
	if !dynamo.IsFinite(v) {
		return "—"
	}
	return fmt.Sprintf("%.2f", v)
}
