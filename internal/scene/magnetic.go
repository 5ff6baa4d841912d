package scene

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

const PlacementHint = "Click to place a compass, shift+click to place a probe."

// Magnetic renders the field around a straight wire seen end-on at the
// surface center, plus at most one compass and one probe. Strength and
// direction are read at the start of every frame.
type Magnetic struct {
	mu      sync.Mutex
	sched   frame.Scheduler
	surface render.Surface
	log     logging.Logger
	prec    int

	field   physics.Field
	running bool
	handle  frame.Handle
	compass *r2.Vec
	probe   *r2.Vec
}

// NewMagnetic builds a stopped scene with the configured default strength
// and counter-clockwise field.
func NewMagnetic(cfg config.MagneticConfig, sched frame.Scheduler, surface render.Surface, opts ...Option) *Magnetic {
	o := buildOptions(opts)
	return &Magnetic{
		sched:   sched,
		surface: surface,
		log:     o.logger.With(logging.String("scene", "magnetic")),
		prec:    cfg.Precision,
		field: physics.Field{
			Strength:  cfg.DefaultStrength,
			Direction: physics.CounterClockwise,
			Geometry: physics.Geometry{
				MinRadius:       cfg.MinRadius,
				ExclusionRadius: cfg.ExclusionRadius,
				LinesPerUnit:    cfg.LinesPerUnit,
				MaxLines:        cfg.MaxLines,
				AngularStep:     cfg.AngularStepDeg * math.Pi / 180,
				FillRatio:       cfg.FillRatio,
			},
		},
	}
}

// Start begins the frame loop, replacing any loop already running.
func (m *Magnetic) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.running = true
	m.scheduleLocked()
	m.log.Info(context.Background(), "field started",
		logging.Float("strength", m.field.Strength), logging.String("direction", m.field.Direction.String()))
}

// Stop cancels the loop, then forgets the compass and probe.
func (m *Magnetic) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
	m.running = false
	m.compass, m.probe = nil, nil
	if m.surface != nil {
		m.surface.Clear()
	}
	m.log.Info(context.Background(), "field stopped")
}

// SetStrength ignores non-positive and non-finite values.
func (m *Magnetic) SetStrength(v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.field.Strength = v
}

// SetDirection takes the sign of d; zero keeps the current direction.
func (m *Magnetic) SetDirection(d float64) {
	if d == 0 || math.IsNaN(d) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.field.Direction = physics.DirectionOf(d)
}

func (m *Magnetic) ReverseDirection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.field.Direction = m.field.Direction.Reverse()
}

// Click places or replaces the compass, or the probe when modifier is held.
// Coordinates are surface pixels.
func (m *Magnetic) Click(x, y float64, modifier bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	p := r2.Vec{X: x, Y: y}
	m.mu.Lock()
	defer m.mu.Unlock()
	if modifier {
		m.probe = &p
		m.log.Debug(context.Background(), "probe placed", logging.Float("x", x), logging.Float("y", y))
		return
	}
	m.compass = &p
	m.log.Debug(context.Background(), "compass placed", logging.Float("x", x), logging.Float("y", y))
}

func (m *Magnetic) Field() physics.Field {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.field
}

func (m *Magnetic) Compass() (r2.Vec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.compass == nil {
		return r2.Vec{}, false
	}
	return *m.compass, true
}

func (m *Magnetic) Probe() (r2.Vec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.probe == nil {
		return r2.Vec{}, false
	}
	return *m.probe, true
}

// Reading samples the field at the probe, measured from the surface center
// as it is now. ok is false without a probe.
func (m *Magnetic) Reading() (physics.Reading, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readingLocked()
}

func (m *Magnetic) readingLocked() (physics.Reading, bool) {
	if m.probe == nil {
		return physics.Reading{}, false
	}
	var center r2.Vec
	if m.surface != nil {
		center = render.Center(m.surface)
	}
	return m.field.Sample(center, *m.probe), true
}

func (m *Magnetic) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Status formats the probe reading, or a placement hint without a probe.
func (m *Magnetic) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.readingLocked()
	if !ok {
		return PlacementHint
	}
	return fmt.Sprintf("Field strength at probe: %s (relative)", r.Format(m.prec))
}

func (m *Magnetic) cancelLocked() {
	if m.handle != 0 {
		m.sched.Cancel(m.handle)
		m.handle = 0
	}
}

func (m *Magnetic) scheduleLocked() {
	var h frame.Handle
	h = m.sched.Request(func(time.Duration) { m.onFrame(h) })
	m.handle = h
}

func (m *Magnetic) onFrame(h frame.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h != m.handle || !m.running {
		return
	}
	if m.surface != nil {
		reading, _ := m.readingLocked()
		m.surface.Clear()
		render.DrawMagnetic(m.surface, render.MagneticFrame{
			Field:   m.field,
			Compass: m.compass,
			Probe:   m.probe,
			Reading: reading,
			Prec:    m.prec,
		})
	}
	m.scheduleLocked()
}
