package metrics

import (
	"math"

	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

// SpecificEnergy is the orbital energy per unit mass, v²/2 - G·M/r.
func SpecificEnergy(g float64, attractor, b *physics.Body) float64 {
	d := r2.Norm(r2.Sub(b.Pos, attractor.Pos))
	v := r2.Norm(b.Vel)
	if d == 0 {
		return math.Inf(-1)
	}
	return 0.5*v*v - g*attractor.Mass/d
}

// Energy is the mean specific energy of live bodies over all samples.
type Energy struct {
	name    string
	total   float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s scene.Snapshot) {
	if s.Attractor == nil {
		return
	}
	sum, n := 0.0, 0
	for _, b := range s.Bodies {
		if b.Destroyed {
			continue
		}
		sum += SpecificEnergy(s.G, s.Attractor, b)
		n++
	}
	if n == 0 {
		return
	}
	e.total += sum / float64(n)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// DefaultHistory is how many drift samples EnergyDrift keeps for plotting.
const DefaultHistory = 120

// EnergyDrift tracks the worst relative change of any live body's specific
// energy since the first sample. A snapshot older than the previous one
// means the scene restarted, and tracking starts over.
type EnergyDrift struct {
	name     string
	initial  map[string]float64
	maxDrift float64
	lastTime float64
	history  []float64
	limit    int
}

func NewEnergyDrift(history int) *EnergyDrift {
	if history < 1 {
		history = DefaultHistory
	}
	return &EnergyDrift{
		name:    "energy_drift",
		initial: make(map[string]float64),
		limit:   history,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s scene.Snapshot) {
	if s.Attractor == nil {
		return
	}
	if s.Time < e.lastTime {
		e.Reset()
	}
	e.lastTime = s.Time

	frameDrift := 0.0
	for _, b := range s.Bodies {
		if b.Destroyed {
			continue
		}
		energy := SpecificEnergy(s.G, s.Attractor, b)
		e0, ok := e.initial[b.Name]
		if !ok {
			e.initial[b.Name] = energy
			continue
		}
		if e0 != 0 && !math.IsInf(e0, 0) {
			frameDrift = math.Max(frameDrift, math.Abs(energy-e0)/math.Abs(e0))
		}
	}
	e.maxDrift = math.Max(e.maxDrift, frameDrift)

	e.history = append(e.history, frameDrift)
	if len(e.history) > e.limit {
		e.history = e.history[len(e.history)-e.limit:]
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// History returns the per-frame drift, oldest first.
func (e *EnergyDrift) History() []float64 {
	return append([]float64(nil), e.history...)
}

func (e *EnergyDrift) Reset() {
	e.initial = make(map[string]float64)
	e.maxDrift = 0
	e.lastTime = 0
	e.history = nil
}
