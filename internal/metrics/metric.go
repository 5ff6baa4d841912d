package metrics

import "github.com/san-kum/orbitlab/internal/scene"

// Metric accumulates a scalar over orbital snapshots. Every Metric is a
// scene.Observer.
type Metric interface {
	Name() string
	Observe(s scene.Snapshot)
	Value() float64
	Reset()
}

// Set fans one observation out to several metrics.
type Set []Metric

func (s Set) Observe(snap scene.Snapshot) {
	for _, m := range s {
		m.Observe(snap)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Values maps each metric name to its current value.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}
