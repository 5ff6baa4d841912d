package metrics

import "github.com/san-kum/orbitlab/internal/scene"

// Survival is the fraction of orbiters still intact in the latest
// snapshot, 1 before anything is observed.
type Survival struct {
	name  string
	alive int
	total int
}

func NewSurvival() *Survival {
	return &Survival{name: "survival"}
}

func (s *Survival) Name() string {
	return s.name
}

func (s *Survival) Observe(snap scene.Snapshot) {
	s.alive, s.total = 0, len(snap.Bodies)
	for _, b := range snap.Bodies {
		if !b.Destroyed {
			s.alive++
		}
	}
}

func (s *Survival) Value() float64 {
	if s.total == 0 {
		return 1.0
	}
	return float64(s.alive) / float64(s.total)
}

func (s *Survival) Reset() {
	s.alive = 0
	s.total = 0
}
