package sim

import (
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/render"
	"github.com/san-kum/orbitlab/internal/scene"
	"github.com/san-kum/orbitlab/internal/storage"
)

// Config describes one headless orbital run. Duration is wall-clock
// seconds at FPS frames per second; the scene's time scale turns that
// into simulated time.
type Config struct {
	Orbital  config.OrbitalConfig
	Params   scene.OrbitalParams
	FPS      int
	Duration float64
	// Record keeps every body's position per integrated frame.
	Record bool
	// Surface receives the rendered frames; nil renders nothing.
	Surface render.Surface
}

type Result struct {
	Frames     int
	Snapshot   scene.Snapshot
	Status     string
	Metrics    map[string]float64
	Drift      []float64
	Trajectory *storage.Trajectory
}
