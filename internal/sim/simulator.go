package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/metrics"
	"github.com/san-kum/orbitlab/internal/scene"
	"github.com/san-kum/orbitlab/internal/storage"
)

// Simulator drives an orbital scene against a mock clock, so a run of
// any length finishes as fast as the integrator allows.
type Simulator struct {
	log       logging.Logger
	observers []scene.Observer
}

func New(log logging.Logger) *Simulator {
	if log == nil {
		log = logging.Noop()
	}
	return &Simulator{log: log}
}

func (s *Simulator) AddObserver(o scene.Observer) { s.observers = append(s.observers, o) }

// Frames advances clock by one frame period and ticks q, n times. It
// stops early when ctx is done and returns the frames delivered.
func Frames(ctx context.Context, clock *frame.MockClock, q *frame.Queue, fps, n int) (int, error) {
	step := time.Second / time.Duration(fps)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}
		clock.Advance(step)
		q.Tick()
	}
	return n, nil
}

func FrameCount(fps int, seconds float64) int {
	n := int(math.Round(seconds * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	clock := frame.NewMockClock(time.Unix(0, 0))
	q := frame.NewQueue(clock)
	orbital := scene.NewOrbital(cfg.Orbital, q, cfg.Surface, scene.WithLogger(s.log))

	drift := metrics.NewEnergyDrift(metrics.DefaultHistory)
	set := metrics.Set{drift, metrics.NewSurvival(), metrics.NewEnergy()}
	orbital.AddObserver(set)

	var traj *storage.Trajectory
	if cfg.Record {
		traj = &storage.Trajectory{}
		orbital.AddObserver(traj)
	}
	for _, o := range s.observers {
		orbital.AddObserver(o)
	}

	orbital.Start(cfg.Params)

	frames, err := Frames(ctx, clock, q, cfg.FPS, FrameCount(cfg.FPS, cfg.Duration))
	result := &Result{
		Frames:     frames,
		Snapshot:   orbital.Snapshot(),
		Status:     orbital.Status(),
		Metrics:    set.Values(),
		Drift:      drift.History(),
		Trajectory: traj,
	}
	s.log.Debug(ctx, "headless run finished",
		logging.Int("frames", frames), logging.Float("t", result.Snapshot.Time))
	return result, err
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration < 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be a finite non-negative number, got %f", cfg.Duration)
	}
	return nil
}
