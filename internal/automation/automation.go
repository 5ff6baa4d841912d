// Package automation runs scripted sequences of headless orbital runs
// described in YAML.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/scene"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one headless run layered over the base configuration.
// Zero values keep the base setting; masses use the same text forms as
// the interactive inputs.
type ScenarioStep struct {
	Name       string            `yaml:"name"`
	Preset     string            `yaml:"preset"`
	Integrator string            `yaml:"integrator"`
	G          float64           `yaml:"g"`
	TimeScale  float64           `yaml:"time_scale"`
	Duration   float64           `yaml:"duration"`
	Sun        string            `yaml:"sun"`
	Masses     map[string]string `yaml:"masses"`
	Save       bool              `yaml:"save"`
}

type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Runner executes scenarios against a base configuration. Steps marked
// save are written to Store when it is set.
type Runner struct {
	Base  *config.Config
	Store *storage.Store
	Log   logging.Logger
}

func (r *Runner) configFor(step ScenarioStep) (*config.Config, error) {
	cfg := r.Base.Clone()
	if step.Preset != "" {
		if err := config.ApplyPreset(cfg, step.Preset); err != nil {
			return nil, err
		}
	}
	if step.Integrator != "" {
		cfg.Orbital.Integrator = step.Integrator
	}
	if step.G != 0 {
		cfg.Orbital.G = step.G
	}
	if step.TimeScale != 0 {
		cfg.Orbital.TimeScale = step.TimeScale
	}
	return cfg, cfg.Validate()
}

// Run executes every step in order and stops at the first failure,
// returning the steps completed so far.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	log := r.Log
	if log == nil {
		log = logging.Noop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if step.Name == "" {
			step.Name = fmt.Sprintf("step-%d", i+1)
		}
		log.Info(ctx, "scenario step", logging.String("scenario", scenario.Name),
			logging.String("step", step.Name), logging.Int("index", i+1))

		cfg, err := r.configFor(step)
		if err != nil {
			return results, fmt.Errorf("step %s: %w", step.Name, err)
		}
		duration := step.Duration
		if duration <= 0 {
			duration = 10
		}

		res, err := sim.New(log).Run(ctx, sim.Config{
			Orbital:  cfg.Orbital,
			Params:   scene.ParseOrbitalParams(cfg.Orbital, step.Sun, step.Masses),
			FPS:      cfg.View.FPS,
			Duration: duration,
			Record:   step.Save && r.Store != nil,
		})
		if err != nil {
			return results, fmt.Errorf("step %s run: %w", step.Name, err)
		}

		sr := StepResult{Step: step, Result: res}
		if step.Save && r.Store != nil {
			sr.RunID, err = r.Store.Save(storage.RunMetadata{
				Integrator: cfg.Orbital.Integrator,
				G:          cfg.Orbital.G,
				TimeScale:  cfg.Orbital.TimeScale,
				SunMass:    res.Snapshot.Attractor.Mass,
				Duration:   res.Snapshot.Time,
				Metrics:    res.Metrics,
			}, res.Trajectory)
			if err != nil {
				return results, fmt.Errorf("step %s save: %w", step.Name, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
