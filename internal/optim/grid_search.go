package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/orbitlab/internal/sim"
)

// Axis is one swept parameter. Known names are "sun" (attractor mass),
// "g", "time_scale" and "mass.<Body>".
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis reads "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, list, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(list) == "" {
		return Axis{}, fmt.Errorf("axis %q: want name=v1,v2", s)
	}
	ax := Axis{Name: name}
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: %w", name, err)
		}
		ax.Values = append(ax.Values, v)
	}
	return ax, nil
}

type Point map[string]float64

func (p Point) String(axes []Axis) string {
	parts := make([]string, 0, len(axes))
	for _, ax := range axes {
		parts = append(parts, fmt.Sprintf("%s=%g", ax.Name, p[ax.Name]))
	}
	return strings.Join(parts, " ")
}

// Apply returns base with p's values written into it. Every swept value
// must be positive and finite.
func Apply(base sim.Config, p Point) (sim.Config, error) {
	cfg := base
	masses := make(map[string]float64, len(base.Params.BodyMass))
	for k, v := range base.Params.BodyMass {
		masses[k] = v
	}
	cfg.Params.BodyMass = masses

	for name, v := range p {
		if !(v > 0) || math.IsInf(v, 0) {
			return sim.Config{}, fmt.Errorf("sweep parameter %s=%g: must be positive", name, v)
		}
		switch {
		case name == "sun":
			cfg.Params.SunMass = v
		case name == "g":
			cfg.Orbital.G = v
		case name == "time_scale":
			cfg.Orbital.TimeScale = v
		case strings.HasPrefix(name, "mass."):
			masses[strings.TrimPrefix(name, "mass.")] = v
		default:
			return sim.Config{}, fmt.Errorf("unknown sweep parameter %q", name)
		}
	}
	return cfg, nil
}

type Outcome struct {
	Point  Point
	Result *sim.Result
	Score  float64
}

type GridSearch struct {
	axes     []Axis
	maximize bool
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Maximize ranks higher metric values first.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

func (g *GridSearch) Axes() []Axis { return g.axes }

// Points enumerates the grid, last axis fastest.
func (g *GridSearch) Points() []Point {
	var out []Point
	g.pointsRecursive(0, Point{}, &out)
	return out
}

func (g *GridSearch) pointsRecursive(depth int, current Point, out *[]Point) {
	if depth == len(g.axes) {
		if len(current) > 0 {
			*out = append(*out, current)
		}
		return
	}

	ax := g.axes[depth]
	for _, val := range ax.Values {
		next := make(Point, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[ax.Name] = val

		g.pointsRecursive(depth+1, next, out)
	}
}

// Search runs every grid point on ens and scores it by metric. It returns
// the outcomes in grid order and the index of the best one; NaN scores
// never win.
func (g *GridSearch) Search(ctx context.Context, ens *sim.Ensemble, base sim.Config, metric string) ([]Outcome, int, error) {
	points := g.Points()
	if len(points) == 0 {
		return nil, -1, fmt.Errorf("empty grid")
	}
	cfgs := make([]sim.Config, len(points))
	for i, p := range points {
		cfg, err := Apply(base, p)
		if err != nil {
			return nil, -1, err
		}
		cfgs[i] = cfg
	}

	results, err := ens.Run(ctx, cfgs)
	if err != nil {
		return nil, -1, err
	}

	outcomes := make([]Outcome, len(points))
	best := -1
	for i, r := range results {
		score, ok := r.Metrics[metric]
		if !ok {
			return nil, -1, fmt.Errorf("unknown metric %q", metric)
		}
		outcomes[i] = Outcome{Point: points[i], Result: r, Score: score}
		if math.IsNaN(score) {
			continue
		}
		if best < 0 || g.better(score, outcomes[best].Score) {
			best = i
		}
	}
	return outcomes, best, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.maximize {
		return a > b
	}
	return a < b
}
