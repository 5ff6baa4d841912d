package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitlab/internal/analysis"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/export"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/scene"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/storage"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
)

// radiusTrace records one body's distance from the attractor per
// integrated frame.
type radiusTrace struct {
	body  string
	radii []float64
}

func (r *radiusTrace) Observe(s scene.Snapshot) {
	for _, b := range s.Bodies {
		if b.Name == r.body && !b.Destroyed {
			r.radii = append(r.radii, dynamo.Distance(b.Pos, s.Attractor.Pos))
		}
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	runner := sim.New(log)
	trace := &radiusTrace{body: trackBody}
	runner.AddObserver(trace)

	res, err := runner.Run(cmd.Context(), sim.Config{
		Orbital:  cfg.Orbital,
		Params:   orbitalParams(cfg),
		FPS:      cfg.View.FPS,
		Duration: duration,
		Record:   true,
	})
	if err != nil {
		return err
	}
	snap, traj, frames := res.Snapshot, res.Trajectory, res.Frames

	fmt.Printf("frames: %d\n", frames)
	fmt.Printf("simulated: %.2fs\n\n", snap.Time)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tRADIUS\tDISTANCE\tSPEED\tMEASURED PERIOD\tSTATE")
	for j, b := range snap.Bodies {
		state := "orbiting"
		if b.Destroyed {
			state = "collided"
		}
		measured := analysis.MeasuredPeriod(traj.Times, analysis.Column(traj.Points, j))
		fmt.Fprintf(w, "%s\t%.3f\t%.1f\t%.2f\t%.4f\t%.2fs\t%s\n",
			b.Name, b.Mass, b.Radius, dynamo.Distance(b.Pos, snap.Attractor.Pos), b.Speed(), measured, state)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(res.Status)
	fmt.Println()

	values := res.Metrics
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-14s %.6g\n", name, values[name])
	}

	if len(trace.radii) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(trace.radii,
			asciigraph.Height(10), asciigraph.Width(60),
			asciigraph.Caption(trackBody+" distance from "+cfg.Orbital.Sun.Name)))
	}

	if saveDir == "" {
		return nil
	}
	st := storage.New(saveDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Integrator: cfg.Orbital.Integrator,
		G:          cfg.Orbital.G,
		TimeScale:  cfg.Orbital.TimeScale,
		SunMass:    snap.Attractor.Mass,
		Duration:   snap.Time,
		Metrics:    values,
	}, traj)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nsaved run %s\n", id)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir)
	if len(args) == 1 {
		return showRun(st, args[0])
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", runsDir)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tINTEGRATOR\tSIMULATED\tFRAMES\tBODIES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%d\n",
			r.ID, r.Timestamp.Format(time.DateTime), r.Integrator, r.Duration, r.Frames, len(r.Bodies))
	}
	return w.Flush()
}

func showRun(st *storage.Store, id string) error {
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(id)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  G=%g  time scale=%g  sun mass=%g\n\n",
		meta.ID, meta.Integrator, meta.G, meta.TimeScale, meta.SunMass)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tSAMPLES\tPERIOD\tPERIAPSIS\tAPOAPSIS\tECCENTRICITY")
	for j, name := range tr.Bodies {
		sum := analysis.Summarize(tr.Times, analysis.Column(tr.Points, j))
		fmt.Fprintf(w, "%s\t%d\t%.2fs\t%.2f\t%.2f\t%.4f\n",
			name, sum.Samples, sum.Period, sum.Periapsis, sum.Apoapsis, sum.Eccentricity)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for j, name := range tr.Bodies {
		radii := make([]float64, 0, tr.Len())
		for _, p := range analysis.Column(tr.Points, j) {
			if r := r2.Norm(p); !math.IsNaN(r) {
				radii = append(radii, r)
			}
		}
		if len(radii) < 2 {
			continue
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption(name+" distance")))
	}
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	clock := frame.NewMockClock(time.Unix(0, 0))
	m := scene.NewMagnetic(cfg.Magnetic, frame.NewQueue(clock), nil)
	m.SetStrength(scene.ParseMass(strength, cfg.Magnetic.DefaultStrength))
	m.SetDirection(scene.ParseDirection(direction))
	field := m.Field()

	radii := make([]float64, 0, len(args))
	for _, a := range args {
		r, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid radius %q: %w", a, err)
		}
		radii = append(radii, r)
	}
	profile := len(radii) == 0
	if profile {
		radii = field.Radii(extent, 20)
	}

	fmt.Printf("strength: %.3f  direction: %s %s  lines: %d\n\n",
		field.Strength, field.Direction.Glyph(), field.Direction, field.LineCount())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "R\tS(R)")
	readings := field.Profile(radii)
	plot := make([]float64, 0, len(readings))
	for i, r := range readings {
		fmt.Fprintf(w, "%.2f\t%s\n", radii[i], r.Format(cfg.Magnetic.Precision))
		if !r.Infinite {
			plot = append(plot, r.Value)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if profile && len(plot) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(plot, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("S(r)")))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	svg := export.NewSVG(width, height)

	switch args[0] {
	case "orbit":
		res, err := sim.New(log).Run(cmd.Context(), sim.Config{
			Orbital:  cfg.Orbital,
			Params:   orbitalParams(cfg),
			FPS:      cfg.View.FPS,
			Duration: duration,
			Surface:  svg,
		})
		if err != nil {
			return err
		}
		fmt.Println(res.Status)
	case "field":
		clock := frame.NewMockClock(time.Unix(0, 0))
		q := frame.NewQueue(clock)
		m := scene.NewMagnetic(cfg.Magnetic, q, svg, scene.WithLogger(log))
		m.SetStrength(scene.ParseMass(strength, cfg.Magnetic.DefaultStrength))
		m.SetDirection(scene.ParseDirection(direction))
		c, err := point("compass", compass)
		if err != nil {
			return err
		}
		p, err := point("probe", probe)
		if err != nil {
			return err
		}
		if c != nil {
			m.Click(c.X, c.Y, false)
		}
		if p != nil {
			m.Click(p.X, p.Y, true)
		}
		m.Start()
		q.Tick()
		fmt.Println(m.Status())
	default:
		return fmt.Errorf("unknown scene %q (want orbit or field)", args[0])
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := svg.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", outFile, err)
	}
	fmt.Printf("wrote %s (%d elements)\n", outFile, svg.Len())
	return nil
}

func point(name string, xy []float64) (*r2.Vec, error) {
	switch len(xy) {
	case 0:
		return nil, nil
	case 2:
		return &r2.Vec{X: xy[0], Y: xy[1]}, nil
	}
	return nil, fmt.Errorf("--%s wants x,y", name)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "orbitlab.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
