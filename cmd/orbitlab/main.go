package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/logging"
	"github.com/san-kum/orbitlab/internal/scene"
	"github.com/san-kum/orbitlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Config file
	configFile string
	// Preset name
	preset    string
	logFile   string
	logLevel  string
	theme     string
	frameRate int

	// Orbital scene
	gravity    float64
	timeScale  float64
	integrator string
	trail      int
	fit        bool
	sunMass    string
	bodyMass   map[string]string

	// Magnetic scene
	strength  string
	direction string

	// Headless runs
	duration  float64
	trackBody string
	outFile   string
	width     float64
	height    float64
	compass   []float64
	probe     []float64
	extent    float64
	force     bool
	saveDir   string
	runsDir   string

	// Sweeps
	axes        []string
	metric      string
	maximize    bool
	workers     int
	scenarioDir string
)

// main registers the orbitlab commands; with no subcommand it opens the
// interactive launcher. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitlab",
		Short:         "gravity and magnetic field visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cmd, cfg, true)
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.Run(viz.NewLauncher(cfg, log))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file (terminal UI logs are discarded otherwise)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&theme, "theme", "", "color theme")
	pf.IntVar(&frameRate, "fps", 60, "frames per second")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "run the orbital scene in the terminal",
		RunE:  runOrbit,
	}
	addOrbitalFlags(orbitCmd)

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "run the magnetic field scene in the terminal",
		RunE:  runField,
	}
	addFieldFlags(fieldCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the orbital scene headless and report periods, energy drift and radius",
		RunE:  runHeadless,
	}
	addOrbitalFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "wall-clock seconds to simulate")
	runCmd.Flags().StringVar(&trackBody, "body", "Earth", "body whose orbital radius is plotted")
	runCmd.Flags().StringVar(&saveDir, "save", "", "store the run's metadata and trajectory under this directory")

	runsCmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "list stored runs, or summarize one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}
	runsCmd.Flags().StringVar(&runsDir, "dir", "runs", "run store directory")

	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "run the orbital scene over a parameter grid and rank the runs by a metric",
		Example: "  orbitlab sweep --axis sun=500,1000,2000,4000 --axis g=0.05,0.08 --metric energy_drift",
		RunE:    runSweep,
	}
	addOrbitalFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "wall-clock seconds per run")
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "name=v1,v2,... (sun, g, time_scale, mass.<Body>)")
	sweepCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to rank by (energy, energy_drift, survival)")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "rank higher metric values first")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = one per CPU)")
	_ = sweepCmd.MarkFlagRequired("axis")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "run the steps of a yaml scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&scenarioDir, "save", "runs", "run store directory for steps marked save")

	probeCmd := &cobra.Command{
		Use:   "probe [radius...]",
		Short: "print field strength at the given radii, or a profile",
		RunE:  runProbe,
	}
	addFieldFlags(probeCmd)
	probeCmd.Flags().Float64Var(&extent, "extent", 200, "outer radius of the profile")

	snapshotCmd := &cobra.Command{
		Use:       "snapshot [orbit|field]",
		Short:     "render one frame of a scene to SVG",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"orbit", "field"},
		RunE:      runSnapshot,
	}
	addOrbitalFlags(snapshotCmd)
	addFieldFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "orbitlab.svg", "output file")
	snapshotCmd.Flags().Float64Var(&width, "width", 800, "surface width in pixels")
	snapshotCmd.Flags().Float64Var(&height, "height", 600, "surface height in pixels")
	snapshotCmd.Flags().Float64Var(&duration, "time", 10.0, "wall-clock seconds to simulate before the orbit frame")
	snapshotCmd.Flags().Float64SliceVar(&compass, "compass", nil, "compass position x,y")
	snapshotCmd.Flags().Float64SliceVar(&probe, "probe", nil, "probe position x,y")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(orbitCmd, fieldCmd, runCmd, runsCmd, sweepCmd, scenarioCmd, probeCmd, snapshotCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addOrbitalFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&gravity, "g", config.DefaultG, "gravitational constant (visual units)")
	f.Float64Var(&timeScale, "time-scale", config.DefaultTimeScale, "simulated seconds per wall-clock second")
	f.StringVar(&integrator, "integrator", "euler", "euler or leapfrog")
	f.IntVar(&trail, "trail", 250, "trail capacity per body")
	f.BoolVar(&fit, "fit", true, "scale orbits to the surface")
	f.StringVar(&sunMass, "sun", "Original", `sun mass: "Original", "0.5 times" or a number`)
	f.StringToStringVar(&bodyMass, "mass", nil, `per-body mass, e.g. --mass Earth="2 times"`)
}

func addFieldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&strength, "strength", "Original", `current strength: "Original", "2 times" or a number`)
	f.StringVar(&direction, "direction", "ccw", "ccw or cw")
}

// loadConfig starts from the config file (or defaults), layers the preset
// on top and then applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Lookup("g") != nil {
		if flags.Changed("g") {
			cfg.Orbital.G = gravity
		}
		if flags.Changed("time-scale") {
			cfg.Orbital.TimeScale = timeScale
		}
		if flags.Changed("integrator") {
			cfg.Orbital.Integrator = integrator
		}
		if flags.Changed("trail") {
			cfg.Orbital.TrailCapacity = trail
		}
		if flags.Changed("fit") {
			cfg.Orbital.Fit = fit
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Terminal UIs only log to
// --log-file so nothing is written over the screen.
func newLogger(cmd *cobra.Command, cfg *config.Config, tui bool) (logging.Logger, func(), error) {
	lc := logging.FromEnv(cfg.Log)
	if cmd.Flags().Changed("log-level") {
		lc.Level = logLevel
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	case tui:
		w = nil
	}
	return logging.New(lc, w), closeFn, nil
}

func orbitalParams(cfg *config.Config) scene.OrbitalParams {
	return scene.ParseOrbitalParams(cfg.Orbital, sunMass, bodyMass)
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()
	return viz.Run(viz.NewOrbitModel(cfg, orbitalParams(cfg), log))
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	m := viz.NewFieldModel(cfg, log)
	m.Scene().SetStrength(scene.ParseMass(strength, cfg.Magnetic.DefaultStrength))
	m.Scene().SetDirection(scene.ParseDirection(direction))
	return viz.Run(m)
}
