package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/orbitlab/internal/automation"
	"github.com/san-kum/orbitlab/internal/optim"
	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/storage"
	"github.com/spf13/cobra"
)

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	parsed := make([]optim.Axis, 0, len(axes))
	for _, a := range axes {
		ax, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		parsed = append(parsed, ax)
	}
	grid := optim.NewGridSearch(parsed...)
	if maximize {
		grid.Maximize()
	}

	base := sim.Config{
		Orbital:  cfg.Orbital,
		Params:   orbitalParams(cfg),
		FPS:      cfg.View.FPS,
		Duration: duration,
	}
	outcomes, best, err := grid.Search(cmd.Context(), sim.NewEnsemble(log, workers), base, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\tPOINT\t%s\tSURVIVAL\tSIMULATED\n", metric)
	for i, o := range outcomes {
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%.6g\t%.2f\t%.1fs\n",
			mark, o.Point.String(grid.Axes()), o.Score, o.Result.Metrics["survival"], o.Result.Snapshot.Time)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if best < 0 {
		fmt.Println("\nno run produced a finite score")
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(scenarioDir)
	if err := st.Init(); err != nil {
		return err
	}
	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}

	runner := &automation.Runner{Base: cfg, Store: st, Log: log}
	results, runErr := runner.Run(cmd.Context(), sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSIMULATED\tSURVIVAL\tENERGY DRIFT\tRUN")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.1fs\t%.2f\t%.3g\t%s\n", r.Step.Name, r.Result.Snapshot.Time,
			r.Result.Metrics["survival"], r.Result.Metrics["energy_drift"], r.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
