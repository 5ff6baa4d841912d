package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

func snapshot(t float64, earth r2.Vec, marsGone bool) scene.Snapshot {
	return scene.Snapshot{
		Time:      t,
		Attractor: &physics.Body{Name: "Sun", Pos: r2.Vec{X: 1, Y: 1}, Fixed: true},
		Bodies: []*physics.Body{
			{Name: "Earth", Pos: earth},
			{Name: "Mars", Pos: r2.Vec{X: 11, Y: 1}, Destroyed: marsGone},
		},
	}
}

func TestTrajectoryObserve(t *testing.T) {
	tr := &Trajectory{}
	tr.Observe(snapshot(0.5, r2.Vec{X: 4, Y: 5}, false))
	tr.Observe(snapshot(1.0, r2.Vec{X: 1, Y: 6}, true))

	if tr.Len() != 2 {
		t.Fatalf("len = %d", tr.Len())
	}
	if tr.Bodies[0] != "Earth" || tr.Bodies[1] != "Mars" {
		t.Errorf("bodies = %v", tr.Bodies)
	}
	if tr.Points[0][0] != (r2.Vec{X: 3, Y: 4}) {
		t.Errorf("earth relative position = %v", tr.Points[0][0])
	}
	if !math.IsNaN(tr.Points[1][1].X) {
		t.Errorf("destroyed body should read NaN, got %v", tr.Points[1][1])
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tr := &Trajectory{}
	tr.Observe(snapshot(0.5, r2.Vec{X: 4, Y: 5}, false))
	tr.Observe(snapshot(1.0, r2.Vec{X: 1, Y: 6}, true))

	runID, err := st.Save(RunMetadata{
		Integrator: "euler",
		G:          0.08,
		Metrics:    map[string]float64{"survival": 0.5},
	}, tr)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Frames != 2 || meta.Integrator != "euler" || meta.Metrics["survival"] != 0.5 {
		t.Errorf("metadata = %+v", meta)
	}
	if len(meta.Bodies) != 2 {
		t.Errorf("bodies = %v", meta.Bodies)
	}

	got, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if got.Len() != 2 || got.Bodies[1] != "Mars" {
		t.Fatalf("trajectory = %+v", got)
	}
	if got.Times[1] != 1.0 || got.Points[1][0] != (r2.Vec{X: 0, Y: 5}) {
		t.Errorf("row 1 = %v %v", got.Times[1], got.Points[1])
	}
	if !math.IsNaN(got.Points[1][1].Y) {
		t.Errorf("destroyed body should load as NaN, got %v", got.Points[1][1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("empty store = %v, %v", runs, err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second, err := st.Save(RunMetadata{Timestamp: base.Add(time.Minute)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	first, err := st.Save(RunMetadata{Timestamp: base}, nil)
	if err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs = %+v", runs)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("Load err = %v", err)
	}
	if _, err := st.LoadTrajectory("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("LoadTrajectory err = %v", err)
	}
}

func TestStoreRejectsMalformedTrajectoryHeader(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	for id, header := range map[string]string{
		"short":  "t,x,y",
		"odd":    "time,Earth_x",
		"paired": "time,Earth_x,Mars_y",
	} {
		if err := os.MkdirAll(filepath.Join(dir, id), 0755); err != nil {
			t.Fatal(err)
		}
		data := header + "\n" + strings.Repeat("0,", strings.Count(header, ",")) + "0\n"
		if err := os.WriteFile(filepath.Join(dir, id, trajectoryFile), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := st.LoadTrajectory(id); !errors.Is(err, ErrBadTrajectory) {
			t.Errorf("%s: err = %v, want ErrBadTrajectory", id, err)
		}
	}
}
