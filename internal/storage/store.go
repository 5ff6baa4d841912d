// Package storage keeps headless orbit runs on disk: one directory per run
// holding metadata.json and a trajectory.csv of body positions.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitlab/internal/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var (
	ErrNoRun         = errors.New("storage: run not found")
	ErrBadTrajectory = errors.New("storage: malformed trajectory")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	G          float64            `json:"g"`
	TimeScale  float64            `json:"time_scale"`
	SunMass    float64            `json:"sun_mass"`
	Duration   float64            `json:"duration"`
	Frames     int                `json:"frames"`
	Bodies     []string           `json:"bodies"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Trajectory holds attractor-relative positions per integrated frame.
// Points[i][j] is body j at Times[i]; a destroyed body reads NaN.
type Trajectory struct {
	Bodies []string
	Times  []float64
	Points [][]r2.Vec
}

// Observe appends one sample. The body roster is fixed by the first
// snapshot.
func (t *Trajectory) Observe(s scene.Snapshot) {
	if t.Bodies == nil {
		t.Bodies = make([]string, 0, len(s.Bodies))
		for _, b := range s.Bodies {
			t.Bodies = append(t.Bodies, b.Name)
		}
	}
	var origin r2.Vec
	if s.Attractor != nil {
		origin = s.Attractor.Pos
	}
	row := make([]r2.Vec, len(t.Bodies))
	for j := range row {
		row[j] = r2.Vec{X: math.NaN(), Y: math.NaN()}
		if j < len(s.Bodies) && !s.Bodies[j].Destroyed {
			row[j] = r2.Sub(s.Bodies[j].Pos, origin)
		}
	}
	t.Times = append(t.Times, s.Time)
	t.Points = append(t.Points, row)
}

func (t *Trajectory) Len() int { return len(t.Times) }

// Save writes meta and tr under a fresh run directory and returns its id.
func (s *Store) Save(meta RunMetadata, tr *Trajectory) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("orbit_%d", meta.Timestamp.UnixNano())
	if tr != nil {
		meta.Frames = tr.Len()
		if len(meta.Bodies) == 0 {
			meta.Bodies = tr.Bodies
		}
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("storage: create run: %w", err)
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if tr == nil {
		return meta.ID, nil
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), tr); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: create metadata: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return fmt.Errorf("storage: encode metadata: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close metadata: %w", err)
	}
	return nil
}

func writeTrajectory(path string, tr *Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: create trajectory: %w", err)
	}
	if err := encodeTrajectory(f, tr); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage: close trajectory: %w", err)
	}
	return nil
}

func encodeTrajectory(f *os.File, tr *Trajectory) error {
	w := csv.NewWriter(f)
	header := []string{"time"}
	for _, name := range tr.Bodies {
		header = append(header, name+"_x", name+"_y")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, t := range tr.Times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, p := range tr.Points[i] {
			row = append(row, strconv.FormatFloat(p.X, 'f', 6, 64), strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode metadata: %w", err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read trajectory: %w", err)
	}

	tr := &Trajectory{}
	if len(records) == 0 {
		return tr, nil
	}
	header := records[0]
	if len(header) == 0 || len(header)%2 == 0 {
		return nil, fmt.Errorf("%w: header has %d columns", ErrBadTrajectory, len(header))
	}
	for k := 1; k+1 < len(header); k += 2 {
		name, ok := strings.CutSuffix(header[k], "_x")
		if !ok || name == "" || header[k+1] != name+"_y" {
			return nil, fmt.Errorf("%w: columns %q, %q", ErrBadTrajectory, header[k], header[k+1])
		}
		tr.Bodies = append(tr.Bodies, name)
	}

	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad time %q: %w", record[0], err)
		}
		row := make([]r2.Vec, 0, len(tr.Bodies))
		for k := 1; k+1 < len(record); k += 2 {
			x, errX := strconv.ParseFloat(record[k], 64)
			y, errY := strconv.ParseFloat(record[k+1], 64)
			if err := errors.Join(errX, errY); err != nil {
				return nil, fmt.Errorf("storage: bad position at t=%s: %w", record[0], err)
			}
			row = append(row, r2.Vec{X: x, Y: y})
		}
		tr.Times = append(tr.Times, t)
		tr.Points = append(tr.Points, row)
	}
	return tr, nil
}
