package analysis

import (
	"math"

	"github.com/san-kum/orbitlab/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one body's recorded orbit.
type Summary struct {
	Samples      int
	Period       float64
	Periapsis    float64
	Apoapsis     float64
	MeanRadius   float64
	Eccentricity float64
}

func finitePoint(p r2.Vec) bool {
	return dynamo.IsFinite(p.X) && dynamo.IsFinite(p.Y)
}

// SweptAngle returns the unwrapped counter-clockwise angle covered by pts.
func SweptAngle(pts []r2.Vec) float64 {
	swept := 0.0
	prev, ok := 0.0, false
	for _, p := range pts {
		if !finitePoint(p) || (p.X == 0 && p.Y == 0) {
			continue
		}
		a := math.Atan2(p.Y, p.X)
		if ok {
			d := a - prev
			for d > math.Pi {
				d -= 2 * math.Pi
			}
			for d < -math.Pi {
				d += 2 * math.Pi
			}
			swept += d
		}
		prev, ok = a, true
	}
	return swept
}

// MeasuredPeriod extrapolates a full revolution from the angle swept
// between the first and last finite samples. It returns +Inf when the
// body has not moved and NaN with fewer than two samples.
func MeasuredPeriod(times []float64, pts []r2.Vec) float64 {
	first, last := -1, -1
	for i, p := range pts {
		if i >= len(times) || !finitePoint(p) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || first == last {
		return math.NaN()
	}
	swept := math.Abs(SweptAngle(pts[first : last+1]))
	if swept == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * (times[last] - times[first]) / swept
}

func radii(pts []r2.Vec) []float64 {
	rs := make([]float64, 0, len(pts))
	for _, p := range pts {
		if finitePoint(p) {
			rs = append(rs, r2.Norm(p))
		}
	}
	return rs
}

// Apsides returns the smallest and largest recorded distance. Both are
// NaN when no finite sample exists.
func Apsides(pts []r2.Vec) (peri, apo float64) {
	rs := radii(pts)
	if len(rs) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(rs), floats.Max(rs)
}

func Eccentricity(peri, apo float64) float64 {
	if !(apo+peri > 0) {
		return math.NaN()
	}
	return (apo - peri) / (apo + peri)
}

// Column extracts body j from row-major trajectory points.
func Column(points [][]r2.Vec, j int) []r2.Vec {
	col := make([]r2.Vec, 0, len(points))
	for _, row := range points {
		if j < len(row) {
			col = append(col, row[j])
		}
	}
	return col
}

func Summarize(times []float64, pts []r2.Vec) Summary {
	rs := radii(pts)
	s := Summary{
		Samples:    len(rs),
		Period:     MeasuredPeriod(times, pts),
		MeanRadius: math.NaN(),
	}
	s.Periapsis, s.Apoapsis = Apsides(pts)
	s.Eccentricity = Eccentricity(s.Periapsis, s.Apoapsis)
	if len(rs) > 0 {
		s.MeanRadius = stat.Mean(rs, nil)
	}
	return s
}
