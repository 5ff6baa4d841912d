package physics

import (
	"math"
	"strconv"

	"github.com/san-kum/orbitlab/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Direction is the rotation sense of the field around the wire.
type Direction int

const (
	CounterClockwise Direction = 1
	Clockwise        Direction = -1
)

// DirectionOf maps any signed value onto a Direction; negatives are
// Clockwise, everything else CounterClockwise.
func DirectionOf(v float64) Direction {
	if v < 0 {
		return Clockwise
	}
	return CounterClockwise
}

func (d Direction) Reverse() Direction { return -d }

// Glyph is the marker drawn on the source: current out of or into the screen.
func (d Direction) Glyph() string {
	if d == Clockwise {
		return "⊗"
	}
	return "⊙"
}

func (d Direction) String() string {
	if d == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// Geometry holds the fixed shape parameters of the field visualization.
type Geometry struct {
	MinRadius       float64 // r_min, floor applied inside the formula
	ExclusionRadius float64 // wire radius; closer readings are infinite
	LinesPerUnit    float64 // field lines per unit of strength
	MaxLines        int
	AngularStep     float64 // radians between traced points
	FillRatio       float64 // outermost line as a fraction of the half-extent
}

// DefaultGeometry matches a few-hundred pixel surface.
func DefaultGeometry() Geometry {
	return Geometry{
		MinRadius:       10,
		ExclusionRadius: 6,
		LinesPerUnit:    1,
		MaxLines:        24,
		AngularStep:     math.Pi / 36,
		FillRatio:       0.95,
	}
}

// Field is a straight current-carrying wire seen end-on. Units are relative.
type Field struct {
	Strength  float64
	Direction Direction
	Geometry
}

// Reading is a field-strength sample. Infinite marks a sample taken inside
// the exclusion radius, where no value is computed.
type Reading struct {
	Value    float64
	Infinite bool
}

// Format renders the reading with prec decimals, or "∞" for the sentinel.
func (r Reading) Format(prec int) string {
	if r.Infinite {
		return "∞"
	}
	return strconv.FormatFloat(r.Value, 'f', prec, 64)
}

func (r Reading) String() string { return r.Format(2) }

// At returns S(r) = strength / max(r, r_min), or the infinite sentinel when
// r is inside the exclusion radius.
func (f Field) At(r float64) Reading {
	if math.IsNaN(r) || r < f.ExclusionRadius {
		return Reading{Infinite: true}
	}
	return Reading{Value: f.Strength / math.Max(r, f.MinRadius)}
}

// Sample reads the field at p for a wire located at source.
func (f Field) Sample(source, p r2.Vec) Reading {
	return f.At(dynamo.Distance(source, p))
}

// Profile samples S at each radius.
func (f Field) Profile(rs []float64) []Reading {
	out := make([]Reading, len(rs))
	for i, r := range rs {
		out[i] = f.At(r)
	}
	return out
}

// Radii returns n radii evenly spaced from the exclusion radius to hi.
func (f Field) Radii(hi float64, n int) []float64 {
	lo := f.ExclusionRadius
	if n < 2 || !(hi > lo) {
		return nil
	}
	rs := make([]float64, n)
	for i := range rs {
		rs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return rs
}

// LineCount grows linearly with strength, at least one line for any
// positive strength and capped at MaxLines.
func (f Field) LineCount() int {
	if !(f.Strength > 0) || f.LinesPerUnit <= 0 {
		return 0
	}
	n := int(math.Round(f.Strength * f.LinesPerUnit))
	if n < 1 {
		n = 1
	}
	if f.MaxLines > 0 && n > f.MaxLines {
		n = f.MaxLines
	}
	return n
}

// Line is one traced circle around the source, points relative to it and
// ordered in the field's rotation sense.
type Line struct {
	Radius    float64
	Direction Direction
	Points    []r2.Vec
}

// Lines traces LineCount circles with radii evenly spaced up to
// maxExtent·FillRatio.
func (f Field) Lines(maxExtent float64) []Line {
	n := f.LineCount()
	if n == 0 || !(maxExtent > 0) {
		return nil
	}
	fill := f.FillRatio
	if fill <= 0 {
		fill = 1
	}
	outer := maxExtent * fill

	step := f.AngularStep
	if step <= 0 {
		step = math.Pi / 36
	}
	segments := int(math.Ceil(2 * math.Pi / step))
	sense := float64(f.direction())

	lines := make([]Line, n)
	for i := range lines {
		r := outer * float64(i+1) / float64(n)
		pts := make([]r2.Vec, segments+1)
		for k := 0; k <= segments; k++ {
			theta := sense * 2 * math.Pi * float64(k) / float64(segments)
			pts[k] = dynamo.Polar(r, theta)
		}
		lines[i] = Line{Radius: r, Direction: f.direction(), Points: pts}
	}
	return lines
}

// CompassHeading returns the unit field direction at rel, the offset from
// the source. ok is false inside the exclusion radius.
func (f Field) CompassHeading(rel r2.Vec) (heading r2.Vec, ok bool) {
	if r2.Norm(rel) < f.ExclusionRadius || r2.Norm(rel) == 0 {
		return r2.Vec{}, false
	}
	return r2.Scale(float64(f.direction()), dynamo.Tangent(rel)), true
}

func (f Field) direction() Direction {
	if f.Direction == Clockwise {
		return Clockwise
	}
	return CounterClockwise
}
