package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // clear, line, circle, disc, text
	A, B   r2.Vec
	Radius float64
	Text   string
	Color  colorful.Color
}

// Recorder is a Surface that keeps every call, for tests and headless runs.
type Recorder struct {
	W, H float64
	Ops  []Op
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear records the call and drops everything drawn before it.
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: "clear"})
}

func (r *Recorder) Line(a, b r2.Vec, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", A: a, B: b, Color: c})
}

func (r *Recorder) Circle(center r2.Vec, radius float64, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", A: center, Radius: radius, Color: c})
}

func (r *Recorder) Disc(center r2.Vec, radius float64, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: "disc", A: center, Radius: radius, Color: c})
}

func (r *Recorder) Text(at r2.Vec, s string, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", A: at, Text: s, Color: c})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded label in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
