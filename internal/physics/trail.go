package physics

import "gonum.org/v1/gonum/spatial/r2"

// DefaultTrailCapacity is the number of recent positions a trail keeps.
const DefaultTrailCapacity = 250

// Trail is a bounded FIFO of recent positions. Once full, each Push evicts
// the oldest point. It exists for rendering only.
type Trail struct {
	points []r2.Vec
	start  int
	n      int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]r2.Vec, capacity)}
}

// Push appends p, dropping the oldest point when the trail is full.
func (t *Trail) Push(p r2.Vec) {
	if t == nil {
		return
	}
	c := len(t.points)
	if t.n < c {
		t.points[(t.start+t.n)%c] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % c
}

func (t *Trail) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

func (t *Trail) Cap() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []r2.Vec {
	if t == nil || t.n == 0 {
		return nil
	}
	out := make([]r2.Vec, t.n)
	c := len(t.points)
	for i := 0; i < t.n; i++ {
		out[i] = t.points[(t.start+i)%c]
	}
	return out
}

func (t *Trail) Reset() {
	if t == nil {
		return
	}
	t.start, t.n = 0, 0
}
