package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func testField(strength float64) Field {
	return Field{Strength: strength, Direction: CounterClockwise, Geometry: DefaultGeometry()}
}

func TestFieldMonotonicAboveFloor(t *testing.T) {
	f := testField(5)
	prev := math.Inf(1)
	for r := f.MinRadius; r < 400; r += 7.5 {
		got := f.At(r)
		if got.Infinite {
			t.Fatalf("r=%v reported infinite", r)
		}
		if got.Value >= prev {
			t.Fatalf("S(%v) = %v not below %v", r, got.Value, prev)
		}
		prev = got.Value
	}
}

func TestFieldInfiniteInsideExclusion(t *testing.T) {
	f := testField(5)
	for _, r := range []float64{0, 1, f.ExclusionRadius - 0.01, math.NaN()} {
		got := f.At(r)
		if !got.Infinite {
			t.Errorf("S(%v) = %v, want infinite sentinel", r, got.Value)
		}
		if got.Format(2) != "∞" {
			t.Errorf("Format = %q, want ∞", got.Format(2))
		}
	}
}

func TestFieldFloorBetweenExclusionAndMin(t *testing.T) {
	f := testField(5)
	r := (f.ExclusionRadius + f.MinRadius) / 2
	got := f.At(r)
	if got.Infinite || got.Value != f.Strength/f.MinRadius {
		t.Errorf("S(%v) = %+v, want floor value %v", r, got, f.Strength/f.MinRadius)
	}
}

func TestFieldDoublingStrength(t *testing.T) {
	for _, r := range []float64{10, 33, 120} {
		a := testField(3).At(r).Value
		b := testField(6).At(r).Value
		if b != 2*a {
			t.Errorf("r=%v: S doubled to %v, want %v", r, b, 2*a)
		}
	}
}

func TestLineCountScalesLinearly(t *testing.T) {
	tests := []struct {
		strength float64
		expected int
	}{
		{0, 0},
		{-2, 0},
		{0.2, 1},
		{3, 3},
		{6, 6},
		{1000, DefaultGeometry().MaxLines},
	}
	for _, tt := range tests {
		if got := testField(tt.strength).LineCount(); got != tt.expected {
			t.Errorf("LineCount(%v) = %d, want %d", tt.strength, got, tt.expected)
		}
	}
}

func TestLinesEvenlySpaced(t *testing.T) {
	f := testField(4)
	lines := f.Lines(200)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	outer := 200 * f.FillRatio
	for i, l := range lines {
		want := outer * float64(i+1) / 4
		if math.Abs(l.Radius-want) > 1e-9 {
			t.Errorf("line %d radius = %v, want %v", i, l.Radius, want)
		}
		for _, p := range l.Points {
			if math.Abs(r2.Norm(p)-l.Radius) > 1e-9 {
				t.Fatalf("line %d point %v off circle", i, p)
			}
		}
	}
}

func TestLinesReverseWithDirection(t *testing.T) {
	ccw := testField(1)
	cw := testField(1)
	cw.Direction = Clockwise

	a := ccw.Lines(100)[0].Points[1]
	b := cw.Lines(100)[0].Points[1]
	if a.Y <= 0 || b.Y >= 0 {
		t.Errorf("second points %v and %v should lie on opposite sides", a, b)
	}
	if math.Abs(a.X-b.X) > 1e-12 {
		t.Errorf("mirrored traces differ in x: %v vs %v", a.X, b.X)
	}
}

func TestLinesDegenerate(t *testing.T) {
	if l := testField(0).Lines(100); l != nil {
		t.Error("zero strength should produce no lines")
	}
	if l := testField(3).Lines(0); l != nil {
		t.Error("zero extent should produce no lines")
	}
}

func TestCompassHeading(t *testing.T) {
	f := testField(2)
	rel := r2.Vec{X: 50}

	h, ok := f.CompassHeading(rel)
	if !ok {
		t.Fatal("expected heading outside exclusion radius")
	}
	if math.Abs(r2.Dot(h, rel)) > 1e-12 {
		t.Errorf("heading %v not tangent", h)
	}
	if h.Y <= 0 {
		t.Errorf("counter-clockwise heading at +x should point +y, got %v", h)
	}

	f.Direction = Clockwise
	h2, _ := f.CompassHeading(rel)
	if h2.Y >= 0 {
		t.Errorf("clockwise heading should flip, got %v", h2)
	}

	if _, ok := f.CompassHeading(r2.Vec{X: 1}); ok {
		t.Error("heading inside exclusion radius should be undefined")
	}
}

func TestDirectionOf(t *testing.T) {
	if DirectionOf(-1) != Clockwise || DirectionOf(1) != CounterClockwise || DirectionOf(0) != CounterClockwise {
		t.Error("DirectionOf mapping wrong")
	}
	if CounterClockwise.Reverse() != Clockwise {
		t.Error("Reverse wrong")
	}
}

func TestFieldRadii(t *testing.T) {
	f := testField(5)
	rs := f.Radii(106, 11)
	if len(rs) != 11 || rs[0] != f.ExclusionRadius || rs[10] != 106 || rs[1] != 16 {
		t.Fatalf("Radii = %v", rs)
	}
	if f.Radii(1, 10) != nil || f.Radii(100, 1) != nil {
		t.Error("degenerate ranges should yield nil")
	}
}
