package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance returns |a-b|.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Unit returns v normalized, or the zero vector when v has no length.
func Unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Tangent returns the counter-clockwise unit tangent of the radius vector r.
func Tangent(r r2.Vec) r2.Vec {
	u := Unit(r)
	return r2.Vec{X: -u.Y, Y: u.X}
}

// Polar returns the point at distance r and angle theta from the origin.
func Polar(r, theta float64) r2.Vec {
	s, c := math.Sincos(theta)
	return r2.Vec{X: r * c, Y: r * s}
}

// AngularSpeed returns ω = sqrt(G·M/r³) for a circular orbit of radius r
// around mass M. A non-positive radius yields +Inf.
func AngularSpeed(g, mass, r float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(g * mass / (r * r * r))
}

// CircularSpeed returns v = sqrt(G·M/r), the tangential speed that keeps a
// body on a circular orbit of radius r under the inverse-square law.
func CircularSpeed(g, mass, r float64) float64 {
	if r <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(g * mass / r)
}

// OrbitalPeriod returns 2π/ω, or +Inf when ω is zero or not finite.
func OrbitalPeriod(omega float64) float64 {
	if omega == 0 || !IsFinite(omega) {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(omega)
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
