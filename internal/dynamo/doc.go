// Package dynamo provides the shared primitives of the orbit and field
// visualizers.
//
// Positions and velocities are [r2.Vec] values in simulation space. The
// helpers here are the scalar formulas the scene managers and renderers
// agree on:
//
//   - [Distance]: Euclidean distance between two points
//   - [AngularSpeed]: circular angular speed ω = sqrt(G·M/r³)
//   - [CircularSpeed]: circular tangential speed v = sqrt(G·M/r)
//   - [OrbitalPeriod]: 2π/ω, +Inf when ω is zero or not finite
//
// # Example
//
//	v := dynamo.CircularSpeed(0.08, 1000, 150)
//	vel := r2.Scale(v, dynamo.Tangent(pos))
//
// # Thread Safety
//
// Everything in this package is a pure function of its arguments.
package dynamo
