// Package analysis characterizes recorded orbits.
//
// Every function works on attractor-relative positions sampled at
// simulated times, as produced by storage.Trajectory:
//
//   - [MeasuredPeriod]: period implied by the angle swept so far
//   - [Apsides]: closest and farthest distance from the attractor
//   - [Eccentricity]: (apo - peri) / (apo + peri)
//   - [Summarize]: all of the above for one body
//
// Samples with non-finite coordinates (a collided body) are skipped.
package analysis
