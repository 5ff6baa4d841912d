// Package physics holds the state-evolving entities of both visualizers.
//
//   - [Body]: a disc orbiting a single fixed attractor, advanced by
//     [Body.Update] under an inverse-square [Gravity] law
//   - [Trail]: bounded FIFO of a body's recent positions
//   - [Field]: the relative-strength magnetic field around a wire, its
//     traced [Line] geometry and [Reading] samples
//
// Nothing here draws. Renderers consume copies of this state.
//
// # Collisions
//
// A body whose distance to the attractor drops below the sum of the radii is
// marked Destroyed permanently:
//
//	if b.Update(dt, sun, g) {
//	    log.Info(ctx, "collision", logging.String("body", b.Name))
//	}
package physics
