// Package viz hosts both scenes in the terminal with Bubble Tea.
//
//   - [Canvas]: Braille pixel canvas implementing render.Surface
//   - [OrbitModel]: the orbital scene with an energy drift chart
//   - [FieldModel]: the magnetic scene with a strength profile chart
//   - [Launcher]: scene menu and text inputs, then either model
//
// Every model owns a frame.Queue that its TickMsg drains, so the scenes
// see the same one-request-per-frame loop they would under any host.
//
// # Key Bindings
//
// Orbit:
//
//	S       - Start (re-initializes every body)
//	Space/P - Pause/Resume
//	R       - Reset
//
// Field:
//
//	S / X   - Start / Stop
//	+ / -   - Strength up / down
//	D       - Reverse current direction
//	Click   - Place compass (shift+click places the probe)
//
// Both: T cycles themes, ? toggles help, Q quits.
package viz
