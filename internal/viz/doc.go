// Package viz renders a particle field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live view, stepping a sim.Layer on every tick
//   - [Canvas]: Braille-based surface, 2x4 dots per terminal cell
//   - Theme selection with 5 built-in color schemes
//
// Mouse motion moves the pointer. Cells map to the dot at their centre, so
// the field's viewport is the canvas size in dots.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Respawn particles
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
