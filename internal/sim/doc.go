// Package sim hosts a particle field for the lifetime of a view.
//
// The package wires a [field.Field] to its collaborators:
//
//   - [Layer]: the live field instance with its pointer state, viewport
//     bounds and drawing surface
//   - [Runner]: a headless frame scheduler that re-arms one tick after
//     another until a tick budget or context cancellation
//   - [PointerPath]: scripted pointer input for runs without a mouse
//   - [Metric] and [Observer]: per-frame statistics
//
// # Example
//
//	l := sim.NewLayer(f, bounds, raster.New(w, h, bg))
//	r := sim.NewRunner(l, sim.Options{TPS: 60, MaxTicks: 600, Path: sim.Orbit{}})
//	result, err := r.Run(ctx)
//
// # Thread Safety
//
// A Layer belongs to a single host loop. Pointer and resize handlers must run
// on the same goroutine as Frame.
package sim
