// Package field implements the ambient particle field.
//
// A [Field] owns a fixed number of [Particle] values and advances them one
// tick at a time:
//
//   - every particle drifts by its constant velocity
//   - particles inside the pointer's influence radius are pushed away from it
//   - everything else eases back toward its drifting baseline
//   - positions and baselines wrap around the viewport
//
// The field never reads host state on its own. Pointer position and viewport
// bounds are passed into [Field.Step] explicitly, and pixels go out through a
// [Surface].
//
// # Example
//
//	f, _ := field.New(field.DefaultParams(), field.Bounds{W: 800, H: 600}, seed)
//	for {
//		f.Step(pointer, bounds)
//		f.Draw(surface)
//	}
//
// # Thread Safety
//
// Field instances are NOT thread-safe. Step may fan work out internally for
// large particle counts but returns only after every particle is updated.
package field
