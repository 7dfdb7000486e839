package field

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises one tick of the field.
type Stats struct {
	Tick       uint64
	Particles  int
	MeanOffset float64
	MaxOffset  float64
	// Disturbed counts particles strictly inside the pointer's influence
	// radius at their current position.
	Disturbed int
}

func (f *Field) Stats(pointer Vec2) Stats {
	st := Stats{Tick: f.ticks, Particles: len(f.particles)}
	if len(f.particles) == 0 {
		return st
	}

	offsets := make([]float64, len(f.particles))
	for i := range f.particles {
		p := &f.particles[i]
		offsets[i] = p.Offset()
		if d := pointer.Sub(p.Pos).Len(); d > 0 && d < f.params.InfluenceRadius {
			st.Disturbed++
		}
	}
	st.MeanOffset = stat.Mean(offsets, nil)
	st.MaxOffset = floats.Max(offsets)
	return st
}
