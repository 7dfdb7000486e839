package field

import (
	"fmt"
	"math/rand/v2"
)

// Surface is a 2D raster target the field draws into.
type Surface interface {
	Clear()
	FillCircle(center Vec2, radius float64, c RGBA)
}

// Resizer is implemented by surfaces that track the viewport size.
type Resizer interface {
	Resize(w, h int)
}

type Field struct {
	params    Params
	particles []Particle
	rng       *rand.Rand
	seed      int64
	ticks     uint64
}

// New spawns params.Count particles uniformly across b.
func New(params Params, b Bounds, seed int64) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	f := &Field{params: params}
	f.Reset(seed, b)
	return f, nil
}

// FromParticles builds a field around an explicit particle set. The slice is
// copied.
func FromParticles(params Params, particles []Particle) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(particles) != params.Count {
		return nil, fmt.Errorf("%w: got %d particles for count %d", ErrInvalidParams, len(particles), params.Count)
	}
	ps := make([]Particle, len(particles))
	copy(ps, particles)
	return &Field{
		params:    params,
		particles: ps,
		rng:       rand.New(rand.NewPCG(0, 0)),
	}, nil
}

// Reset discards every particle and spawns a fresh set of the same size.
func (f *Field) Reset(seed int64, b Bounds) {
	f.seed = seed
	f.rng = rand.New(rand.NewPCG(uint64(seed), 0))
	f.ticks = 0

	if cap(f.particles) >= f.params.Count {
		f.particles = f.particles[:f.params.Count]
	} else {
		f.particles = make([]Particle, f.params.Count)
	}
	for i := range f.particles {
		f.particles[i] = f.spawn(b)
	}
}

func (f *Field) spawn(b Bounds) Particle {
	r, p := f.rng, f.params
	pos := Vec2{r.Float64() * b.W, r.Float64() * b.H}
	return Particle{
		Pos:     pos,
		Base:    pos,
		Vel:     Vec2{p.Velocity.Sample(r), p.Velocity.Sample(r)},
		Radius:  p.Radius.Sample(r),
		Color:   RGBA{R: p.Hue.R, G: p.Hue.G, B: p.Hue.B, A: p.Alpha.Sample(r)},
		Density: p.Density.Sample(r),
	}
}

// Step runs one tick for every particle.
func (f *Field) Step(pointer Vec2, b Bounds) {
	influence, damping := f.params.InfluenceRadius, f.params.ReturnDamping
	ParallelFor(len(f.particles), ParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			f.particles[i].Update(pointer, b, influence, damping)
		}
	})
	f.ticks++
}

// Draw clears s and fills one disc per particle. A nil surface draws nothing.
func (f *Field) Draw(s Surface) {
	if s == nil {
		return
	}
	s.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.Pos, p.Radius, p.Color)
	}
}

func (f *Field) Len() int       { return len(f.particles) }
func (f *Field) Ticks() uint64  { return f.ticks }
func (f *Field) Seed() int64    { return f.seed }
func (f *Field) Params() Params { return f.params }

// Particles returns a copy of the current particle set.
func (f *Field) Particles() []Particle {
	ps := make([]Particle, len(f.particles))
	copy(ps, f.particles)
	return ps
}
