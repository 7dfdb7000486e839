package field

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	DefaultCount           = 100
	DefaultInfluenceRadius = 100.0
	DefaultReturnDamping   = 10.0

	// ParallelThreshold is the particle count at which Step splits the
	// update across goroutines.
	ParallelThreshold = 4096
)

// DefaultHue is the dark green used for every particle.
var DefaultHue = RGB{R: 13, G: 43, B: 38}

// Range is a closed sampling interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: %s bounds must be finite", ErrInvalidRange, name)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidRange, name, r.Min, r.Max)
	}
	return nil
}

// Params fixes everything about a field at construction time.
type Params struct {
	Count           int
	InfluenceRadius float64
	ReturnDamping   float64

	Velocity Range
	Radius   Range
	Alpha    Range
	Density  Range

	Hue RGB
}

func DefaultParams() Params {
	return Params{
		Count:           DefaultCount,
		InfluenceRadius: DefaultInfluenceRadius,
		ReturnDamping:   DefaultReturnDamping,
		Velocity:        Range{Min: -0.25, Max: 0.25},
		Radius:          Range{Min: 0.5, Max: 2.5},
		Alpha:           Range{Min: 0, Max: 0.3},
		Density:         Range{Min: 1, Max: 31},
		Hue:             DefaultHue,
	}
}

func (p Params) Validate() error {
	if p.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidParams, p.Count)
	}
	if !(p.InfluenceRadius > 0) || math.IsInf(p.InfluenceRadius, 0) {
		return fmt.Errorf("%w: influence radius must be positive, got %g", ErrInvalidParams, p.InfluenceRadius)
	}
	// Damping below 1 overshoots the baseline instead of easing toward it.
	if !(p.ReturnDamping >= 1) || math.IsInf(p.ReturnDamping, 0) {
		return fmt.Errorf("%w: return damping must be >= 1, got %g", ErrInvalidParams, p.ReturnDamping)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"velocity", p.Velocity},
		{"radius", p.Radius},
		{"alpha", p.Alpha},
		{"density", p.Density},
	}
	for _, nr := range ranges {
		if err := nr.r.validate(nr.name); err != nil {
			return err
		}
	}

	if p.Radius.Min < 0 {
		return fmt.Errorf("%w: radius must be non-negative", ErrInvalidRange)
	}
	if p.Alpha.Min < 0 || p.Alpha.Max > 1 {
		return fmt.Errorf("%w: alpha must lie in [0, 1]", ErrInvalidRange)
	}
	return nil
}
