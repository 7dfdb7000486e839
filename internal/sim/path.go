package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/driftfield/internal/field"
)

// PointerPath scripts pointer input for hosts without a mouse. At reports
// false when no move event happens on that tick.
type PointerPath interface {
	At(tick uint64, b field.Bounds) (field.Vec2, bool)
}

// Idle never moves the pointer, leaving it offscreen.
type Idle struct{}

func (Idle) At(uint64, field.Bounds) (field.Vec2, bool) { return field.Vec2{}, false }

// Orbit circles the viewport centre. A zero Radius uses 30% of the shorter
// side; a zero Period takes 600 ticks per lap.
type Orbit struct {
	Radius float64
	Period int
}

func (o Orbit) At(tick uint64, b field.Bounds) (field.Vec2, bool) {
	r := o.Radius
	if r <= 0 {
		r = 0.3 * math.Min(b.W, b.H)
	}
	period := o.Period
	if period <= 0 {
		period = 600
	}
	angle := 2 * math.Pi * float64(tick%uint64(period)) / float64(period)
	return field.Vec2{X: b.W/2 + r*math.Cos(angle), Y: b.H/2 + r*math.Sin(angle)}, true
}

// Sweep moves the pointer back and forth along the horizontal midline.
type Sweep struct {
	Period int
}

func (s Sweep) At(tick uint64, b field.Bounds) (field.Vec2, bool) {
	period := s.Period
	if period <= 0 {
		period = 600
	}
	phase := float64(tick%uint64(period)) / float64(period)
	// triangle wave 0 -> 1 -> 0
	u := 1 - math.Abs(2*phase-1)
	return field.Vec2{X: u * b.W, Y: b.H / 2}, true
}

var paths = map[string]func() PointerPath{
	"idle":  func() PointerPath { return Idle{} },
	"orbit": func() PointerPath { return Orbit{} },
	"sweep": func() PointerPath { return Sweep{} },
}

func ParsePath(name string) (PointerPath, error) {
	fn, ok := paths[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPath, name)
	}
	return fn(), nil
}

func ListPaths() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
