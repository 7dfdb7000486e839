package field

import (
	"image/color"
	"math"
)

type RGB struct {
	R, G, B uint8
}

// RGBA is a particle color: an 8-bit hue plus a fractional alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// NRGBA converts to a non-premultiplied standard library color.
func (c RGBA) NRGBA() color.NRGBA {
	a := math.Round(c.A * 255)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

// Particle is one mote of the field. Vel, Radius, Color and Density never
// change after spawn.
type Particle struct {
	Pos  Vec2
	Base Vec2
	Vel  Vec2

	Radius  float64
	Color   RGBA
	Density float64
}

// Update advances p by one tick against the given pointer and bounds.
func (p *Particle) Update(pointer Vec2, b Bounds, influence, damping float64) {
	p.Pos = p.Pos.Add(p.Vel)

	d := pointer.Sub(p.Pos)
	dist := d.Len()
	if dist > 0 && dist < influence {
		force := (influence - dist) / influence
		p.Pos = p.Pos.Sub(d.Div(dist).Scale(force * p.Density))
	} else {
		p.Pos = p.Pos.Sub(p.Pos.Sub(p.Base).Div(damping))
	}

	p.Base = p.Base.Add(p.Vel)

	p.Pos = b.Wrap(p.Pos)
	p.Base = b.Wrap(p.Base)
}

// Offset is the current displacement from the baseline.
func (p *Particle) Offset() float64 { return p.Pos.Sub(p.Base).Len() }
