package field

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Div(s float64) Vec2   { return Vec2{v.X / s, v.Y / s} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Offscreen is the pointer position used before any pointer input arrives.
// It is far enough outside any viewport that no particle is disturbed.
var Offscreen = Vec2{-1000, -1000}

// Bounds is the viewport size in surface units.
type Bounds struct {
	W, H float64
}

func NewBounds(w, h int) Bounds { return Bounds{W: float64(w), H: float64(h)} }

func (b Bounds) Contains(v Vec2) bool {
	return v.X >= 0 && v.X < b.W && v.Y >= 0 && v.Y < b.H
}

// Wrap folds v back into [0, W) x [0, H), one axis at a time.
func (b Bounds) Wrap(v Vec2) Vec2 {
	return Vec2{wrapAxis(v.X, b.W), wrapAxis(v.Y, b.H)}
}

// wrapAxis sends anything below zero to the far edge and anything at or past
// the far edge to zero. The far edge itself is excluded, so "the edge" is the
// largest float below size.
func wrapAxis(v, size float64) float64 {
	switch {
	case v < 0:
		if size <= 0 {
			return 0
		}
		return math.Nextafter(size, 0)
	case v >= size:
		return 0
	}
	return v
}
