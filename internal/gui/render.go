package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/field"
)

// surface draws the field straight into the current raylib frame. Calls
// are only valid between BeginDrawing and EndDrawing.
type surface struct {
	background color.RGBA
}

func (s *surface) Clear() {
	rl.ClearBackground(s.background)
}

func (s *surface) FillCircle(center field.Vec2, radius float64, c field.RGBA) {
	if radius <= 0 || c.A <= 0 {
		return
	}
	a := uint8(math.Round(math.Min(c.A, 1) * 255))
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), rl.NewColor(c.R, c.G, c.B, a))
}

// drawTelemetry plots the mean offset history as a line strip.
func (a *App) drawTelemetry(x, y, width, height int) {
	if len(a.telemetry) < 2 {
		return
	}

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(x) + (float32(i)/float32(len(a.telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
}

func (a *App) drawCursor() {
	p := a.layer.Pointer()
	if !a.layer.Bounds().Contains(p) {
		return
	}
	pos := rl.NewVector2(float32(p.X), float32(p.Y))
	rl.DrawCircleV(pos, 4, ColText)
	rl.DrawCircleLines(int32(p.X), int32(p.Y), 12, ColTextDim)
}
