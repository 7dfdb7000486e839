// Package gui hosts the particle field in a desktop window using raylib.
package gui

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/raster"
	"github.com/san-kum/driftfield/internal/sim"
)

// Ink tones for the light paper background.
var (
	ColText    = rl.NewColor(13, 43, 38, 230)
	ColTextDim = rl.NewColor(13, 43, 38, 110)
	ColAccent  = rl.NewColor(168, 120, 40, 200)
)

const maxTelemetry = 240

type Options struct {
	Width, Height int
	TPS           int
	Background    color.RGBA
	ShowHUD       bool
	// Cursor draws a dot at the pointer and hides the system cursor.
	Cursor      bool
	Seed        int64
	SnapshotDir string
}

type App struct {
	layer     *sim.Layer
	opts      Options
	running   bool
	showHUD   bool
	quit      bool
	font      rl.Font
	telemetry []float64
	last      field.Stats
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "driftfield")
	rl.SetTargetFPS(int32(opts.TPS))
	rl.SetExitKey(0)
	if opts.Cursor {
		rl.HideCursor()
	}
}

// NewApp binds f to the open window. The window must already exist.
func NewApp(f *field.Field, opts Options) *App {
	s := &surface{background: opts.Background}
	b := field.NewBounds(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	return &App{
		layer:     sim.NewLayer(f, b, s),
		opts:      opts,
		running:   true,
		showHUD:   opts.ShowHUD,
		font:      rl.GetFontDefault(),
		telemetry: make([]float64, 0, maxTelemetry),
	}
}

// Run opens the window and blocks until it is closed.
func Run(f *field.Field, opts Options) error {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(f, opts)
	defer app.layer.Close()
	slog.Info("window opened", "width", opts.Width, "height", opts.Height, "particles", f.Len())
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update feeds window input to the layer. It runs before the frame is drawn
// so the latest pointer position is the one the tick sees.
func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		a.layer.Resize(w, h)
		slog.Debug("window resized", "width", w, "height", h)
	}

	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		m := rl.GetMousePosition()
		a.layer.MovePointer(float64(m.X), float64(m.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyR):
		if err := a.layer.Reset(a.opts.Seed); err == nil {
			a.telemetry = a.telemetry[:0]
		}
	case rl.IsKeyPressed(rl.KeyH):
		a.showHUD = !a.showHUD
	case rl.IsKeyPressed(rl.KeyP):
		a.snapshot()
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.running {
		if err := a.layer.Frame(); err == nil {
			a.record()
		}
	} else {
		_ = a.layer.Redraw()
	}

	if a.opts.Cursor {
		a.drawCursor()
	}
	if a.showHUD {
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) record() {
	a.last = a.layer.Stats()
	a.telemetry = append(a.telemetry, a.last.MeanOffset)
	if len(a.telemetry) > maxTelemetry {
		a.telemetry = a.telemetry[1:]
	}
}

func (a *App) drawHUD() {
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())

	a.drawText("driftfield", 30, 30, 24, ColText)

	status := "LIVE"
	col := ColText
	if !a.running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)

	p := a.layer.Pointer()
	pointer := "offscreen"
	if a.layer.Bounds().Contains(p) {
		pointer = fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
	}
	lines := []string{
		fmt.Sprintf("tick      %d", a.last.Tick),
		fmt.Sprintf("particles %d", a.last.Particles),
		fmt.Sprintf("pointer   %s", pointer),
		fmt.Sprintf("offset    %.2f (peak %.2f)", a.last.MeanOffset, a.last.MaxOffset),
		fmt.Sprintf("disturbed %d", a.last.Disturbed),
	}
	for i, l := range lines {
		a.drawText(l, 30, 70+i*20, 14, ColTextDim)
	}

	a.drawTelemetry(30, h-110, 300, 50)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [R] RESET  [H] HUD  [P] SNAPSHOT  [Q] QUIT", w-560, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// snapshot renders the current particles offscreen and writes a PNG.
func (a *App) snapshot() {
	b := a.layer.Bounds()
	rs := raster.New(int(b.W), int(b.H), a.opts.Background)
	a.layer.Field().Draw(rs)

	path := filepath.Join(a.opts.SnapshotDir, fmt.Sprintf("driftfield_%d.png", time.Now().Unix()))
	if err := export.WritePNG(path, rs); err != nil {
		slog.Error("snapshot failed", "path", path, "err", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}
