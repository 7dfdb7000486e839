package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

var ErrNoFrames = errors.New("export: no frames captured")

// GIFRecorder accumulates paletted frames for an animated capture.
type GIFRecorder struct {
	delay  int
	frames []*image.Paletted
	delays []int
}

// NewGIFRecorder records frames shown for delay hundredths of a second each.
func NewGIFRecorder(delay int) *GIFRecorder {
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{delay: delay}
}

// Capture quantises img to the Plan9 palette with Floyd-Steinberg dithering.
func (g *GIFRecorder) Capture(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, b, img, b.Min)
	g.frames = append(g.frames, frame)
	g.delays = append(g.delays, g.delay)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image: g.frames,
		Delay: g.delays,
	})
}
