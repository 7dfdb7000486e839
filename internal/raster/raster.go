// Package raster provides an in-memory software surface for the particle
// field, used for headless snapshots and GIF capture.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/driftfield/internal/field"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a
// circle.
const kappa = 0.5522847498307936

// Surface rasterises anti-aliased discs into an RGBA image.
type Surface struct {
	img        *image.RGBA
	rast       *vector.Rasterizer
	mask       *image.Alpha
	background color.Color
}

func New(w, h int, background color.Color) *Surface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if background == nil {
		background = color.Transparent
	}
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		rast:       vector.NewRasterizer(w, h),
		background: background,
	}
	s.Clear()
	return s
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(w, h int) {
	if cw, ch := s.Size(); cw == w && ch == h {
		return
	}
	*s = *New(w, h, s.background)
}

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// FillCircle rasterises the disc into a mask covering only its bounding box
// and composites it over the image.
func (s *Surface) FillCircle(center field.Vec2, radius float64, c field.RGBA) {
	if radius <= 0 || c.A <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(center.X-radius)), int(math.Floor(center.Y-radius)),
		int(math.Ceil(center.X+radius)), int(math.Ceil(center.Y+radius)),
	)
	if !box.Overlaps(s.img.Bounds()) {
		return
	}
	bw, bh := box.Dx(), box.Dy()

	s.rast.Reset(bw, bh)
	s.rast.DrawOp = draw.Src

	// path coordinates are relative to the box origin
	cx := float32(center.X - float64(box.Min.X))
	cy := float32(center.Y - float64(box.Min.Y))
	r := float32(radius)
	k := r * kappa
	s.rast.MoveTo(cx+r, cy)
	s.rast.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	s.rast.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	s.rast.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	s.rast.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	s.rast.ClosePath()

	mask := s.maskFor(bw, bh)
	s.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(s.img, box, image.NewUniform(c.NRGBA()), image.Point{}, mask, image.Point{}, draw.Over)
}

// maskFor returns a w×h alpha mask, reusing the previous one when the size
// matches.
func (s *Surface) maskFor(w, h int) *image.Alpha {
	if s.mask == nil || s.mask.Rect.Dx() != w || s.mask.Rect.Dy() != h {
		s.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	return s.mask
}

func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}
