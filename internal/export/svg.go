package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/driftfield/internal/field"
)

// ParticlesToSVG renders particles as discs on a background rect of w×h.
func ParticlesToSVG(particles []field.Particle, w, h int, background color.Color) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g>
`, w, h, w, h, hexColor(background)))

	for _, p := range particles {
		if p.Radius <= 0 || p.Color.A <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="rgb(%d,%d,%d)" fill-opacity="%.3f"/>
`, p.Pos.X, p.Pos.Y, p.Radius, p.Color.R, p.Color.G, p.Color.B, p.Color.A))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func hexColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
