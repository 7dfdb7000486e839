// Package export writes still and animated snapshots of a particle field:
// PNG from a raster surface, SVG straight from particle state, and GIF from a
// sequence of captured frames.
package export
