// Package render abstracts the immediate-mode drawing surface so visualizers
// can draw on an ebiten screen in production and on a recording canvas in
// tests.
package render

import "image/color"

// Canvas is the minimal draw surface the visualizers need. Coordinates are in
// pixels with the origin at the top-left.
type Canvas interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	StrokeCircle(cx, cy, r, strokeWidth float64, c color.RGBA)
	Line(x1, y1, x2, y2, strokeWidth float64, c color.RGBA)
}
