package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Screen adapts an ebiten image to the Canvas interface.
type Screen struct {
	img *ebiten.Image
}

func NewScreen(img *ebiten.Image) *Screen {
	return &Screen{img: img}
}

func (s *Screen) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Screen) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Screen) StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA) {
	vector.StrokeRect(s.img, float32(x), float32(y), float32(w), float32(h), float32(strokeWidth), c, false)
}

func (s *Screen) FillCircle(cx, cy, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, false)
}

func (s *Screen) StrokeCircle(cx, cy, r, strokeWidth float64, c color.RGBA) {
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), float32(strokeWidth), c, false)
}

func (s *Screen) Line(x1, y1, x2, y2, strokeWidth float64, c color.RGBA) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(strokeWidth), c, false)
}
