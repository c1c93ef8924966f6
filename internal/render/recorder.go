package render

import "image/color"

// OpKind identifies a recorded draw call.
type OpKind string

const (
	OpFillRect     OpKind = "fill-rect"
	OpStrokeRect   OpKind = "stroke-rect"
	OpFillCircle   OpKind = "fill-circle"
	OpStrokeCircle OpKind = "stroke-circle"
	OpLine         OpKind = "line"
)

// Op is one recorded draw call. X2/Y2 are the second endpoint for lines, the
// extent for rects, and unused for circles; W carries radius or rect width
// depending on the kind.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64
	W              float64
	Color          color.RGBA
}

// Recorder is a Canvas that records draw operations instead of rasterizing,
// so tests can assert on what a render call produced.
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X1: x, Y1: y, X2: w, Y2: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, X1: x, Y1: y, X2: w, Y2: h, W: strokeWidth, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X1: cx, Y1: cy, W: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, strokeWidth float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, X1: cx, Y1: cy, W: radius, X2: strokeWidth, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, strokeWidth float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, W: strokeWidth, Color: c})
}

// Reset drops all recorded operations, keeping the size.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many operations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
