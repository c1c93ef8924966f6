package viz

import (
	"image/color"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/palette"
	"github.com/auraviz/auraviz/internal/render"
)

const (
	waveHistorySize = 60
	waveFlashLife   = 30
)

type ringFlash struct {
	age int
}

type wavePoint struct {
	x, y float64
}

// Waveform renders the current time-domain trace as a thick smoothed curve
// over a fading history of past traces.
type Waveform struct {
	surface
	history [][]byte
	flashes []ringFlash
}

func NewWaveform() *Waveform {
	return &Waveform{}
}

func (v *Waveform) Configure(config.Settings) {}

func (v *Waveform) Render(c render.Canvas, f audio.Frame, s config.Settings) {
	if !v.ready() {
		return
	}
	c.FillRect(0, 0, v.w, v.h, color.RGBA{R: 6, G: 8, B: 14, A: 255})

	samples := f.TimeDomainSamples
	if len(samples) == 0 {
		return
	}

	snapshot := make([]byte, len(samples))
	copy(snapshot, samples)
	v.history = append(v.history, snapshot)
	if len(v.history) > waveHistorySize {
		v.history = v.history[1:]
	}

	pal := palette.Resolve(s.ColorScheme)
	main := pal[0]
	accent := pal[len(pal)/2]

	// Past traces, oldest nearly invisible, each offset slightly upward.
	for idx, old := range v.history[:len(v.history)-1] {
		age := len(v.history) - 1 - idx
		alpha := float64(idx+1) / float64(len(v.history)) * 0.25
		pts := v.tracePoints(old, s.Sensitivity, -float64(age)*0.8, false)
		v.drawPolyline(c, pts, 1, withAlpha(accent, alpha))
	}

	current := v.tracePoints(snapshot, s.Sensitivity, 0, false)
	v.drawSmoothedCurve(c, current, 6, withAlpha(main, 0.18)) // glow pass
	v.drawSmoothedCurve(c, current, 2.5, withAlpha(main, 0.95))

	if s.MirrorEffect {
		inverted := v.tracePoints(snapshot, s.Sensitivity*0.7, 0, true)
		v.drawSmoothedCurve(c, inverted, 2, withAlpha(accent, 0.6))
	}

	if f.BeatTriggered && s.BeatDetectionEnabled {
		v.flashes = append(v.flashes, ringFlash{})
	}
	v.updateFlashes(c, main)
}

func (v *Waveform) tracePoints(samples []byte, sensitivity, yOffset float64, invert bool) []wavePoint {
	pts := make([]wavePoint, len(samples))
	span := v.w
	denom := float64(len(samples) - 1)
	if denom <= 0 {
		denom = 1
	}
	for i, b := range samples {
		val := float64(b)/128 - 1
		if invert {
			val = -val
		}
		y := v.h/2 - val*v.h*0.38*sensitivity + yOffset
		pts[i] = wavePoint{
			x: float64(i) / denom * span,
			y: clamp(y, 0, v.h),
		}
	}
	return pts
}

func (v *Waveform) drawPolyline(c render.Canvas, pts []wavePoint, width float64, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].x, pts[i-1].y, pts[i].x, pts[i].y, width, col)
	}
}

// drawSmoothedCurve renders a quadratic interpolation through consecutive
// points using the midpoint technique: each sample acts as the control point
// of a bezier between its neighboring midpoints.
func (v *Waveform) drawSmoothedCurve(c render.Canvas, pts []wavePoint, width float64, col color.RGBA) {
	if len(pts) < 3 {
		v.drawPolyline(c, pts, width, col)
		return
	}
	const steps = 4
	prev := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		m1 := midpoint(pts[i-1], pts[i])
		m2 := midpoint(pts[i], pts[i+1])
		c.Line(prev.x, prev.y, m1.x, m1.y, width, col)
		last := m1
		for step := 1; step <= steps; step++ {
			t := float64(step) / steps
			p := quadBezier(m1, pts[i], m2, t)
			c.Line(last.x, last.y, p.x, p.y, width, col)
			last = p
		}
		prev = m2
	}
	end := pts[len(pts)-1]
	c.Line(prev.x, prev.y, end.x, end.y, width, col)
}

func (v *Waveform) updateFlashes(c render.Canvas, col color.RGBA) {
	alive := v.flashes[:0]
	cx, cy := v.w/2, v.h/2
	for _, fl := range v.flashes {
		fl.age++
		if fl.age >= waveFlashLife {
			continue
		}
		frac := float64(fl.age) / waveFlashLife
		radius := frac * v.h * 0.6
		a := (1 - frac) * 0.6
		c.StrokeCircle(cx, cy, radius, 2, withAlpha(col, a))
		c.StrokeCircle(cx, cy, radius*0.7, 1, withAlpha(col, a*0.6))
		alive = append(alive, fl)
	}
	v.flashes = alive
}

func midpoint(a, b wavePoint) wavePoint {
	return wavePoint{x: (a.x + b.x) / 2, y: (a.y + b.y) / 2}
}

func quadBezier(p0, ctrl, p1 wavePoint, t float64) wavePoint {
	u := 1 - t
	return wavePoint{
		x: u*u*p0.x + 2*u*t*ctrl.x + t*t*p1.x,
		y: u*u*p0.y + 2*u*t*ctrl.y + t*t*p1.y,
	}
}

func (v *Waveform) Destroy() {
	v.history = nil
	v.flashes = nil
}
