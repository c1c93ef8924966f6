package viz

import (
	"image/color"
	"math"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/palette"
	"github.com/auraviz/auraviz/internal/render"
)

const (
	ringCount       = 6
	dialBars        = 64
	orbitNodes      = 8
	burstSpokes     = 16
	burstLife       = 36
	dialSpinPerTick = 0.005
)

type ring struct {
	radius    float64
	intensity float64
	col       color.RGBA
}

type burst struct {
	age int
}

// Circular renders six concentric pulsating rings, a rotating dial of radial
// bars, and a set of orbiting nodes sized by overall volume.
type Circular struct {
	surface
	rings    [ringCount]ring
	rotation float64
	bursts   []burst
}

func NewCircular() *Circular {
	return &Circular{}
}

func (v *Circular) Configure(config.Settings) {}

func (v *Circular) Render(c render.Canvas, f audio.Frame, s config.Settings) {
	if !v.ready() {
		return
	}
	// Fractional fade for trailing motion.
	c.FillRect(0, 0, v.w, v.h, color.RGBA{R: 6, G: 8, B: 14, A: 70})

	n := len(f.FrequencyMagnitudes)
	if n == 0 {
		return
	}

	v.rotation += dialSpinPerTick
	cx, cy := v.w/2, v.h/2
	minDim := math.Min(v.w, v.h)
	pal := palette.Resolve(s.ColorScheme)

	// One contiguous band per ring; the band width never collapses to zero.
	binsPerRing := n / ringCount
	if binsPerRing < 1 {
		binsPerRing = 1
	}
	for i := range v.rings {
		r := &v.rings[i]
		r.intensity = bandAverage(f.FrequencyMagnitudes, i*binsPerRing, (i+1)*binsPerRing) / 255
		base := minDim * 0.055 * float64(i+1)
		pulse := minDim * 0.08
		r.radius = base + r.intensity*pulse*s.Sensitivity
		r.col = pal[i%len(pal)]

		c.StrokeCircle(cx, cy, r.radius, 8, withAlpha(r.col, 0.12+0.2*r.intensity)) // glow stroke
		c.StrokeCircle(cx, cy, r.radius, 2, withAlpha(r.col, 0.5+0.5*r.intensity))
	}

	v.drawDial(c, f, s, cx, cy, minDim, pal)
	v.drawOrbitNodes(c, f, cx, cy, minDim, pal)

	if f.BeatTriggered && s.BeatDetectionEnabled {
		v.bursts = append(v.bursts, burst{})
	}
	v.updateBursts(c, cx, cy, minDim, pal[0])
}

func (v *Circular) drawDial(c render.Canvas, f audio.Frame, s config.Settings, cx, cy, minDim float64, pal []color.RGBA) {
	n := len(f.FrequencyMagnitudes)
	group := n / dialBars
	if group < 1 {
		group = 1
	}
	inner := minDim * 0.38
	for j := 0; j < dialBars; j++ {
		mag := bandAverage(f.FrequencyMagnitudes, j*group, (j+1)*group) / 255
		length := mag * minDim * 0.12 * s.Sensitivity
		if length < 0.5 {
			continue
		}
		angle := v.rotation + float64(j)*2*math.Pi/dialBars
		x1 := cx + math.Cos(angle)*inner
		y1 := cy + math.Sin(angle)*inner
		x2 := cx + math.Cos(angle)*(inner+length)
		y2 := cy + math.Sin(angle)*(inner+length)
		col := pal[j%len(pal)]
		c.Line(x1, y1, x2, y2, 2, withAlpha(col, 0.3+0.7*mag))
	}
}

func (v *Circular) drawOrbitNodes(c render.Canvas, f audio.Frame, cx, cy, minDim float64, pal []color.RGBA) {
	orbit := minDim * 0.46
	size := 2 + f.Volume*8
	var prevX, prevY, firstX, firstY float64
	for j := 0; j < orbitNodes; j++ {
		angle := v.rotation*2 + float64(j)*2*math.Pi/orbitNodes
		x := cx + math.Cos(angle)*orbit
		y := cy + math.Sin(angle)*orbit
		col := pal[j%len(pal)]
		c.FillCircle(x, y, size, withAlpha(col, 0.7))
		if j == 0 {
			firstX, firstY = x, y
		} else {
			c.Line(prevX, prevY, x, y, 1, withAlpha(col, 0.15))
		}
		prevX, prevY = x, y
	}
	c.Line(prevX, prevY, firstX, firstY, 1, withAlpha(pal[0], 0.15))
}

func (v *Circular) updateBursts(c render.Canvas, cx, cy, minDim float64, col color.RGBA) {
	alive := v.bursts[:0]
	for _, b := range v.bursts {
		b.age++
		if b.age >= burstLife {
			continue
		}
		frac := float64(b.age) / burstLife
		radius := minDim * (0.1 + frac*0.5)
		a := (1 - frac) * 0.7
		c.StrokeCircle(cx, cy, radius, 3, withAlpha(col, a))
		for k := 0; k < burstSpokes; k++ {
			angle := float64(k) * 2 * math.Pi / burstSpokes
			x1 := cx + math.Cos(angle)*radius*0.8
			y1 := cy + math.Sin(angle)*radius*0.8
			x2 := cx + math.Cos(angle)*(radius*0.8+minDim*0.04)
			y2 := cy + math.Sin(angle)*(radius*0.8+minDim*0.04)
			c.Line(x1, y1, x2, y2, 2, withAlpha(col, a*0.8))
		}
		alive = append(alive, b)
	}
	v.bursts = alive
}

func (v *Circular) Destroy() {
	v.bursts = nil
}
