package viz

import (
	"image/color"
	"math/rand"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/palette"
	"github.com/auraviz/auraviz/internal/render"
)

const (
	spectrumMaxBands  = 64
	spectrumSmoothing = 0.3
	sparkLife         = 24
	maxSparks         = 96
)

type spark struct {
	x, y, vx, vy float64
	life         int
	col          color.RGBA
}

// Spectrum renders frequency bands as vertical gradient bars with exponential
// smoothing for motion continuity across frames.
type Spectrum struct {
	surface
	smoothed []float64
	sparks   []spark
	rng      *rand.Rand
}

func NewSpectrum(rng *rand.Rand) *Spectrum {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Spectrum{rng: rng}
}

func (v *Spectrum) Configure(config.Settings) {}

func (v *Spectrum) Render(c render.Canvas, f audio.Frame, s config.Settings) {
	if !v.ready() {
		return
	}
	c.FillRect(0, 0, v.w, v.h, color.RGBA{R: 8, G: 10, B: 18, A: 255})

	n := len(f.FrequencyMagnitudes)
	if n == 0 {
		return
	}

	bands := spectrumMaxBands
	if n < bands {
		bands = n
	}
	binsPerBand := n / bands
	if binsPerBand < 1 {
		binsPerBand = 1
	}
	if len(v.smoothed) != bands {
		v.smoothed = make([]float64, bands)
	}

	pal := palette.Resolve(s.ColorScheme)
	barW := v.w / float64(bands)
	baseline := v.h

	for i := 0; i < bands; i++ {
		raw := bandAverage(f.FrequencyMagnitudes, i*binsPerBand, (i+1)*binsPerBand)
		v.smoothed[i] += (raw - v.smoothed[i]) * spectrumSmoothing

		height := clamp(v.barHeight(v.smoothed[i], s.Sensitivity), 0, v.h)
		if height < 1 {
			continue
		}
		col := pal[i%len(pal)]
		x := float64(i) * barW

		v.drawGradientBar(c, x, baseline-height, barW-1, height, col)
		if s.MirrorEffect {
			v.drawGradientBarFlipped(c, x, barW-1, height*0.9, withAlpha(col, 0.35))
		}
		if f.BeatTriggered && s.BeatDetectionEnabled {
			c.StrokeRect(x, baseline-height, barW-1, height, 2, withAlpha(col, 0.5))
			if v.rng.Intn(4) == 0 && len(v.sparks) < maxSparks {
				v.sparks = append(v.sparks, spark{
					x:    x + barW/2,
					y:    baseline - height,
					vx:   (v.rng.Float64() - 0.5) * 3,
					vy:   -1 - v.rng.Float64()*2,
					life: sparkLife,
					col:  col,
				})
			}
		}
	}

	v.updateSparks(c)
}

// barHeight maps a smoothed band value to pixels; the caller clamps to the
// surface height.
func (v *Spectrum) barHeight(smoothed, sensitivity float64) float64 {
	return smoothed / 255 * sensitivity * v.h
}

func (v *Spectrum) drawGradientBar(c render.Canvas, x, top, w, height float64, col color.RGBA) {
	// Opaque near the baseline, fading toward the tip.
	const segments = 6
	segH := height / segments
	for seg := 0; seg < segments; seg++ {
		frac := float64(seg) / segments // 0 at the tip
		a := 0.2 + 0.8*frac
		c.FillRect(x, top+frac*height, w, segH+1, withAlpha(col, a))
	}
}

func (v *Spectrum) drawGradientBarFlipped(c render.Canvas, x, w, height float64, col color.RGBA) {
	const segments = 6
	segH := height / segments
	for seg := 0; seg < segments; seg++ {
		frac := float64(seg) / segments
		a := float64(col.A) / 255 * (1 - 0.8*frac)
		c.FillRect(x, frac*height, w, segH+1, withAlpha(col, a))
	}
}

func (v *Spectrum) updateSparks(c render.Canvas) {
	alive := v.sparks[:0]
	for _, sp := range v.sparks {
		sp.x += sp.vx
		sp.y += sp.vy
		sp.vy += 0.08
		sp.life--
		if sp.life <= 0 {
			continue
		}
		a := float64(sp.life) / sparkLife
		c.FillCircle(sp.x, sp.y, 1.5+a, withAlpha(sp.col, a))
		alive = append(alive, sp)
	}
	v.sparks = alive
}

func (v *Spectrum) Destroy() {
	v.smoothed = nil
	v.sparks = nil
}
