package viz

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/palette"
	"github.com/auraviz/auraviz/internal/render"
)

const (
	particleDamping     = 0.98
	particleBounce      = 0.8
	particleConnectDist = 80.0
)

type particle struct {
	x, y, vx, vy float64
	size         float64
	life         int
	maxLife      int
	bin          int
	col          color.RGBA
}

// Particle renders a pool of audio-driven particles connected by a mesh of
// proximity lines. Each particle is bound to one frequency bin at creation
// and respawns in place when its life runs out.
type Particle struct {
	surface
	pool []particle
	rng  *rand.Rand
}

func NewParticle(rng *rand.Rand) *Particle {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Particle{rng: rng}
}

func (v *Particle) Configure(s config.Settings) {
	v.syncPool(s.ParticleCount)
}

func (v *Particle) Resize(w, h float64) {
	v.surface.Resize(w, h)
	if !v.ready() {
		return
	}
	for i := range v.pool {
		v.pool[i].x = clamp(v.pool[i].x, 0, v.w)
		v.pool[i].y = clamp(v.pool[i].y, 0, v.h)
	}
}

// syncPool grows or shrinks the pool to n, keeping surviving entries as-is.
func (v *Particle) syncPool(n int) {
	if n < 0 {
		n = 0
	}
	for len(v.pool) < n {
		var p particle
		v.seed(&p)
		v.pool = append(v.pool, p)
	}
	if len(v.pool) > n {
		v.pool = v.pool[:n]
	}
}

func (v *Particle) seed(p *particle) {
	p.x = v.rng.Float64() * v.w
	p.y = v.rng.Float64() * v.h
	p.vx = (v.rng.Float64() - 0.5) * 2
	p.vy = (v.rng.Float64() - 0.5) * 2
	p.size = 1.5 + v.rng.Float64()*2.5
	p.maxLife = 120 + v.rng.Intn(240)
	p.life = p.maxLife
	p.bin = v.rng.Intn(config.BinCount)
}

func (v *Particle) Render(c render.Canvas, f audio.Frame, s config.Settings) {
	v.syncPool(s.ParticleCount)
	if !v.ready() {
		return
	}
	// Fractional fade instead of a clear, for motion trails.
	c.FillRect(0, 0, v.w, v.h, color.RGBA{R: 8, G: 10, B: 18, A: 60})

	n := len(f.FrequencyMagnitudes)
	if n == 0 {
		return
	}

	pal := palette.Resolve(s.ColorScheme)
	for i := range v.pool {
		p := &v.pool[i]
		bass := intensity(f.FrequencyMagnitudes[p.bin%n])

		p.vx += (v.rng.Float64() - 0.5) * bass * s.Sensitivity
		p.vy += (v.rng.Float64() - 0.5) * bass * s.Sensitivity
		p.vx *= particleDamping
		p.vy *= particleDamping
		p.x += p.vx
		p.y += p.vy

		if p.x < 0 {
			p.x, p.vx = 0, -p.vx*particleBounce
		} else if p.x > v.w {
			p.x, p.vx = v.w, -p.vx*particleBounce
		}
		if p.y < 0 {
			p.y, p.vy = 0, -p.vy*particleBounce
		} else if p.y > v.h {
			p.y, p.vy = v.h, -p.vy*particleBounce
		}

		p.life--
		if p.life <= 0 {
			v.seed(p)
		}
		p.col = pal[p.bin%len(pal)]
	}

	v.drawConnections(c, f, s)

	for i := range v.pool {
		p := &v.pool[i]
		bass := intensity(f.FrequencyMagnitudes[p.bin%n])
		r := p.size * (0.6 + bass)
		a := 0.4 + 0.6*bass
		if f.BeatTriggered && s.BeatDetectionEnabled {
			r *= 1.5
			a = 1
		}
		c.FillCircle(p.x, p.y, r, withAlpha(p.col, a))
	}
}

// drawConnections links every pair of nearby particles; line opacity scales
// with proximity and the magnitude of a bin derived from the pair index.
func (v *Particle) drawConnections(c render.Canvas, f audio.Frame, s config.Settings) {
	n := len(f.FrequencyMagnitudes)
	for i := 0; i < len(v.pool); i++ {
		for j := i + 1; j < len(v.pool); j++ {
			a, b := &v.pool[i], &v.pool[j]
			dx, dy := a.x-b.x, a.y-b.y
			dist := math.Hypot(dx, dy)
			if dist >= particleConnectDist {
				continue
			}
			bound := intensity(f.FrequencyMagnitudes[(i+j)%n])
			alpha := (1 - dist/particleConnectDist) * bound * s.Sensitivity
			if alpha <= 0.02 {
				continue
			}
			c.Line(a.x, a.y, b.x, b.y, 1, withAlpha(a.col, clamp01(alpha)))
		}
	}
}

func (v *Particle) Destroy() {
	v.pool = nil
}
