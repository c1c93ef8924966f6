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
	shapePoolSize   = 20
	fractalDepth    = 3
	fractalDecay    = 0.6
	fragmentLife    = 26
	fragmentsPerHit = 12
)

type shapeKind int

const (
	shapeTriangle shapeKind = iota
	shapeSquare
	shapeCircle
	shapeLine
)

type shape struct {
	kind      shapeKind
	orbitFrac float64 // orbit radius as a fraction of the surface
	angle     float64
	rotation  float64
	rotSpeed  float64
	sizeFrac  float64
	bin       int
	col       color.RGBA
}

type fragment struct {
	kind shapeKind
	x, y float64
	size float64
	rot  float64
	age  int
	col  color.RGBA
}

// Abstract renders a generative composition: orbiting geometric shapes bound
// to frequency bins, a recursive fractal branch sized by volume, and a radial
// wash recomputed from band intensities every frame.
type Abstract struct {
	surface
	shapes    [shapePoolSize]shape
	fragments []fragment
	rng       *rand.Rand
	t         float64
}

func NewAbstract(rng *rand.Rand) *Abstract {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	v := &Abstract{rng: rng}
	for i := range v.shapes {
		sh := &v.shapes[i]
		sh.kind = shapeKind(i % 4)
		sh.orbitFrac = 0.1 + rng.Float64()*0.35
		sh.angle = rng.Float64() * 2 * math.Pi
		sh.rotSpeed = (rng.Float64() - 0.5) * 0.08
		sh.sizeFrac = 0.015 + rng.Float64()*0.03
		sh.bin = rng.Intn(config.BinCount)
	}
	return v
}

func (v *Abstract) Configure(config.Settings) {}

func (v *Abstract) Render(c render.Canvas, f audio.Frame, s config.Settings) {
	if !v.ready() {
		return
	}
	c.FillRect(0, 0, v.w, v.h, color.RGBA{R: 6, G: 6, B: 12, A: 255})

	n := len(f.FrequencyMagnitudes)
	if n == 0 {
		return
	}

	v.t += 1.0 / 60
	cx, cy := v.w/2, v.h/2
	minDim := math.Min(v.w, v.h)
	pal := palette.Resolve(s.ColorScheme)

	v.drawWash(c, f, cx, cy, minDim, pal)
	v.drawFractal(c, f, s, cx, cy, minDim, pal)

	for i := range v.shapes {
		sh := &v.shapes[i]
		mag := intensity(f.FrequencyMagnitudes[sh.bin%n])
		sh.angle += sh.rotSpeed * (0.4 + mag)
		sh.rotation += sh.rotSpeed * 2

		orbit := minDim * sh.orbitFrac * (0.8 + 0.4*mag)
		x := cx + math.Cos(sh.angle+v.t*0.2)*orbit
		y := cy + math.Sin(sh.angle+v.t*0.2)*orbit
		size := minDim * sh.sizeFrac * (0.6 + mag*s.Sensitivity*1.4)
		sh.col = pal[int(mag*float64(len(pal)-1))]

		v.drawShape(c, sh.kind, x, y, size, sh.rotation, withAlpha(sh.col, 0.35+0.65*mag))
	}

	if f.BeatTriggered && s.BeatDetectionEnabled {
		v.spawnFragments(pal, cx, cy, minDim)
	}
	v.updateFragments(c)
}

// drawWash approximates a full-surface radial gradient with concentric
// translucent discs colored by band intensity, outermost first.
func (v *Abstract) drawWash(c render.Canvas, f audio.Frame, cx, cy, minDim float64, pal []color.RGBA) {
	n := len(f.FrequencyMagnitudes)
	const layers = 5
	binsPerLayer := n / layers
	if binsPerLayer < 1 {
		binsPerLayer = 1
	}
	for i := layers - 1; i >= 0; i-- {
		mag := bandAverage(f.FrequencyMagnitudes, i*binsPerLayer, (i+1)*binsPerLayer) / 255
		radius := minDim * (0.2 + 0.14*float64(i))
		col := pal[i%len(pal)]
		c.FillCircle(cx, cy, radius, withAlpha(col, 0.03+0.09*mag))
	}
}

func (v *Abstract) drawFractal(c render.Canvas, f audio.Frame, s config.Settings, cx, cy, minDim float64, pal []color.RGBA) {
	length := minDim * 0.16 * (0.3 + f.Volume*s.Sensitivity)
	spread := 0.5 + 0.3*math.Sin(v.t*0.7)
	col := withAlpha(pal[len(pal)-1], 0.5)
	v.branch(c, cx, cy, -math.Pi/2, length, spread, fractalDepth, col)
}

func (v *Abstract) branch(c render.Canvas, x, y, angle, length, spread float64, depth int, col color.RGBA) {
	if depth <= 0 || length < 1 {
		return
	}
	x2 := x + math.Cos(angle)*length
	y2 := y + math.Sin(angle)*length
	c.Line(x, y, x2, y2, float64(depth), col)
	v.branch(c, x2, y2, angle-spread, length*fractalDecay, spread, depth-1, col)
	v.branch(c, x2, y2, angle+spread, length*fractalDecay, spread, depth-1, col)
}

func (v *Abstract) drawShape(c render.Canvas, kind shapeKind, x, y, size, rot float64, col color.RGBA) {
	switch kind {
	case shapeCircle:
		c.StrokeCircle(x, y, size, 2, col)
	case shapeLine:
		dx, dy := math.Cos(rot)*size, math.Sin(rot)*size
		c.Line(x-dx, y-dy, x+dx, y+dy, 2, col)
	case shapeSquare:
		v.drawPolygon(c, x, y, size, rot+math.Pi/4, 4, col)
	default:
		v.drawPolygon(c, x, y, size, rot-math.Pi/2, 3, col)
	}
}

func (v *Abstract) drawPolygon(c render.Canvas, x, y, size, rot float64, sides int, col color.RGBA) {
	step := 2 * math.Pi / float64(sides)
	px := x + math.Cos(rot)*size
	py := y + math.Sin(rot)*size
	for i := 1; i <= sides; i++ {
		a := rot + float64(i)*step
		nx := x + math.Cos(a)*size
		ny := y + math.Sin(a)*size
		c.Line(px, py, nx, ny, 2, col)
		px, py = nx, ny
	}
}

func (v *Abstract) spawnFragments(pal []color.RGBA, cx, cy, minDim float64) {
	for i := 0; i < fragmentsPerHit; i++ {
		angle := float64(i)*2*math.Pi/fragmentsPerHit + v.rng.Float64()*0.3
		dist := minDim * (0.2 + v.rng.Float64()*0.2)
		v.fragments = append(v.fragments, fragment{
			kind: shapeKind(v.rng.Intn(4)),
			x:    cx + math.Cos(angle)*dist,
			y:    cy + math.Sin(angle)*dist,
			size: minDim * (0.01 + v.rng.Float64()*0.025),
			rot:  v.rng.Float64() * 2 * math.Pi,
			col:  pal[v.rng.Intn(len(pal))],
		})
	}
}

func (v *Abstract) updateFragments(c render.Canvas) {
	alive := v.fragments[:0]
	for _, fr := range v.fragments {
		fr.age++
		if fr.age >= fragmentLife {
			continue
		}
		fr.rot += 0.1
		a := 1 - float64(fr.age)/fragmentLife
		v.drawShape(c, fr.kind, fr.x, fr.y, fr.size*(1+a), fr.rot, withAlpha(fr.col, a))
		alive = append(alive, fr)
	}
	v.fragments = alive
}

func (v *Abstract) Destroy() {
	v.fragments = nil
}
