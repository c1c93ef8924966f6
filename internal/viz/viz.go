// Package viz holds the five rendering modes and the engine that dispatches
// one render call per display frame to the active one.
package viz

import (
	"image/color"
	"math/rand"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/render"
)

// Visualizer is the capability contract shared by all modes. Render is called
// at most once per display frame; all persisted state is owned exclusively by
// the instance. Configure must be idempotent and Resize must be safe before
// any Render, including with zero dimensions.
type Visualizer interface {
	Configure(s config.Settings)
	Resize(w, h float64)
	Render(c render.Canvas, f audio.Frame, s config.Settings)
	Destroy()
}

// New builds the visualizer for mode. rng seeds any stochastic state so tests
// can supply a deterministic sequence.
func New(mode config.Mode, rng *rand.Rand) Visualizer {
	switch mode {
	case config.ModeParticle:
		return NewParticle(rng)
	case config.ModeWaveform:
		return NewWaveform()
	case config.ModeCircular:
		return NewCircular()
	case config.ModeAbstract:
		return NewAbstract(rng)
	default:
		return NewSpectrum(rng)
	}
}

// surface tracks the drawing area shared by every variant. Zero-area resizes
// are remembered but rendering stays deferred until a non-zero one arrives.
type surface struct {
	w, h float64
}

func (s *surface) Resize(w, h float64) {
	s.w, s.h = w, h
}

func (s *surface) ready() bool { return s.w > 0 && s.h > 0 }

// intensity maps a byte-scale magnitude to [0,1].
func intensity(b byte) float64 { return float64(b) / 255 }

// bandAverage averages mags over [start, end), clamped to the slice. The band
// width is always at least one bin.
func bandAverage(mags []byte, start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(mags) {
		end = len(mags)
	}
	if end <= start {
		if start >= len(mags) {
			return 0
		}
		end = start + 1
	}
	var sum float64
	for _, m := range mags[start:end] {
		sum += float64(m)
	}
	return sum / float64(end-start)
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a * 255)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
