package viz

import (
	"log/slog"
	"math/rand"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/render"
)

// Engine owns the single active visualizer and dispatches one render call per
// display frame. Switching mode is a hard boundary: the old visualizer is
// fully destroyed before the new one is constructed.
type Engine struct {
	log     *slog.Logger
	rng     *rand.Rand
	factory func(config.Mode, *rand.Rand) Visualizer

	active   Visualizer
	mode     config.Mode
	hasMode  bool
	w, h     float64
	scale    float64
	settings config.Settings
}

// NewEngine builds an engine with no active visualizer; the first Tick or
// SelectMode activates one.
func NewEngine(rng *rand.Rand, logger *slog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		log:      logger,
		rng:      rng,
		factory:  New,
		scale:    1,
		settings: config.Default(),
	}
}

// SelectMode tears down the active visualizer, constructs the variant for
// mode, configures it with the current settings and replays the last known
// dimensions. Reselecting the current mode rebuilds it from scratch.
func (e *Engine) SelectMode(mode config.Mode) {
	if e.active != nil {
		e.active.Destroy()
		e.active = nil
	}
	e.active = e.factory(mode, e.rng)
	e.mode = mode
	e.hasMode = true
	e.active.Configure(e.settings)
	e.active.Resize(e.w*e.scale, e.h*e.scale)
	e.log.Debug("visualizer selected", "mode", mode.String())
}

// Resize records the logical dimensions and device scale and forwards the
// resulting pixel dimensions. Redundant calls with identical dimensions are
// harmless.
func (e *Engine) Resize(w, h, deviceScale float64) {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	e.w, e.h, e.scale = w, h, deviceScale
	if e.active != nil {
		e.active.Resize(w*deviceScale, h*deviceScale)
	}
}

// Tick forwards the latest frame and settings to the active visualizer,
// switching visualizers first if the settings selected a different mode.
// Surface preparation (clear vs. fractional fade) is each visualizer's own
// business.
func (e *Engine) Tick(c render.Canvas, f audio.Frame, s config.Settings) {
	if s.ParticleCount != e.settings.ParticleCount || s.ColorScheme != e.settings.ColorScheme {
		if e.active != nil {
			e.active.Configure(s)
		}
	}
	e.settings = s
	if !e.hasMode || s.Mode != e.mode {
		e.SelectMode(s.Mode)
	}
	e.active.Render(c, f, s)
}

// Destroy tears down the active visualizer.
func (e *Engine) Destroy() {
	if e.active != nil {
		e.active.Destroy()
		e.active = nil
	}
	e.hasMode = false
}
