package viz

import (
	"math/rand"
	"testing"

	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/render"
)

// Bar heights must be monotonic in sensitivity for identical input, before
// any surface-height clamping.
func TestSpectrum_HeightsMonotonicInSensitivity(t *testing.T) {
	low := NewSpectrum(rand.New(rand.NewSource(1)))
	high := NewSpectrum(rand.New(rand.NewSource(1)))
	low.Resize(800, 600)
	high.Resize(800, 600)

	sLow := config.Default()
	sLow.Sensitivity = 1.0
	sHigh := sLow
	sHigh.Sensitivity = 2.0

	f := liveFrame(false)
	for i := 0; i < 5; i++ {
		low.Render(render.NewRecorder(800, 600), f, sLow)
		high.Render(render.NewRecorder(800, 600), f, sHigh)
	}

	if len(low.smoothed) == 0 || len(low.smoothed) != len(high.smoothed) {
		t.Fatalf("band counts diverged: %d vs %d", len(low.smoothed), len(high.smoothed))
	}
	for i := range low.smoothed {
		// Smoothing is sensitivity-independent, so the smoothed values match
		// and only the height mapping differs.
		hl := low.barHeight(low.smoothed[i], sLow.Sensitivity)
		hh := high.barHeight(high.smoothed[i], sHigh.Sensitivity)
		if hh < hl {
			t.Fatalf("band %d: height %v at sensitivity 2.0 < height %v at 1.0", i, hh, hl)
		}
	}
}

func TestSpectrum_SmoothingConverges(t *testing.T) {
	v := NewSpectrum(rand.New(rand.NewSource(1)))
	v.Resize(800, 600)
	s := config.Default()

	f := zeroFrame()
	for i := range f.FrequencyMagnitudes {
		f.FrequencyMagnitudes[i] = 200
	}
	for i := 0; i < 60; i++ {
		v.Render(render.NewRecorder(800, 600), f, s)
	}
	for i, sm := range v.smoothed {
		if sm < 195 || sm > 200 {
			t.Fatalf("band %d smoothed to %v after 60 frames of constant 200", i, sm)
		}
	}
}

func TestSpectrum_BeatScatterDecays(t *testing.T) {
	v := NewSpectrum(rand.New(rand.NewSource(1)))
	v.Resize(800, 600)
	s := config.Default()

	v.Render(render.NewRecorder(800, 600), liveFrame(true), s)
	if len(v.sparks) == 0 {
		t.Fatal("no sparks spawned on a beat frame")
	}
	for i := 0; i < sparkLife+1; i++ {
		v.Render(render.NewRecorder(800, 600), zeroFrame(), s)
	}
	if len(v.sparks) != 0 {
		t.Fatalf("%d sparks still alive after their lifetime", len(v.sparks))
	}
}
