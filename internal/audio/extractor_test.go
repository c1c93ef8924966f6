package audio

import (
	"math"
	"testing"

	"github.com/auraviz/auraviz/internal/config"
)

func TestRMSVolume(t *testing.T) {
	constant := make([]byte, 128)
	for i := range constant {
		constant[i] = 128
	}
	if got := rmsVolume(constant); got != 0 {
		t.Errorf("rms of constant 128 buffer = %v, want 0", got)
	}

	alternating := make([]byte, 128)
	for i := range alternating {
		if i%2 == 0 {
			alternating[i] = 0
		} else {
			alternating[i] = 255
		}
	}
	if got := rmsVolume(alternating); got < 0.95 || got > 1.0 {
		t.Errorf("rms of alternating 0/255 buffer = %v, want close to 1", got)
	}

	if got := rmsVolume(nil); got != 0 {
		t.Errorf("rms of empty buffer = %v, want 0", got)
	}
}

func TestExtractor_InertOnNilTap(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(nil)

	s := config.Default()
	for i := int64(0); i < 5; i++ {
		f := e.Tick(i*frameMillis, s)
		if len(f.FrequencyMagnitudes) != config.BinCount || len(f.TimeDomainSamples) != config.BinCount {
			t.Fatalf("inert frame has lengths %d/%d, want %d",
				len(f.FrequencyMagnitudes), len(f.TimeDomainSamples), config.BinCount)
		}
		if f.Volume != 0 || f.BeatTriggered {
			t.Fatalf("inert frame not zero-valued: %+v", f)
		}
		for _, b := range f.FrequencyMagnitudes {
			if b != 0 {
				t.Fatal("inert frame carries non-zero magnitudes")
			}
		}
	}
}

// sineStreamer produces a fixed-frequency sine so the tap has real content.
type sineStreamer struct {
	phase float64
	step  float64
	amp   float64
}

func (s *sineStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := s.amp * math.Sin(s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.step
	}
	return len(samples), true
}

func (s *sineStreamer) Err() error { return nil }

func newFilledTap(t *testing.T, amp float64) *Tap {
	t.Helper()
	tap := NewTap(&sineStreamer{step: 2 * math.Pi * 440 / 44100, amp: amp}, config.VisualRingSize)
	buf := make([][2]float64, 512)
	for i := 0; i < 4; i++ {
		if n, ok := tap.Stream(buf); n != len(buf) || !ok {
			t.Fatalf("tap.Stream returned (%d, %v)", n, ok)
		}
	}
	return tap
}

func TestExtractor_TickProducesFrames(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(newFilledTap(t, 0.8))

	s := config.Default()
	f := e.Tick(0, s)
	if len(f.FrequencyMagnitudes) != config.BinCount || len(f.TimeDomainSamples) != config.BinCount {
		t.Fatalf("frame lengths %d/%d, want %d",
			len(f.FrequencyMagnitudes), len(f.TimeDomainSamples), config.BinCount)
	}
	if f.Volume <= 0 {
		t.Errorf("volume = %v for a loud sine, want > 0", f.Volume)
	}
	var nonZero bool
	for _, b := range f.FrequencyMagnitudes {
		if b != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("all magnitude bins zero for a loud sine")
	}
}

func TestExtractor_SilenceIsQuiet(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(newFilledTap(t, 0))

	f := e.Tick(0, config.Default())
	if f.Volume > 0.01 {
		t.Errorf("volume = %v for silence, want ~0", f.Volume)
	}
	for _, b := range f.TimeDomainSamples {
		if b != 128 {
			t.Fatalf("silent time-domain byte = %d, want 128", b)
		}
	}
	if f.BeatTriggered {
		t.Error("beat triggered on silence")
	}
}

func TestExtractor_BeatDisabledNeverTriggers(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(newFilledTap(t, 0.9))

	s := config.Default()
	s.BeatDetectionEnabled = false
	for i := int64(0); i < 120; i++ {
		if f := e.Tick(i*frameMillis, s); f.BeatTriggered {
			t.Fatal("beat triggered while detection disabled")
		}
	}
}

func TestExtractor_PauseHoldsLastFrame(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(newFilledTap(t, 0.5))

	s := config.Default()
	first := e.Tick(0, s)
	e.Pause()
	held := e.Tick(frameMillis, s)
	if &held.FrequencyMagnitudes[0] != &first.FrequencyMagnitudes[0] {
		t.Error("paused tick produced a new frame instead of holding the last one")
	}
	e.Resume()
	e.Tick(2*frameMillis, s)
}

func TestExtractor_DestroyIdempotent(t *testing.T) {
	e := NewExtractor(ExtractorOptions{}, nil)
	e.Initialize(newFilledTap(t, 0.5))
	e.Destroy()
	e.Destroy()

	f := e.Tick(0, config.Default())
	if f.Volume != 0 || f.BeatTriggered {
		t.Errorf("tick after destroy not zero-valued: %+v", f)
	}
}
