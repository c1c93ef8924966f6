package audio

import (
	"log/slog"
	"math"
	"math/cmplx"

	"github.com/auraviz/auraviz/internal/config"
)

// Frame is an immutable per-tick snapshot of the analysis state. Both slices
// have the same fixed length for the lifetime of one extractor configuration
// and are never mutated after Tick returns them.
type Frame struct {
	// FrequencyMagnitudes holds one byte-scale magnitude per analysis bin.
	FrequencyMagnitudes []byte
	// TimeDomainSamples holds byte-scale amplitude samples; 128 is silence.
	TimeDomainSamples []byte
	// Volume is the RMS loudness in [0,1].
	Volume float64
	// BeatTriggered is true only on the single tick where an onset fired.
	BeatTriggered bool
}

// ExtractorOptions configures the analysis transform.
type ExtractorOptions struct {
	// FFTSize is the transform input size; must be a power of two. The frame
	// carries FFTSize/2 usable bins.
	FFTSize int
	// Smoothing blends each bin toward its previous value for bin-to-bin
	// continuity across frames, in [0,1).
	Smoothing float64
	// MinDB and MaxDB bound the decibel range mapped onto the byte scale.
	MinDB, MaxDB float64
	Beat         BeatOptions
}

func (o ExtractorOptions) withDefaults() ExtractorOptions {
	if o.FFTSize <= 0 {
		o.FFTSize = config.FFTSize
	}
	if o.Smoothing <= 0 {
		o.Smoothing = 0.8
	}
	if o.MinDB == 0 && o.MaxDB == 0 {
		o.MinDB, o.MaxDB = -90, -10
	}
	return o
}

// Extractor owns the analysis tap and produces one Frame per tick. A failed
// Initialize leaves it inert: every subsequent Tick returns a zero-valued
// frame and nothing ever panics out of the render loop.
type Extractor struct {
	opts ExtractorOptions
	log  *slog.Logger

	tap  *Tap
	beat *BeatDetector

	window   []float64
	monoBuf  []float64
	fftIn    []complex128
	smoothed []float64

	inert  bool
	paused bool
	last   Frame
}

// NewExtractor builds an extractor; Initialize binds it to a tap.
func NewExtractor(opts ExtractorOptions, logger *slog.Logger) *Extractor {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	bins := opts.FFTSize / 2
	e := &Extractor{
		opts:     opts,
		log:      logger,
		beat:     NewBeatDetector(opts.Beat),
		window:   hannWindow(opts.FFTSize),
		monoBuf:  make([]float64, opts.FFTSize),
		fftIn:    make([]complex128, opts.FFTSize),
		smoothed: make([]float64, bins),
	}
	e.last = e.zeroFrame()
	return e
}

// Initialize binds the extractor to the audio source's analysis tap. A nil
// tap is an unsupported environment: the extractor logs once and goes inert.
func (e *Extractor) Initialize(tap *Tap) {
	if tap == nil {
		e.log.Warn("analysis tap unavailable, extractor inert",
			"fft_size", e.opts.FFTSize)
		e.inert = true
		e.tap = nil
		return
	}
	e.inert = false
	e.tap = tap
	for i := range e.smoothed {
		e.smoothed[i] = 0
	}
}

// Tick pulls the current spectrum and time-domain buffer from the tap and
// assembles a Frame. When beat detection is disabled the detector's history
// still advances, so re-enabling it mid-track cannot produce a spurious
// first-beat false positive.
func (e *Extractor) Tick(nowMillis int64, s config.Settings) Frame {
	if e.paused {
		return e.last
	}
	if e.inert || e.tap == nil {
		e.last = e.zeroFrame()
		return e.last
	}

	e.tap.SnapshotMono(e.monoBuf)

	bins := e.opts.FFTSize / 2
	freq := make([]byte, bins)
	timeDomain := make([]byte, bins)

	// Time-domain bytes come from the tail of the snapshot: 128 is silence,
	// 0 and 255 are full negative and positive swing.
	tail := e.monoBuf[len(e.monoBuf)-bins:]
	for i, v := range tail {
		timeDomain[i] = amplitudeByte(v)
	}

	for i, v := range e.monoBuf {
		e.fftIn[i] = complex(v*e.window[i], 0)
	}
	spectrum := fft(e.fftIn)
	dbRange := e.opts.MaxDB - e.opts.MinDB
	for i := 0; i < bins; i++ {
		mag := cmplx.Abs(spectrum[i]) / float64(e.opts.FFTSize)
		e.smoothed[i] = e.opts.Smoothing*e.smoothed[i] + (1-e.opts.Smoothing)*mag
		db := -180.0
		if e.smoothed[i] > 0 {
			db = 20 * math.Log10(e.smoothed[i])
		}
		freq[i] = byte(255 * clampUnit((db-e.opts.MinDB)/dbRange))
	}

	fired := e.beat.Update(freq, nowMillis)

	e.last = Frame{
		FrequencyMagnitudes: freq,
		TimeDomainSamples:   timeDomain,
		Volume:              rmsVolume(timeDomain),
		BeatTriggered:       fired && s.BeatDetectionEnabled,
	}
	return e.last
}

// Last returns the most recently produced frame without advancing anything.
func (e *Extractor) Last() Frame { return e.last }

// Pause stops frame production; the tap stays allocated.
func (e *Extractor) Pause() { e.paused = true }

// Resume restarts frame production after Pause.
func (e *Extractor) Resume() { e.paused = false }

// Destroy releases the tap. Idempotent; subsequent ticks yield zero frames.
func (e *Extractor) Destroy() {
	e.tap = nil
	e.inert = true
}

func (e *Extractor) zeroFrame() Frame {
	bins := e.opts.FFTSize / 2
	return Frame{
		FrequencyMagnitudes: make([]byte, bins),
		TimeDomainSamples:   make([]byte, bins),
	}
}

// rmsVolume estimates loudness from byte-scale time-domain samples,
// normalized so a constant buffer of 128 reads as silence.
func rmsVolume(samples []byte) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, b := range samples {
		v := float64(b)/128 - 1
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func amplitudeByte(v float64) byte {
	b := 128 * (1 + v)
	if b < 0 {
		return 0
	}
	if b > 255 {
		return 255
	}
	return byte(b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
