package audio

// BeatOptions tunes the onset detector. The defaults are empirically tuned;
// they are parameters, not invariants.
type BeatOptions struct {
	// BassBins is the number of low-frequency bins averaged per update.
	BassBins int
	// HistorySize is the rolling window length, in updates (~0.7s at 60Hz).
	HistorySize int
	// Threshold is the ratio of bass average to rolling mean that fires a beat.
	Threshold float64
	// MinIntervalMillis debounces consecutive beats.
	MinIntervalMillis int64
}

func (o BeatOptions) withDefaults() BeatOptions {
	if o.BassBins <= 0 {
		o.BassBins = 12
	}
	if o.HistorySize <= 0 {
		o.HistorySize = 43
	}
	if o.Threshold <= 0 {
		o.Threshold = 1.2
	}
	if o.MinIntervalMillis <= 0 {
		o.MinIntervalMillis = 200
	}
	return o
}

// BeatDetector detects sudden rises in bass-band energy relative to a rolling
// average. It is edge-triggered with a debounce: a sustained loud section
// produces at most one trigger per MinIntervalMillis.
type BeatDetector struct {
	opts BeatOptions

	history []float64
	sum     float64
	count   int
	index   int

	lastBeat int64
	fired    bool
}

// NewBeatDetector builds a detector; zero-valued options pick the defaults.
func NewBeatDetector(opts BeatOptions) *BeatDetector {
	opts = opts.withDefaults()
	return &BeatDetector{
		opts:    opts,
		history: make([]float64, opts.HistorySize),
	}
}

// Update pushes the current bass-band average onto the rolling history and
// reports whether an onset fired at nowMillis. With an empty or single-entry
// history the rolling mean equals the sole sample, so the very first update
// never fires.
func (d *BeatDetector) Update(mags []byte, nowMillis int64) bool {
	if len(mags) < 1 {
		return false
	}

	bassBins := d.opts.BassBins
	if bassBins > len(mags) {
		bassBins = len(mags)
	}
	var bassSum float64
	for _, m := range mags[:bassBins] {
		bassSum += float64(m)
	}
	bassAvg := bassSum / float64(bassBins)

	// Push, evicting the oldest entry once the window is full.
	d.sum -= d.history[d.index]
	d.history[d.index] = bassAvg
	d.sum += bassAvg
	d.index = (d.index + 1) % len(d.history)
	if d.count < len(d.history) {
		d.count++
	}
	rollingMean := d.sum / float64(d.count)

	if bassAvg <= rollingMean*d.opts.Threshold {
		return false
	}
	if d.fired && nowMillis-d.lastBeat < d.opts.MinIntervalMillis {
		return false
	}
	d.lastBeat = nowMillis
	d.fired = true
	return true
}
