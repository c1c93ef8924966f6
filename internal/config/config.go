package config

// Mode selects which visualizer renders each frame.
type Mode int

const (
	ModeSpectrum Mode = iota
	ModeParticle
	ModeWaveform
	ModeCircular
	ModeAbstract
)

// NumModes counts the enumerated visualizations, for cycling.
const NumModes = 5

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode { return (m + 1) % NumModes }

func (m Mode) String() string {
	switch m {
	case ModeSpectrum:
		return "spectrum"
	case ModeParticle:
		return "particle"
	case ModeWaveform:
		return "waveform"
	case ModeCircular:
		return "circular"
	case ModeAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// Quality hints at an optional detail level. It is advisory only; visualizers
// may ignore it.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	default:
		return "medium"
	}
}

// Settings is owned by the host shell and read-only to the core. The core
// never mutates it.
type Settings struct {
	Mode                 Mode
	ColorScheme          string
	Sensitivity          float64
	BeatDetectionEnabled bool
	MirrorEffect         bool
	ParticleCount        int
	Quality              Quality
}

// Default returns the settings used before the user touches anything.
func Default() Settings {
	return Settings{
		Mode:                 ModeSpectrum,
		ColorScheme:          "rainbow",
		Sensitivity:          1.0,
		BeatDetectionEnabled: true,
		MirrorEffect:         false,
		ParticleCount:        80,
		Quality:              QualityMedium,
	}
}

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Analysis tap ring size, in stereo samples.
	VisualRingSize = 8192

	// FFT input size and the resulting usable bin count.
	FFTSize  = 256
	BinCount = FFTSize / 2

	MinSensitivity = 0.1
	MaxSensitivity = 2.0

	MinParticleCount = 20
	MaxParticleCount = 200

	SensitivityStep   = 0.1
	ParticleCountStep = 20
)
