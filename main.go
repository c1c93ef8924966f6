package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/auraviz/auraviz/internal/audio"
	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/palette"
	"github.com/auraviz/auraviz/internal/render"
	"github.com/auraviz/auraviz/internal/viz"
)

type game struct {
	log *slog.Logger

	// audio
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *audio.Tap
	extractor   *audio.Extractor

	// visuals
	engine   *viz.Engine
	settings config.Settings
	frame    audio.Frame

	// playback position
	audioDuration time.Duration
	audioPosition time.Duration

	// input edge detection
	prevKey map[ebiten.Key]bool

	// state
	start    time.Time
	paused   bool
	initDone bool
	lastErr  error
}

func newGame(logger *slog.Logger) *game {
	g := &game{
		log:       logger,
		extractor: audio.NewExtractor(audio.ExtractorOptions{}, logger),
		engine:    viz.NewEngine(nil, logger),
		settings:  config.Default(),
		prevKey:   map[ebiten.Key]bool{},
		start:     time.Now(),
	}
	// Nothing is loaded yet; the unbound extractor yields zero frames so the
	// visuals can idle.
	g.frame = g.extractor.Last()
	return g
}

func (g *game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	modeKeys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}
	for i, k := range modeKeys {
		if justPressed(k) {
			g.settings.Mode = config.Mode(i)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.settings.Mode = g.settings.Mode.Next()
	}
	if justPressed(ebiten.KeyC) {
		g.settings.ColorScheme = nextScheme(g.settings.ColorScheme)
	}
	if justPressed(ebiten.KeyUp) {
		g.settings.Sensitivity = clampF(g.settings.Sensitivity+config.SensitivityStep,
			config.MinSensitivity, config.MaxSensitivity)
	}
	if justPressed(ebiten.KeyDown) {
		g.settings.Sensitivity = clampF(g.settings.Sensitivity-config.SensitivityStep,
			config.MinSensitivity, config.MaxSensitivity)
	}
	if justPressed(ebiten.KeyB) {
		g.settings.BeatDetectionEnabled = !g.settings.BeatDetectionEnabled
	}
	if justPressed(ebiten.KeyM) {
		g.settings.MirrorEffect = !g.settings.MirrorEffect
	}
	if justPressed(ebiten.KeyRight) {
		g.settings.ParticleCount = clampI(g.settings.ParticleCount+config.ParticleCountStep,
			config.MinParticleCount, config.MaxParticleCount)
	}
	if justPressed(ebiten.KeyLeft) {
		g.settings.ParticleCount = clampI(g.settings.ParticleCount-config.ParticleCountStep,
			config.MinParticleCount, config.MaxParticleCount)
	}
	if justPressed(ebiten.KeyK) {
		g.settings.Quality = (g.settings.Quality + 1) % 3
	}
	if justPressed(ebiten.KeyO) {
		if err := g.openAndPlayFileDialog(); err != nil {
			g.lastErr = err
			g.log.Error("open file failed", "err", err)
		}
	}
	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// Feature extraction tick. While paused the extractor holds its last
	// frame, so the renderer keeps receiving something to draw.
	g.frame = g.extractor.Tick(time.Since(g.start).Milliseconds(), g.settings)
	g.updateAudioPosition()

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.engine.Tick(render.NewScreen(screen), g.frame, g.settings)
	ebitenutil.DebugPrintAt(screen, g.statusLine(), 12, 12)
	ebitenutil.DebugPrintAt(screen,
		"1-5/click: mode  C: colors  Up/Down: sensitivity  Left/Right: particles  B: beat  M: mirror  O: open  Space: pause  Q: quit",
		12, 28)
}

func (g *game) statusLine() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] scheme=%s sens=%.1f particles=%d",
		g.settings.Mode, g.settings.ColorScheme, g.settings.Sensitivity, g.settings.ParticleCount)
	if g.settings.BeatDetectionEnabled {
		b.WriteString(" beat")
	}
	if g.settings.MirrorEffect {
		b.WriteString(" mirror")
	}
	switch {
	case g.ctrl == nil:
		b.WriteString(" | press O to open an audio file")
	case g.paused:
		fmt.Fprintf(&b, " | paused %s / %s", formatDuration(g.audioPosition), formatDuration(g.audioDuration))
	default:
		fmt.Fprintf(&b, " | playing %s / %s", formatDuration(g.audioPosition), formatDuration(g.audioDuration))
	}
	if g.lastErr != nil {
		b.WriteString(" | error: " + g.lastErr.Error())
	}
	return b.String()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Redundant calls with identical dimensions are expected; the engine
	// absorbs them.
	scale := ebiten.DeviceScaleFactor()
	g.engine.Resize(float64(outsideWidth), float64(outsideHeight), scale)
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

func (g *game) togglePause() {
	if g.ctrl == nil {
		return
	}
	g.paused = !g.paused
	speaker.Lock()
	g.ctrl.Paused = g.paused
	speaker.Unlock()
	if g.paused {
		g.extractor.Pause()
	} else {
		g.extractor.Resume()
	}
}

func (g *game) updateAudioPosition() {
	if g.streamer == nil || g.paused {
		return
	}
	g.audioPosition += time.Second / 60
	if g.audioPosition > g.audioDuration {
		g.audioPosition = g.audioDuration
	}
}

func (g *game) openAndPlayFileDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.loadAndPlay(filename)
}

func (g *game) loadAndPlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	// Audio chain: streamer -> tap -> ctrl. The tap feeds the extractor.
	tap := audio.NewTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !g.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("speaker init: %w", err)
		}
		g.initDone = true
	case g.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			speaker.Unlock()
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("speaker re-init: %w", err)
		}
		speaker.Unlock()
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}

	g.closeCurrent()
	g.currentFile = f
	g.streamer = streamer
	g.format = format
	g.ctrl = ctrl
	g.tap = tap
	g.paused = false

	g.extractor.Initialize(tap)
	g.extractor.Resume()

	g.audioDuration = time.Duration(streamer.Len()) * time.Second / time.Duration(format.SampleRate.N(time.Second))
	g.audioPosition = 0

	g.log.Info("playing", "file", filepath.Base(path),
		"sample_rate", int(format.SampleRate), "duration", g.audioDuration.Round(time.Second))

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		g.log.Info("track finished", "file", filepath.Base(path))
	})))

	return nil
}

func (g *game) closeCurrent() {
	if g.streamer != nil {
		_ = g.streamer.Close()
		g.streamer = nil
	}
	if g.currentFile != nil {
		_ = g.currentFile.Close()
		g.currentFile = nil
	}
}

func nextScheme(current string) string {
	names := palette.Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// formatDuration formats a duration as MM:SS.
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("auraviz")

	g := newGame(logger)
	if len(os.Args) > 1 {
		if err := g.loadAndPlay(os.Args[1]); err != nil {
			g.lastErr = err
			logger.Error("load failed", "path", os.Args[1], "err", err)
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
	g.engine.Destroy()
	g.extractor.Destroy()
	g.closeCurrent()
}
