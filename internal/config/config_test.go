package config

import "testing"

func TestModeNextWrapsAround(t *testing.T) {
	m := ModeSpectrum
	seen := map[Mode]bool{}
	for i := 0; i < NumModes; i++ {
		if seen[m] {
			t.Fatalf("mode %v repeated before the cycle completed", m)
		}
		seen[m] = true
		m = m.Next()
	}
	if m != ModeSpectrum {
		t.Fatalf("after %d steps got %v, want wrap back to spectrum", NumModes, m)
	}
}

func TestModeStrings(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeSpectrum, "spectrum"},
		{ModeParticle, "particle"},
		{ModeWaveform, "waveform"},
		{ModeCircular, "circular"},
		{ModeAbstract, "abstract"},
		{Mode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestDefaultWithinBounds(t *testing.T) {
	s := Default()
	if s.Sensitivity < MinSensitivity || s.Sensitivity > MaxSensitivity {
		t.Errorf("default sensitivity %v outside [%v, %v]", s.Sensitivity, MinSensitivity, MaxSensitivity)
	}
	if s.ParticleCount < MinParticleCount || s.ParticleCount > MaxParticleCount {
		t.Errorf("default particle count %d outside [%d, %d]", s.ParticleCount, MinParticleCount, MaxParticleCount)
	}
}
