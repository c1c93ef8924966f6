package viz

import (
	"math/rand"
	"testing"

	"github.com/auraviz/auraviz/internal/config"
	"github.com/auraviz/auraviz/internal/render"
)

func TestParticle_PoolTracksParticleCount(t *testing.T) {
	v := NewParticle(rand.New(rand.NewSource(3)))
	s := config.Default()

	s.ParticleCount = 150
	v.Configure(s)
	if len(v.pool) != 150 {
		t.Fatalf("pool size %d after Configure, want 150", len(v.pool))
	}

	s.ParticleCount = 40
	v.Configure(s)
	if len(v.pool) != 40 {
		t.Fatalf("pool size %d after shrinking Configure, want 40", len(v.pool))
	}

	// Render also re-syncs, so a settings change without Configure still
	// lands by the next frame.
	s.ParticleCount = 90
	v.Resize(640, 480)
	v.Render(render.NewRecorder(640, 480), liveFrame(false), s)
	if len(v.pool) != 90 {
		t.Fatalf("pool size %d after Render, want 90", len(v.pool))
	}
}

func TestParticle_GrowKeepsExistingParticles(t *testing.T) {
	v := NewParticle(rand.New(rand.NewSource(3)))
	v.Resize(640, 480)

	s := config.Default()
	s.ParticleCount = 20
	v.Configure(s)
	before := make([]particle, len(v.pool))
	copy(before, v.pool)

	s.ParticleCount = 60
	v.Configure(s)
	for i := range before {
		if v.pool[i] != before[i] {
			t.Fatalf("particle %d was reseeded by a grow-only Configure", i)
		}
	}
}

func TestParticle_RespawnReusesSlot(t *testing.T) {
	v := NewParticle(rand.New(rand.NewSource(3)))
	v.Resize(640, 480)

	s := config.Default()
	s.ParticleCount = 30
	v.Configure(s)

	// Force one particle to expire on the next render.
	v.pool[5].life = 1
	v.Render(render.NewRecorder(640, 480), liveFrame(false), s)
	if len(v.pool) != 30 {
		t.Fatalf("pool size changed across a respawn: %d", len(v.pool))
	}
	if v.pool[5].life <= 0 {
		t.Error("expired particle was not reseeded in place")
	}
}

func TestParticle_StaysInBounds(t *testing.T) {
	v := NewParticle(rand.New(rand.NewSource(9)))
	v.Resize(320, 240)

	s := config.Default()
	s.Sensitivity = 2.0
	v.Configure(s)

	rec := render.NewRecorder(320, 240)
	for i := 0; i < 300; i++ {
		v.Render(rec, liveFrame(i%60 == 0), s)
		rec.Reset()
	}
	for i, p := range v.pool {
		if p.x < 0 || p.x > 320 || p.y < 0 || p.y > 240 {
			t.Fatalf("particle %d escaped the surface: (%v, %v)", i, p.x, p.y)
		}
	}
}
