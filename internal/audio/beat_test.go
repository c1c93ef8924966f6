package audio

import "testing"

func flatMags(n int, v byte) []byte {
	m := make([]byte, n)
	for i := range m {
		m[i] = v
	}
	return m
}

const frameMillis = 17 // ~60Hz

func TestBeatDetector_StepFiresExactlyOnce(t *testing.T) {
	d := NewBeatDetector(BeatOptions{})

	baseline := flatMags(128, 100)
	now := int64(0)
	for i := 0; i < 60; i++ {
		if d.Update(baseline, now) {
			t.Fatalf("beat fired on flat baseline at frame %d", i)
		}
		now += frameMillis
	}

	// Bass steps well above 1.2x the warmed-up rolling mean.
	loud := flatMags(128, 255)
	fires := 0
	firstFire := -1
	for i := 0; i < 5; i++ {
		if d.Update(loud, now) {
			fires++
			if firstFire < 0 {
				firstFire = i
			}
		}
		now += frameMillis
	}
	if fires != 1 {
		t.Fatalf("got %d fires during 5 elevated frames, want exactly 1", fires)
	}
	if firstFire != 0 {
		t.Errorf("beat fired on elevated frame %d, want the first crossing", firstFire)
	}

	// Stays false for at least the debounce interval even with bins elevated.
	for elapsed := int64(0); elapsed < 200-5*frameMillis; elapsed += frameMillis {
		if d.Update(loud, now) {
			t.Fatalf("beat re-fired %dms after the first, inside the debounce window", 5*frameMillis+elapsed)
		}
		now += frameMillis
	}
}

func TestBeatDetector_SustainedLoudRespectsMinInterval(t *testing.T) {
	d := NewBeatDetector(BeatOptions{})

	quiet := flatMags(128, 20)
	loud := flatMags(128, 240)
	now := int64(0)
	lastFire := int64(-1)
	for i := 0; i < 600; i++ {
		// Alternate quiet and loud stretches to keep the rolling mean moving.
		mags := quiet
		if (i/30)%2 == 1 {
			mags = loud
		}
		if d.Update(mags, now) {
			if lastFire >= 0 && now-lastFire < 200 {
				t.Fatalf("two beats %dms apart, want >= 200ms", now-lastFire)
			}
			lastFire = now
		}
		now += frameMillis
	}
	if lastFire < 0 {
		t.Fatal("no beat ever fired over a loud/quiet alternating signal")
	}
}

func TestBeatDetector_FirstUpdateNeverFires(t *testing.T) {
	d := NewBeatDetector(BeatOptions{})
	if d.Update(flatMags(128, 255), 0) {
		t.Error("beat fired on the very first update; single-entry history should equal its own mean")
	}
}

func TestBeatDetector_EmptyMagnitudes(t *testing.T) {
	d := NewBeatDetector(BeatOptions{})
	for i := int64(0); i < 10; i++ {
		if d.Update(nil, i*frameMillis) {
			t.Fatal("beat fired on empty magnitudes")
		}
	}
}

func TestBeatDetector_FewerBinsThanBassBand(t *testing.T) {
	d := NewBeatDetector(BeatOptions{BassBins: 12})
	// 4 bins: the bass band clamps to the available width instead of reading
	// out of range.
	mags := flatMags(4, 200)
	for i := int64(0); i < 50; i++ {
		d.Update(mags, i*frameMillis)
	}
}
