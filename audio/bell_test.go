package audio

import (
	"context"
	"sync"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEnabled, "true")
	t.Setenv(EnvVolume, "150")
	t.Setenv(EnvSampleRate, "22050")

	cfg := ApplyEnv(DefaultConfig())
	if !cfg.Enabled {
		t.Error("Enabled not applied")
	}
	if cfg.MasterVolume != 1.0 {
		t.Errorf("MasterVolume = %f, want clamp to 1.0", cfg.MasterVolume)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
}

func TestApplyEnvMalformed(t *testing.T) {
	t.Setenv(EnvEnabled, "maybe")
	t.Setenv(EnvVolume, "loud")
	t.Setenv(EnvSampleRate, "-1")

	cfg := ApplyEnv(DefaultConfig())
	def := DefaultConfig()
	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume || cfg.SampleRate != def.SampleRate {
		t.Errorf("malformed env changed config: %+v", cfg)
	}
}

func TestConfigVolume(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Volume(SoundReject); got != 0.3 {
		t.Errorf("reject volume = %f", got)
	}
	cfg.Volumes = nil
	if got := cfg.Volume(SoundOpen); got != cfg.MasterVolume {
		t.Errorf("missing volume = %f", got)
	}
}

func TestParseSound(t *testing.T) {
	for s := range soundCount {
		got, ok := ParseSound(s.String())
		if !ok || got != s {
			t.Errorf("ParseSound(%q) = %v, %v", s, got, ok)
		}
	}
	if _, ok := ParseSound("siren"); ok {
		t.Error("unknown name parsed")
	}
}

func TestBellPlays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.SampleRate = 8000

	var mu sync.Mutex
	var sizes []int
	b := NewBellWith(cfg, func(_ context.Context, pcm []byte) error {
		mu.Lock()
		sizes = append(sizes, len(pcm))
		mu.Unlock()
		return nil
	})
	b.Ring(SoundReject)
	b.Close()

	played, _ := b.Stats()
	if played != 1 || len(sizes) != 1 || sizes[0] == 0 {
		t.Errorf("played = %d, sizes = %v", played, sizes)
	}

	// closed bell ignores rings
	b.Ring(SoundReject)
	if played, _ := b.Stats(); played != 1 {
		t.Errorf("closed bell played %d", played)
	}
}

func TestBellDropsWhenBusy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.SampleRate = 8000

	release := make(chan struct{})
	b := NewBellWith(cfg, func(ctx context.Context, _ []byte) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})
	for range maxPlaying + 3 {
		b.Ring(SoundConfirm)
	}
	close(release)
	b.Close()

	played, dropped := b.Stats()
	if played != maxPlaying || dropped != 3 {
		t.Errorf("played=%d dropped=%d", played, dropped)
	}
}

func TestSilentBell(t *testing.T) {
	b := NewBell(DefaultConfig())
	if !b.Silent() {
		t.Error("disabled config produced an audible bell")
	}
	b.Ring(SoundOpen)
	b.Close()

	var nilBell *Bell
	nilBell.Ring(SoundOpen)
	nilBell.Close()
}
