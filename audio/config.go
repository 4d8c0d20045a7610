package audio

import (
	"os"
	"strconv"
)

// Environment overrides
const (
	EnvEnabled    = "FLEXTERM_AUDIO_ENABLED"
	EnvVolume     = "FLEXTERM_AUDIO_VOLUME" // 0-100
	EnvSampleRate = "FLEXTERM_AUDIO_SAMPLE_RATE"
)

// Config controls the feedback bell
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
	Volumes      map[Sound]float64
}

// DefaultConfig is disabled; terminals are quiet unless asked otherwise
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		MasterVolume: 0.5,
		SampleRate:   44100,
		Volumes: map[Sound]float64{
			SoundReject:  0.6,
			SoundOpen:    0.8,
			SoundConfirm: 0.8,
		},
	}
}

// Volume returns the effective volume for a sound
func (c Config) Volume(s Sound) float64 {
	v, ok := c.Volumes[s]
	if !ok {
		v = 1.0
	}
	return clamp01(v * c.MasterVolume)
}

// ApplyEnv overrides cfg from environment variables; malformed values are ignored
func ApplyEnv(cfg Config) Config {
	if enabled := os.Getenv(EnvEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume (0-100 converted to 0.0-1.0)
	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
	return cfg
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
