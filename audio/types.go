package audio

import (
	"errors"
)

// Sound identifies a feedback sound
type Sound int

const (
	SoundReject  Sound = iota // key nothing handled
	SoundOpen                 // dialog opened
	SoundConfirm              // dialog confirmed
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundReject:
		return "reject"
	case SoundOpen:
		return "open"
	case SoundConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ParseSound maps a sound name back to its Sound
func ParseSound(name string) (Sound, bool) {
	for s := range soundCount {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
)

// BackendConfig describes a CLI audio backend reading raw s16le stereo on stdin
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrUnknownSound   = errors.New("unknown sound")
)
