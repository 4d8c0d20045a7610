package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	rejectDuration = 80 * time.Millisecond
	rejectAttack   = 5 * time.Millisecond
	rejectRelease  = 20 * time.Millisecond

	openDuration        = 240 * time.Millisecond
	openAttack          = 5 * time.Millisecond
	openFundRelease     = 200 * time.Millisecond
	openOvertoneRelease = 90 * time.Millisecond

	confirmNote1    = 70 * time.Millisecond
	confirmNote2    = 160 * time.Millisecond
	confirmAttack   = 5 * time.Millisecond
	confirmRelease1 = 30 * time.Millisecond
	confirmRelease2 = 120 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; log2(0) is -Inf so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer builds the streamer for a sound at its configured volume
func Streamer(s Sound, cfg Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	var st beep.Streamer

	switch s {
	case SoundReject:
		// short low buzz
		osc := NewOscillator(110.0, rejectDuration, WaveSaw, rate)
		st = NewEnvelope(osc, rejectDuration, rejectAttack, rejectRelease, rate)
	case SoundOpen:
		// A5 with an octave overtone
		fund := NewOscillator(880.0, openDuration, WaveSine, rate)
		over := NewOscillator(1760.0, openDuration, WaveSine, rate)
		st = beep.Take(rate.N(openDuration), beep.Mix(
			newVolume(NewEnvelope(fund, openDuration, openAttack, openFundRelease, rate), 0.7),
			newVolume(NewEnvelope(over, openDuration, openAttack, openOvertoneRelease, rate), 0.3),
		))
	case SoundConfirm:
		// B5 then E6
		n1 := NewOscillator(987.77, confirmNote1, WaveSquare, rate)
		n2 := NewOscillator(1318.51, confirmNote2, WaveSquare, rate)
		st = beep.Seq(
			NewEnvelope(n1, confirmNote1, confirmAttack, confirmRelease1, rate),
			NewEnvelope(n2, confirmNote2, confirmAttack, confirmRelease2, rate),
		)
	default:
		return nil, fmt.Errorf("sound %d: %w", s, ErrUnknownSound)
	}
	return newVolume(st, cfg.Volume(s)), nil
}

// EncodePCM drains st into interleaved stereo int16 little-endian bytes
// Samples past the soft knee are compressed before the hard clip
func EncodePCM(st beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	if v > 0.8 {
		v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
	} else if v < -0.8 {
		v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
	}
	v = min(max(v, -1.0), 1.0)
	return int16(v * 32767)
}
