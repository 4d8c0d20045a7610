// Package audio plays short feedback sounds through whichever command line
// PCM player the system provides. Without one the bell stays silent.
package audio

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"sync"
	"sync/atomic"
)

// PlayFunc sends raw s16le stereo PCM to an output
type PlayFunc func(ctx context.Context, pcm []byte) error

// Bell plays feedback sounds asynchronously; at most maxPlaying at once
type Bell struct {
	cfg  Config
	play PlayFunc

	mu    sync.Mutex
	cache map[Sound][]byte

	slots   chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	played  atomic.Uint64
	dropped atomic.Uint64
}

const maxPlaying = 2

// NewBell creates a bell using the detected backend
// A disabled config or a missing backend yields a silent bell
func NewBell(cfg Config) *Bell {
	if !cfg.Enabled {
		return NewBellWith(cfg, nil)
	}
	backend, err := DetectBackend(cfg.SampleRate)
	if err != nil {
		log.Printf("audio: %v, bell silent", err)
		return NewBellWith(cfg, nil)
	}
	log.Printf("audio: using %s", backend.Name)
	return NewBellWith(cfg, backendPlayer(backend))
}

// NewBellWith creates a bell with a custom output; nil play means silent
func NewBellWith(cfg Config, play PlayFunc) *Bell {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bell{
		cfg:    cfg,
		play:   play,
		cache:  make(map[Sound][]byte),
		slots:  make(chan struct{}, maxPlaying),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Silent reports whether Ring is a no-op
func (b *Bell) Silent() bool {
	return b == nil || b.play == nil || !b.cfg.Enabled
}

// Ring starts a sound without blocking; it is dropped when all slots are busy
func (b *Bell) Ring(s Sound) {
	if b.Silent() || b.ctx.Err() != nil {
		return
	}
	pcm, err := b.pcm(s)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}

	select {
	case b.slots <- struct{}{}:
	default:
		b.dropped.Add(1)
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() { <-b.slots }()
		if err := b.play(b.ctx, pcm); err != nil && b.ctx.Err() == nil {
			log.Printf("audio: play %s: %v", s, err)
			return
		}
		b.played.Add(1)
	}()
}

// Stats returns played and dropped counts
func (b *Bell) Stats() (played, dropped uint64) {
	return b.played.Load(), b.dropped.Load()
}

// Close stops playing sounds and waits for them
func (b *Bell) Close() {
	if b == nil {
		return
	}
	b.cancel()
	b.wg.Wait()
}

// pcm returns the encoded sound, generating it on first use
func (b *Bell) pcm(s Sound) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.cache[s]; ok {
		return buf, nil
	}
	st, err := Streamer(s, b.cfg)
	if err != nil {
		return nil, err
	}
	buf := EncodePCM(st)
	b.cache[s] = buf
	return buf, nil
}

// backendPlayer runs one backend process per sound with the PCM on stdin
func backendPlayer(backend *BackendConfig) PlayFunc {
	return func(ctx context.Context, pcm []byte) error {
		cmd := exec.CommandContext(ctx, backend.Path, backend.Args...)
		cmd.Stdin = bytes.NewReader(pcm)
		return cmd.Run()
	}
}
