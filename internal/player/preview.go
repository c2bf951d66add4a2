// Package player plays preview audio (the full track or the extracted
// segment) through the system output. Exactly one preview is audible at a
// time; each preview owns an auto-stop timer that is cancelled when the
// preview is stopped or superseded.
package player

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// The audio output is opened once at a fixed device format; oto allows a
// single context per process, so every preview is converted to it instead of
// re-opening the device.
const (
	deviceRate     = 48000
	deviceChannels = 2
)

// Preview manages the audio output and the lifetime of the current preview.
type Preview struct {
	mu        sync.Mutex
	otoCtx    *oto.Context
	current   *oto.Player
	startedAt time.Time
	length    time.Duration

	// generation invalidates auto-stop timers from superseded previews: a
	// timer only stops playback if no newer preview has started since it
	// was armed.
	generation uint64
}

// NewPreview creates an idle preview player.
func NewPreview() *Preview {
	return &Preview{}
}

// ensureContext opens the audio output on first use.
func (p *Preview) ensureContext() error {
	if p.otoCtx != nil {
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   deviceRate,
		ChannelCount: deviceChannels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	<-readyChan

	p.otoCtx = ctx
	return nil
}

// toDeviceFormat converts interleaved 16-bit LE PCM to the device format:
// linear-interpolation resampling to deviceRate, mono duplicated across both
// device channels, channels past the second dropped.
func toDeviceFormat(pcm []byte, sampleRate, channels int) []byte {
	if sampleRate == deviceRate && channels == deviceChannels {
		return pcm
	}

	frames := len(pcm) / (2 * channels)
	if frames == 0 {
		return nil
	}

	outFrames := int(int64(frames) * deviceRate / int64(sampleRate))
	out := make([]byte, outFrames*deviceChannels*2)
	step := float64(sampleRate) / float64(deviceRate)

	sampleAt := func(frame, ch int) float64 {
		off := (frame*channels + ch) * 2
		return float64(int16(pcm[off]) | int16(pcm[off+1])<<8)
	}

	for i := 0; i < outFrames; i++ {
		pos := float64(i) * step
		i0 := int(pos)
		i1 := i0 + 1
		if i1 >= frames {
			i1 = frames - 1
		}
		frac := pos - float64(i0)

		for dc := 0; dc < deviceChannels; dc++ {
			sc := dc
			if sc >= channels {
				sc = channels - 1
			}
			s0 := sampleAt(i0, sc)
			s1 := sampleAt(i1, sc)
			v := int16(s0 + frac*(s1-s0))
			off := (i*deviceChannels + dc) * 2
			out[off] = byte(v)
			out[off+1] = byte(v >> 8)
		}
	}
	return out
}

// Play starts a preview of raw interleaved 16-bit LE PCM, superseding any
// preview already playing. The preview stops itself when length elapses.
func (p *Preview) Play(pcm []byte, sampleRate, channels int, length time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if err := p.ensureContext(); err != nil {
		return err
	}

	player := p.otoCtx.NewPlayer(bytes.NewReader(toDeviceFormat(pcm, sampleRate, channels)))
	player.Play()
	p.current = player
	p.startedAt = time.Now()
	p.length = length

	gen := p.generation
	time.AfterFunc(length+50*time.Millisecond, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.generation == gen {
			p.stopLocked()
		}
	})
	return nil
}

// Stop halts the current preview, if any, and cancels its auto-stop timer.
func (p *Preview) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked bumps the generation so any armed timer becomes a no-op.
func (p *Preview) stopLocked() {
	p.generation++
	if p.current != nil {
		p.current.Close()
		p.current = nil
	}
}

// Position returns the elapsed time of the current preview and whether one
// is playing. Drives the playhead.
func (p *Preview) Position() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0, false
	}
	pos := time.Since(p.startedAt)
	if pos > p.length {
		pos = p.length
	}
	return pos, true
}

// Close releases the audio output.
func (p *Preview) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.otoCtx != nil {
		p.otoCtx.Suspend()
	}
}
