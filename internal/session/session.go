// Package session wires the pipeline together for one file-selection
// workflow: decode access, envelope cache, selection machine, extraction and
// container encoding. A Session owns all per-file state explicitly, so
// multiple sessions never share anything.
package session

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wavseek/tunesnip/internal/audio"
	"github.com/wavseek/tunesnip/internal/encoder"
	"github.com/wavseek/tunesnip/internal/selection"
	"github.com/wavseek/tunesnip/internal/upload"
	"github.com/wavseek/tunesnip/internal/waveform"
)

// State is the workflow position of a session.
type State int

const (
	StateNoFile State = iota
	StateDecoding
	StateReady
	StateExtracting
)

var (
	// ErrBusy is returned when a second pipeline trigger arrives while one
	// is in flight.
	ErrBusy = errors.New("another operation is in flight")

	// ErrNoAsset is returned when an operation needs a decoded file.
	ErrNoAsset = errors.New("no file loaded")
)

// Clip is a finished, uploadable segment.
type Clip struct {
	ID       string
	Filename string
	WAV      []byte
	Start    float64
	Duration float64
}

// Session holds one file-selection lifetime. The asset is replaced wholesale
// on a new file pick and the selection is reset with it.
type Session struct {
	mu       sync.Mutex
	state    State
	inFlight bool

	path     string
	asset    *audio.Asset
	envelope waveform.Envelope
	machine  *selection.Machine
	playhead float64
}

// New creates an empty session in the NoFile state.
func New() *Session {
	return &Session{
		state:   StateNoFile,
		machine: selection.NewMachine(0),
	}
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether a decode/extract pipeline is in flight. The UI uses
// this to disable triggering controls.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// begin claims the in-flight flag and moves to next, or fails with ErrBusy.
func (s *Session) begin(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrBusy
	}
	s.inFlight = true
	s.state = next
	return nil
}

// LoadFile decodes the file at path and resets the selection to
// {0, min(30, total)}. On failure the prior asset is cleared and the session
// returns to NoFile; nothing is left half-loaded.
func (s *Session) LoadFile(path string) error {
	if err := s.begin(StateDecoding); err != nil {
		return err
	}

	asset, err := audio.DecodeFile(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if err != nil {
		s.state = StateNoFile
		s.path = ""
		s.asset = nil
		s.envelope = nil
		s.machine.Reset(0)
		return err
	}

	s.state = StateReady
	s.path = path
	s.asset = asset
	s.envelope = waveform.FromAsset(asset.Channels[0])
	s.machine.Reset(asset.Duration())
	s.playhead = 0
	return nil
}

// ExtractClip extracts the current selection, encodes it, and returns the
// finished clip. The selection and asset are untouched either way; on
// failure the session simply returns to Ready.
func (s *Session) ExtractClip() (*Clip, error) {
	s.mu.Lock()
	if s.state != StateReady || s.asset == nil {
		s.mu.Unlock()
		return nil, ErrNoAsset
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.inFlight = true
	s.state = StateExtracting
	asset := s.asset
	sel := s.machine.Selection()
	path := s.path
	s.mu.Unlock()

	seg := audio.Extract(asset, sel.Start, sel.Duration)
	wav, err := encoder.Encode(seg)

	s.mu.Lock()
	s.inFlight = false
	s.state = StateReady
	s.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("failed to encode clip: %w", err)
	}

	return &Clip{
		ID:       uuid.New().String(),
		Filename: upload.ClipFilename(path, sel.Start, sel.End()),
		WAV:      wav,
		Start:    sel.Start,
		Duration: sel.Duration,
	}, nil
}

// PreviewPCM returns raw playback bytes for either the whole track or the
// current selection, with the format and length the player needs.
func (s *Session) PreviewPCM(selectionOnly bool) (pcm []byte, sampleRate, channels int, length time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil {
		return nil, 0, 0, 0, ErrNoAsset
	}
	if s.inFlight {
		return nil, 0, 0, 0, ErrBusy
	}

	if selectionOnly {
		sel := s.machine.Selection()
		seg := audio.Extract(s.asset, sel.Start, sel.Duration)
		pcm = encoder.PCM16(seg.Channels)
		length = time.Duration(sel.Duration * float64(time.Second))
	} else {
		pcm = encoder.PCM16(s.asset.Channels)
		length = time.Duration(s.asset.Duration() * float64(time.Second))
	}
	return pcm, s.asset.SampleRate, s.asset.NumChannels(), length, nil
}

// Path returns the loaded file path.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Duration returns the loaded asset's length in seconds, 0 when empty.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil {
		return 0
	}
	return s.asset.Duration()
}

// Envelope returns the cached amplitude envelope.
func (s *Session) Envelope() waveform.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.envelope
}

// Selection returns the current selection.
func (s *Session) Selection() selection.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Selection()
}

// Playhead returns the current playhead position in seconds.
func (s *Session) Playhead() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playhead
}

// SetPlayhead moves the playhead, clamped to the asset range.
func (s *Session) SetPlayhead(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil {
		s.playhead = 0
		return
	}
	s.playhead = math.Max(0, math.Min(t, s.asset.Duration()))
}

// SetStartToPlayhead moves the selection start to the playhead. Rejected
// while a pipeline is in flight, like every other selection mutation.
func (s *Session) SetStartToPlayhead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil || s.inFlight {
		return
	}
	s.machine.SetStart(s.playhead)
}

// PointerDown forwards a pointer press to the selection machine unless a
// pipeline is in flight.
func (s *Session) PointerDown(p, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil || s.inFlight {
		return
	}
	s.machine.PointerDown(p, radius)
}

// PointerMove forwards pointer motion; reports whether a repaint is needed.
func (s *Session) PointerMove(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.asset == nil || s.inFlight {
		return false
	}
	return s.machine.PointerMove(p)
}

// PointerUp ends any drag.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.PointerUp()
}

// PointerLeave ends any drag, same as release.
func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.PointerLeave()
}
