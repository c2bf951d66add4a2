// Package selection implements the draggable range-selection state machine.
// A single tagged drag state replaces independent boolean flags so illegal
// simultaneous drag modes cannot be represented.
package selection

import (
	"math"

	"github.com/wavseek/tunesnip/internal/config"
)

// Selection is a sub-range of an audio asset in seconds.
type Selection struct {
	Start    float64
	Duration float64
}

// End returns Start + Duration.
func (s Selection) End() float64 {
	return s.Start + s.Duration
}

// Clamped builds a valid selection for an asset of the given total duration,
// forcing the requested range into the machine's invariants. Used by the
// headless commands, which have no pointer gestures to go through.
func Clamped(start, duration, total float64) Selection {
	minDur := math.Min(config.MinSelectionSeconds, total)
	duration = clamp(duration, minDur, total)
	start = clamp(start, 0, total-duration)
	return Selection{Start: start, Duration: duration}
}

// DragMode tags the active pointer interaction.
type DragMode int

const (
	DragNone DragMode = iota
	DragStart
	DragEnd
	DragMiddle
)

// Machine holds the current selection for one asset and applies pointer
// gestures to it. All pointer positions are normalized to [0,1] of the total
// duration. Invariant after every transition:
//
//	0 <= sel.Start && sel.End() <= total && sel.Duration >= minDuration
type Machine struct {
	sel   Selection
	total float64

	mode       DragMode
	grabOffset float64 // DragMiddle only: pointer offset from Start, as a fraction of total
}

// NewMachine creates a machine for an asset of the given total duration, with
// the selection reset to {0, min(30, total)}.
func NewMachine(total float64) *Machine {
	m := &Machine{}
	m.Reset(total)
	return m
}

// Reset re-targets the machine at a new asset and restores the default
// selection.
func (m *Machine) Reset(total float64) {
	m.total = total
	m.mode = DragNone
	m.grabOffset = 0
	m.sel = Selection{
		Start:    0,
		Duration: math.Min(config.DefaultSelectionSeconds, total),
	}
}

// Selection returns the current selection.
func (m *Machine) Selection() Selection {
	return m.sel
}

// Total returns the asset duration the machine was reset to.
func (m *Machine) Total() float64 {
	return m.total
}

// Mode returns the active drag mode.
func (m *Machine) Mode() DragMode {
	return m.mode
}

// minDuration returns the effective minimum selection length. Assets shorter
// than the configured minimum degrade to their full length.
func (m *Machine) minDuration() float64 {
	return math.Min(config.MinSelectionSeconds, m.total)
}

// PointerDown hit-tests the markers and enters a drag mode. Positions within
// radius of the start or end marker grab that edge; positions strictly inside
// the selection grab the whole range; anything else is a no-op (clicks
// outside the selection do not seek).
func (m *Machine) PointerDown(p, radius float64) {
	if m.total <= 0 {
		return
	}
	startMarker := m.sel.Start / m.total
	endMarker := m.sel.End() / m.total

	switch {
	case math.Abs(p-startMarker) < radius:
		m.mode = DragStart
	case math.Abs(p-endMarker) < radius:
		m.mode = DragEnd
	case p > startMarker && p < endMarker:
		m.mode = DragMiddle
		m.grabOffset = p - startMarker
	}
}

// PointerMove applies the active drag mode to the selection. Returns true if
// the selection changed, signalling a repaint.
func (m *Machine) PointerMove(p float64) bool {
	before := m.sel
	switch m.mode {
	case DragStart:
		m.dragStart(p)
	case DragEnd:
		m.dragEnd(p)
	case DragMiddle:
		m.dragMiddle(p)
	default:
		return false
	}
	return m.sel != before
}

// dragStart moves the left edge while the right edge stays fixed. The edge is
// clamped first, then the duration derived from it.
func (m *Machine) dragStart(p float64) {
	newStart := clamp(p*m.total, 0, m.sel.End()-m.minDuration())
	m.sel.Duration += m.sel.Start - newStart
	m.sel.Start = newStart
}

// dragEnd moves the right edge while the left edge stays fixed, with the same
// clamp-then-derive order as dragStart.
func (m *Machine) dragEnd(p float64) {
	newEnd := clamp(p*m.total, m.sel.Start+m.minDuration(), m.total)
	m.sel.Duration = newEnd - m.sel.Start
}

// dragMiddle slides the whole selection, keeping the grab point under the
// pointer and the duration unchanged.
func (m *Machine) dragMiddle(p float64) {
	candidate := p*m.total - m.grabOffset*m.total
	m.sel.Start = clamp(candidate, 0, m.total-m.sel.Duration)
}

// PointerUp ends any active drag.
func (m *Machine) PointerUp() {
	m.mode = DragNone
	m.grabOffset = 0
}

// PointerLeave ends any active drag, same as release.
func (m *Machine) PointerLeave() {
	m.PointerUp()
}

// SetStart moves the selection start to t seconds, keeping the duration where
// possible. Used by the "set start to playhead" command; not a drag gesture.
func (m *Machine) SetStart(t float64) {
	start := clamp(t, 0, m.total-m.minDuration())
	end := math.Min(start+m.sel.Duration, m.total)
	m.sel.Start = start
	m.sel.Duration = math.Max(end-start, m.minDuration())
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
