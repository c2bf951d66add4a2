package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/timefmt"
)

const (
	waveTop    = 2 // first terminal row of the waveform pane
	waveHeight = 8 // pane height in rows
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5C9CDC"))
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC83C"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E65A5A"))
	healthOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50DC78"))
	healthBadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E65A5A"))

	waveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C9CDC"))
	waveSelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC83C")).Background(lipgloss.Color("#2A2A1A"))
	startStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50DC78")).Bold(true)
	endStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#E65A5A")).Bold(true)
	playheadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
)

var waveGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// waveWidth returns the waveform pane width in cells.
func (m Model) waveWidth() int {
	w := m.width
	if w < 20 {
		w = 20
	}
	return w
}

// updateMouse maps terminal mouse events onto the pointer contract of the
// selection machine. Motion outside the pane while dragging counts as a
// pointer leave.
func (m Model) updateMouse(msg tea.MouseMsg) Model {
	w := m.waveWidth()
	p := (float64(msg.X) + 0.5) / float64(w)
	inPane := msg.Y >= waveTop && msg.Y < waveTop+waveHeight && msg.X < w

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inPane {
			m.sess.PointerDown(p, config.HitRadius)
		}
	case tea.MouseActionMotion:
		if inPane {
			m.sess.PointerMove(p)
		} else {
			m.sess.PointerLeave()
		}
	case tea.MouseActionRelease:
		m.sess.PointerUp()
	}
	return m
}

// waveView renders the waveform pane from the cached envelope. Only the
// overlay changes per frame; the envelope itself is never recomputed here.
func (m Model) waveView() string {
	var s strings.Builder

	total := m.sess.Duration()
	name := filepath.Base(m.sess.Path())
	s.WriteString(titleStyle.Render(name))
	s.WriteString(faintStyle.Render(fmt.Sprintf("  %s", timefmt.Seconds(total))))
	s.WriteString("\n\n")

	env := m.sess.Envelope()
	sel := m.sess.Selection()
	w := m.waveWidth()

	// A header-only file decodes to a zero-length asset; park the marker
	// columns off-pane instead of dividing by zero.
	startCol, endCol, playCol := -1, -1, -1
	if total > 0 {
		startCol = int(sel.Start / total * float64(w))
		endCol = int(sel.End() / total * float64(w))
		playCol = int(m.sess.Playhead() / total * float64(w))
	}

	// Column amplitudes, 0..1, capped like the raster renderer
	heights := make([]float64, w)
	for col := 0; col < w; col++ {
		if len(env) == 0 {
			continue
		}
		bucket := col * len(env) / w
		v := env[bucket] / config.EnvelopeGain
		if v > 1 {
			v = 1
		}
		heights[col] = v
	}

	for row := 0; row < waveHeight; row++ {
		// rows are drawn top-down; each column fills from the bottom
		threshold := float64(waveHeight-row) / float64(waveHeight)
		for col := 0; col < w; col++ {
			glyph := glyphFor(heights[col], threshold, waveHeight)
			cell := string(glyph)

			switch {
			case col == playCol:
				s.WriteString(playheadStyle.Render("│"))
			case col == startCol:
				s.WriteString(startStyle.Render("┃"))
			case col == endCol:
				s.WriteString(endStyle.Render("┃"))
			case col > startCol && col < endCol:
				s.WriteString(waveSelStyle.Render(cell))
			default:
				s.WriteString(waveStyle.Render(cell))
			}
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s\n",
		keyLabel("start"), startStyle.Render(timefmt.Seconds(sel.Start)),
		keyLabel("end"), endStyle.Render(timefmt.Seconds(sel.End())),
		keyLabel("playhead"), playheadStyle.Render(timefmt.Seconds(m.sess.Playhead())),
	))
	s.WriteString(faintStyle.Render("space play · s play selection · x stop · m start→playhead · u upload · h history · esc back · q quit"))
	s.WriteString("\n")
	s.WriteString(m.statusLine())
	return s.String()
}

// glyphFor picks the partial-block glyph for one cell of a column with the
// given normalized amplitude.
func glyphFor(amplitude, threshold float64, rows int) rune {
	rowSpan := 1.0 / float64(rows)
	if amplitude >= threshold {
		return waveGlyphs[len(waveGlyphs)-1]
	}
	if amplitude <= threshold-rowSpan {
		return waveGlyphs[0]
	}
	frac := (amplitude - (threshold - rowSpan)) / rowSpan
	idx := int(frac * float64(len(waveGlyphs)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(waveGlyphs) {
		idx = len(waveGlyphs) - 1
	}
	return waveGlyphs[idx]
}

// keyLabel styles a key-value label.
func keyLabel(k string) string {
	return faintStyle.Render(k + ":")
}
