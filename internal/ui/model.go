// Package ui is the interactive terminal front end: a library picker, the
// draggable waveform pane, and the upload/history views. All pipeline work
// runs as Bubble Tea commands; the Session's busy flag keeps a second
// trigger from starting while one is in flight.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/history"
	"github.com/wavseek/tunesnip/internal/library"
	"github.com/wavseek/tunesnip/internal/player"
	"github.com/wavseek/tunesnip/internal/session"
	"github.com/wavseek/tunesnip/internal/timefmt"
	"github.com/wavseek/tunesnip/internal/upload"
)

type view int

const (
	viewPicker view = iota
	viewWave
	viewHistory
)

// trackItem adapts a library track to the picker list.
type trackItem struct {
	track library.Track
}

func (t trackItem) Title() string       { return t.track.Name }
func (t trackItem) Description() string { return t.track.Path }
func (t trackItem) FilterValue() string { return t.track.Name }

// Messages

type fileLoadedMsg struct {
	err error
}

type clipUploadedMsg struct {
	entry history.Entry
	err   error
}

type healthMsg struct {
	ok bool
}

type playheadTickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	cfg     config.Service
	sess    *session.Session
	preview *player.Preview
	client  *upload.Client
	store   *history.Store

	view    view
	picker  list.Model
	spin    spinner.Model
	entries []history.Entry

	width, height int
	status        string
	errMsg        string
	healthy       bool

	// uploading stays set through the whole extract+upload command, past
	// the point where the session itself is back in Ready, so a second
	// trigger cannot start mid-upload.
	uploading bool

	// previewBase is the track time at which the running preview started,
	// so the playhead can follow it.
	previewBase float64
}

// New builds the root model from a scanned library.
func New(cfg config.Service, tracks []library.Track) Model {
	items := make([]list.Item, len(tracks))
	for i, t := range tracks {
		items[i] = trackItem{track: t}
	}

	picker := list.New(items, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Library"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return Model{
		cfg:     cfg,
		sess:    session.New(),
		preview: player.NewPreview(),
		client:  upload.NewClient(cfg.BaseURL, cfg.Timeout),
		store:   history.NewStore(cfg.HistoryPath),
		view:    viewPicker,
		picker:  picker,
		spin:    sp,
	}
}

// Run scans the library and runs the TUI until quit.
func Run(cfg config.Service) error {
	tracks, err := library.Scan(cfg.LibraryDir)
	if err != nil {
		return fmt.Errorf("failed to scan library %s: %w", cfg.LibraryDir, err)
	}

	m := New(cfg, tracks)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.preview.Close()
	return err
}

// Init starts health polling and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.healthNow(), m.tick())
}

func (m Model) healthNow() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthMsg{ok: client.Health(ctx)}
	}
}

func (m Model) checkHealth() tea.Cmd {
	client, every := m.client, m.cfg.HealthEvery
	return tea.Tick(every, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthMsg{ok: client.Health(ctx)}
	})
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return playheadTickMsg(t)
	})
}

func (m Model) loadFile(path string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		return fileLoadedMsg{err: sess.LoadFile(path)}
	}
}

// extractAndUpload runs the whole back half of the pipeline: extract,
// encode, upload, record. Any failure surfaces as one error with the
// session back in Ready.
func (m Model) extractAndUpload() tea.Cmd {
	sess, client, store, timeout := m.sess, m.client, m.store, m.cfg.Timeout
	return func() tea.Msg {
		clip, err := sess.ExtractClip()
		if err != nil {
			return clipUploadedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := client.UploadClip(ctx, clip.WAV, clip.Filename, clip.Start, clip.Duration)
		if err != nil {
			return clipUploadedMsg{err: err}
		}

		entry := history.Entry{
			ID:         clip.ID,
			File:       clip.Filename,
			Start:      clip.Start,
			Duration:   clip.Duration,
			UploadedAt: time.Now(),
		}
		if len(result.Matches) > 0 {
			entry.TopMatch = result.Matches[0].Track
			entry.TopScore = result.Matches[0].Score
		}
		if err := store.Append(entry); err != nil {
			return clipUploadedMsg{entry: entry, err: err}
		}
		return clipUploadedMsg{entry: entry}
	}
}

func (m Model) startPreview(selectionOnly bool) (Model, tea.Cmd) {
	pcm, rate, chans, length, err := m.sess.PreviewPCM(selectionOnly)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if err := m.preview.Play(pcm, rate, chans, length); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	if selectionOnly {
		m.previewBase = m.sess.Selection().Start
	} else {
		m.previewBase = 0
	}
	m.errMsg = ""
	return m, nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case healthMsg:
		m.healthy = msg.ok
		return m, m.checkHealth()

	case playheadTickMsg:
		if pos, playing := m.preview.Position(); playing {
			m.sess.SetPlayhead(m.previewBase + pos.Seconds())
		}
		return m, m.tick()

	case fileLoadedMsg:
		if msg.err != nil {
			m.view = viewPicker
			m.errMsg = decodeErrorText(msg.err)
			m.status = ""
			return m, nil
		}
		m.view = viewWave
		m.errMsg = ""
		m.status = ""
		return m, nil

	case clipUploadedMsg:
		m.uploading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.status = ""
			return m, nil
		}
		m.status = "uploaded " + msg.entry.File
		if msg.entry.TopMatch != "" {
			m.status = fmt.Sprintf("matched %s (%.2f)", msg.entry.TopMatch, msg.entry.TopScore)
		}
		m.errMsg = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.view == viewWave {
			return m.updateMouse(msg), nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	if m.view == viewPicker {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.view {
	case viewPicker:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.picker.SelectedItem().(trackItem); ok && !m.sess.Busy() {
				m.status = "decoding " + item.track.Name
				m.errMsg = ""
				return m, m.loadFile(item.track.Path)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case viewWave:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			m.preview.Stop()
			m.view = viewPicker
			return m, nil
		case " ":
			return m.startPreview(false)
		case "s":
			return m.startPreview(true)
		case "x":
			m.preview.Stop()
			return m, nil
		case "m":
			m.sess.SetStartToPlayhead()
			return m, nil
		case "u":
			if m.uploading || m.sess.Busy() {
				return m, nil
			}
			m.uploading = true
			m.status = "uploading..."
			m.errMsg = ""
			return m, m.extractAndUpload()
		case "h":
			entries, err := m.store.List()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.entries = entries
			m.view = viewHistory
			return m, nil
		}

	case viewHistory:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "h":
			m.view = viewWave
			return m, nil
		}
	}
	return m, nil
}

func decodeErrorText(err error) string {
	return "could not load file: " + err.Error()
}

// View renders the UI.
func (m Model) View() string {
	switch m.view {
	case viewWave:
		return m.waveView()
	case viewHistory:
		return m.historyView()
	default:
		return m.pickerView()
	}
}

func (m Model) pickerView() string {
	s := m.picker.View() + "\n" + m.statusLine()
	return s
}

func (m Model) historyView() string {
	var s string
	s += titleStyle.Render("Upload history") + "\n\n"
	if len(m.entries) == 0 {
		s += faintStyle.Render("nothing uploaded yet") + "\n"
	}
	for _, e := range m.entries {
		line := fmt.Sprintf("%s  %s-%s", e.File,
			timefmt.Seconds(e.Start), timefmt.Seconds(e.Start+e.Duration))
		if e.TopMatch != "" {
			line += faintStyle.Render(fmt.Sprintf("  → %s (%.2f)", e.TopMatch, e.TopScore))
		}
		s += line + "\n"
	}
	s += "\n" + m.statusLine()
	return s
}

func (m Model) statusLine() string {
	health := healthBadStyle.Render("● service down")
	if m.healthy {
		health = healthOKStyle.Render("● service up")
	}

	var mid string
	switch {
	case m.errMsg != "":
		mid = errorStyle.Render(m.errMsg)
	case m.sess.Busy() || m.uploading:
		mid = m.spin.View() + statusStyle.Render(m.status)
	case m.status != "":
		mid = statusStyle.Render(m.status)
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, health, "  ", mid)
}
