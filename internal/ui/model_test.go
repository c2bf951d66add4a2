package ui

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/history"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Service{
		BaseURL:     "http://localhost:0",
		HistoryPath: filepath.Join(t.TempDir(), "history.json"),
	}
	return New(cfg, nil)
}

// writeHeaderOnlyWAV writes a valid RIFF/WAVE container with an empty data
// chunk: mono, 8 kHz, zero frames.
func writeHeaderOnlyWAV(t *testing.T) string {
	t.Helper()
	buf := make([]byte, 44)
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], 36)
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1)
	binary.LittleEndian.PutUint16(buf[22:24], 1)
	binary.LittleEndian.PutUint32(buf[24:28], 8000)
	binary.LittleEndian.PutUint32(buf[28:32], 16000)
	binary.LittleEndian.PutUint16(buf[32:34], 2)
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")

	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestWaveViewHandlesZeroLengthAsset(t *testing.T) {
	m := testModel(t)
	if err := m.sess.LoadFile(writeHeaderOnlyWAV(t)); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	m.view = viewWave
	m.width = 80

	out := m.waveView()
	if out == "" {
		t.Fatal("Expected a rendered pane")
	}
	if strings.Contains(out, "NaN") {
		t.Error("Zero-length asset leaked NaN into the view")
	}
}

func TestUploadKeyIgnoredWhileUploading(t *testing.T) {
	m := testModel(t)
	m.view = viewWave

	next, cmd := m.updateKeys(keyPress('u'))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Expected first press to dispatch the upload")
	}
	if !m.uploading {
		t.Fatal("Expected uploading latch set on dispatch")
	}

	// The session is already back in Ready here; only the latch guards
	if next, cmd = m.updateKeys(keyPress('u')); cmd != nil {
		t.Error("Expected second press to be ignored mid-upload")
	}
	m = next.(Model)

	next, _ = m.Update(clipUploadedMsg{err: errors.New("connection refused")})
	m = next.(Model)
	if m.uploading {
		t.Error("Expected latch cleared when the upload finishes")
	}

	if _, cmd = m.updateKeys(keyPress('u')); cmd == nil {
		t.Error("Expected the trigger re-enabled after completion")
	}
}

func TestUploadResultClearsLatchAndSetsStatus(t *testing.T) {
	m := testModel(t)
	m.view = viewWave
	m.uploading = true

	next, _ := m.Update(clipUploadedMsg{entry: history.Entry{
		File:     "tone (0:10-0:40).wav",
		TopMatch: "Some Track",
		TopScore: 0.91,
	}})
	m = next.(Model)

	if m.uploading {
		t.Error("Expected uploading latch cleared")
	}
	if !strings.Contains(m.status, "Some Track") {
		t.Errorf("Expected match in status, got %q", m.status)
	}
}
