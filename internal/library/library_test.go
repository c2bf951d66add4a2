package library

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mp3"))
	touch(t, filepath.Join(dir, "a.wav"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "cover.png"))
	touch(t, filepath.Join(dir, "sub", "c.FLAC"))
	touch(t, filepath.Join(dir, "sub", "d.ogg"))

	tracks, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(tracks) != 4 {
		t.Fatalf("Expected 4 tracks, got %d: %+v", len(tracks), tracks)
	}
	want := []string{"a.wav", "b.mp3", "c.FLAC", "d.ogg"}
	for i, name := range want {
		if tracks[i].Name != name {
			t.Errorf("Track %d: expected %s, got %s", i, name, tracks[i].Name)
		}
	}
}

func TestScanEmptyDir(t *testing.T) {
	tracks, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("Expected no tracks, got %d", len(tracks))
	}
}
