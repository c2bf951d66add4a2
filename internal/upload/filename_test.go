package upload

import "testing"

func TestClipFilename(t *testing.T) {
	tests := []struct {
		original string
		start    float64
		end      float64
		want     string
	}{
		{"/music/track.mp3", 0, 30, "track (0:00-0:30).mp3"},
		{"song.wav", 65, 125, "song (1:05-2:05).wav"},
		{"/deep/path/My Song.flac", 599, 659.7, "My Song (9:59-10:59).flac"},
		{"noext", 0, 5, "noext (0:00-0:05)"},
	}

	for _, tt := range tests {
		if got := ClipFilename(tt.original, tt.start, tt.end); got != tt.want {
			t.Errorf("ClipFilename(%q, %v, %v): expected %q, got %q",
				tt.original, tt.start, tt.end, tt.want, got)
		}
	}
}
