// Package library lists the audio files available for picking.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Track is one playable file in the library.
type Track struct {
	Name string
	Path string
}

var supported = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
}

// Scan walks dir and returns every supported audio file, sorted by name.
func Scan(dir string) ([]Track, error) {
	var tracks []Track
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if supported[strings.ToLower(filepath.Ext(path))] {
			tracks = append(tracks, Track{Name: info.Name(), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })
	return tracks, nil
}
