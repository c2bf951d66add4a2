// Package history persists the clips a user has uploaded, newest first, in a
// single JSON file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Entry records one uploaded clip and what the service said about it.
type Entry struct {
	ID         string    `json:"id"`
	File       string    `json:"file"`
	Start      float64   `json:"start"`
	Duration   float64   `json:"duration"`
	UploadedAt time.Time `json:"uploaded_at"`
	TopMatch   string    `json:"top_match,omitempty"`
	TopScore   float64   `json:"top_score,omitempty"`
}

// Store reads and appends entries at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path. The file is created
// on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("history file is corrupt: %w", err)
	}
	return entries, nil
}

// Append prepends an entry and rewrites the file.
func (s *Store) Append(e Entry) error {
	entries, err := s.List()
	if err != nil {
		return err
	}
	entries = append([]Entry{e}, entries...)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
