package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUploadClipRequestShape(t *testing.T) {
	wavBytes := []byte("RIFFfakewavdata")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match" {
			t.Errorf("Expected POST /match, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Missing file part: %v", err)
		}
		defer file.Close()

		if header.Filename != "track (0:10-0:40).mp3" {
			t.Errorf("Unexpected filename: %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "audio/wav" {
			t.Errorf("Expected audio/wav part, got %q", ct)
		}
		body, _ := io.ReadAll(file)
		if string(body) != string(wavBytes) {
			t.Error("File part does not carry the WAV bytes")
		}

		if got := r.FormValue("start"); got != "10" {
			t.Errorf("Expected start=10, got %q", got)
		}
		if got := r.FormValue("duration"); got != "30" {
			t.Errorf("Expected duration=30, got %q", got)
		}

		json.NewEncoder(w).Encode(Result{
			JobID:   "job-1",
			Matches: []Match{{Track: "some song", Score: 0.91}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.UploadClip(context.Background(), wavBytes, "track (0:10-0:40).mp3", 10, 30)
	if err != nil {
		t.Fatalf("UploadClip failed: %v", err)
	}
	if result.JobID != "job-1" {
		t.Errorf("Expected job-1, got %q", result.JobID)
	}
	if len(result.Matches) != 1 || result.Matches[0].Track != "some song" {
		t.Errorf("Unexpected matches: %+v", result.Matches)
	}
}

func TestUploadClipServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.UploadClip(context.Background(), []byte("x"), "a.wav", 0, 5); err == nil {
		t.Fatal("Expected error on non-200 response")
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if !c.Health(context.Background()) {
		t.Error("Expected healthy service")
	}

	down := NewClient("http://127.0.0.1:1", time.Second)
	if down.Health(context.Background()) {
		t.Error("Expected unreachable service to report unhealthy")
	}
}
