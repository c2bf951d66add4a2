package config

import (
	"os"
	"strconv"
	"time"
)

// Waveform settings
const (
	EnvelopeBuckets = 100 // Fixed envelope resolution per asset
	EnvelopeGain    = 256 // Amplitude scale applied to per-bucket mean
)

// Selection settings
const (
	MinSelectionSeconds     = 5.0  // Shortest allowed selection
	DefaultSelectionSeconds = 30.0 // Initial selection length on file load

	// Marker grab radius as a fraction of total width (~15px at 1000px)
	HitRadius = 15.0 / 1000.0
)

// Render settings
const (
	RenderWidth  = 1000
	RenderHeight = 256
)

// Colors (RGBA)
const (
	BackgroundR = 16
	BackgroundG = 18
	BackgroundB = 32

	WaveR = 92
	WaveG = 156
	WaveB = 220

	PlayheadR = 240
	PlayheadG = 240
	PlayheadB = 240

	// Selection overlay is alpha-composited over the envelope
	SelectionR = 255
	SelectionG = 200
	SelectionB = 60
	SelectionA = 64

	StartMarkerR = 80
	StartMarkerG = 220
	StartMarkerB = 120

	EndMarkerR = 230
	EndMarkerG = 90
	EndMarkerB = 90
)

// Service holds runtime settings for the matching service connection,
// loaded from environment variables.
type Service struct {
	BaseURL       string
	Timeout       time.Duration
	LibraryDir    string
	HistoryPath   string
	HealthEvery   time.Duration
}

// LoadService reads service configuration from the environment with sane
// defaults.
func LoadService() Service {
	return Service{
		BaseURL:     envStr("TUNESNIP_SERVICE_URL", "http://localhost:8000"),
		Timeout:     time.Duration(envInt("TUNESNIP_TIMEOUT_SECONDS", 60)) * time.Second,
		LibraryDir:  envStr("TUNESNIP_LIBRARY_DIR", "."),
		HistoryPath: envStr("TUNESNIP_HISTORY_PATH", historyDefault()),
		HealthEvery: time.Duration(envInt("TUNESNIP_HEALTH_SECONDS", 15)) * time.Second,
	}
}

func historyDefault() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tunesnip_history.json"
	}
	return home + "/.tunesnip_history.json"
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
