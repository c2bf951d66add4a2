package renderer

import (
	"image/color"
	"testing"

	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/selection"
	"github.com/wavseek/tunesnip/internal/waveform"
)

func TestRenderDimensionsAndBackground(t *testing.T) {
	env := make(waveform.Envelope, config.EnvelopeBuckets)
	sel := selection.Selection{Start: 10, Duration: 5}
	img := Render(env, sel, 0, 100, 100, 128)

	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 128 {
		t.Fatalf("Expected 100x128 image, got %v", img.Bounds())
	}

	// A silent envelope outside the selection and playhead is pure background
	got := img.RGBAAt(60, 5)
	want := color.RGBA{config.BackgroundR, config.BackgroundG, config.BackgroundB, 255}
	if got != want {
		t.Errorf("Expected background at (60,5), got %v", got)
	}
}

func TestRenderCapsBarsAtHalfHeight(t *testing.T) {
	env := make(waveform.Envelope, 100)
	env[0] = 10 * config.EnvelopeGain // way past full scale

	sel := selection.Selection{Start: 50, Duration: 10}
	img := Render(env, sel, 90, 100, 100, 128)

	// Capped bars span the full surface: top row of column 0 is wave color
	got := img.RGBAAt(0, 0)
	want := color.RGBA{config.WaveR, config.WaveG, config.WaveB, 255}
	if got != want {
		t.Errorf("Expected capped bar to reach the top, got %v", got)
	}
}

func TestRenderPlayheadColumn(t *testing.T) {
	env := make(waveform.Envelope, 100)
	sel := selection.Selection{Start: 60, Duration: 10}
	img := Render(env, sel, 30, 100, 100, 128)

	got := img.RGBAAt(30, 5)
	want := color.RGBA{config.PlayheadR, config.PlayheadG, config.PlayheadB, 255}
	if got != want {
		t.Errorf("Expected playhead line at x=30, got %v", got)
	}
}

func TestRenderSelectionOverlayAndMarkers(t *testing.T) {
	env := make(waveform.Envelope, 100)
	sel := selection.Selection{Start: 10, Duration: 5}
	img := Render(env, sel, 90, 100, 100, 128)

	bg := color.RGBA{config.BackgroundR, config.BackgroundG, config.BackgroundB, 255}

	if got := img.RGBAAt(12, 5); got == bg {
		t.Error("Expected translucent overlay inside the selection")
	}
	if got := img.RGBAAt(10, 5); got != (color.RGBA{config.StartMarkerR, config.StartMarkerG, config.StartMarkerB, 255}) {
		t.Errorf("Expected start marker at x=10, got %v", got)
	}
	if got := img.RGBAAt(15, 5); got != (color.RGBA{config.EndMarkerR, config.EndMarkerG, config.EndMarkerB, 255}) {
		t.Errorf("Expected end marker at x=15, got %v", got)
	}
	if got := img.RGBAAt(50, 5); got != bg {
		t.Errorf("Expected background outside the selection, got %v", got)
	}
}

func TestRenderIsPure(t *testing.T) {
	env := make(waveform.Envelope, 100)
	for i := range env {
		env[i] = float64(i)
	}
	sel := selection.Selection{Start: 20, Duration: 30}

	a := Render(env, sel, 10, 100, 200, 128)
	b := Render(env, sel, 10, 100, 200, 128)

	if len(a.Pix) != len(b.Pix) {
		t.Fatal("Renders differ in size")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("Render is not deterministic for identical inputs")
		}
	}
}
