// Package renderer draws the waveform surface: envelope bars mirrored about
// the vertical center, the selection overlay with its drag markers, and the
// playhead. Render is a pure function of its inputs so the surface can be
// repainted cheaply from the cached envelope on every selection change.
package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/selection"
	"github.com/wavseek/tunesnip/internal/timefmt"
	"github.com/wavseek/tunesnip/internal/waveform"
)

var (
	background = color.RGBA{config.BackgroundR, config.BackgroundG, config.BackgroundB, 255}
	waveColor  = color.RGBA{config.WaveR, config.WaveG, config.WaveB, 255}
	playhead   = color.RGBA{config.PlayheadR, config.PlayheadG, config.PlayheadB, 255}
	overlay    = color.RGBA{config.SelectionR, config.SelectionG, config.SelectionB, config.SelectionA}
	startMark  = color.RGBA{config.StartMarkerR, config.StartMarkerG, config.StartMarkerB, 255}
	endMark    = color.RGBA{config.EndMarkerR, config.EndMarkerG, config.EndMarkerB, 255}
)

// Render paints the full surface. Bar half-heights are proportional to
// bucket amplitude and capped at half the surface height on each side of
// center; envelope values above full scale saturate here, not in the
// downsampler.
func Render(env waveform.Envelope, sel selection.Selection, playheadTime, total float64, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawEnvelope(img, env, width, height)
	drawSelection(img, sel, total, width, height)
	if total > 0 {
		x := int(playheadTime / total * float64(width))
		vline(img, x, 0, height, playhead)
	}
	return img
}

func drawEnvelope(img *image.RGBA, env waveform.Envelope, width, height int) {
	if len(env) == 0 {
		return
	}
	centerY := height / 2
	maxHalf := height / 2
	barW := width / len(env)
	if barW < 1 {
		barW = 1
	}

	for i, v := range env {
		half := int(v / config.EnvelopeGain * float64(maxHalf))
		if half > maxHalf {
			half = maxHalf
		}
		if half < 1 && v > 0 {
			half = 1
		}
		x0 := i * barW
		// 1px gap between bars, matching the reference look
		x1 := x0 + barW - 1
		if x1 <= x0 {
			x1 = x0 + 1
		}
		rect := image.Rect(x0, centerY-half, x1, centerY+half)
		draw.Draw(img, rect, image.NewUniform(waveColor), image.Point{}, draw.Src)
	}
}

func drawSelection(img *image.RGBA, sel selection.Selection, total float64, width, height int) {
	if total <= 0 {
		return
	}
	x0 := int(sel.Start / total * float64(width))
	x1 := int(sel.End() / total * float64(width))

	// Translucent overlay across the selected range
	rect := image.Rect(x0, 0, x1, height)
	draw.Draw(img, rect, image.NewUniform(overlay), image.Point{}, draw.Over)

	// Distinctly colored edge markers so the drag targets are unambiguous
	vline(img, x0, 0, height, startMark)
	vline(img, x0+1, 0, height, startMark)
	vline(img, x1-1, 0, height, endMark)
	vline(img, x1, 0, height, endMark)

	label(img, x0+4, height-4, timefmt.Seconds(sel.Start), startMark)
	label(img, x1-44, height-4, timefmt.Seconds(sel.End()), endMark)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	for y := y0; y < y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

func label(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
