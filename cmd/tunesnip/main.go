package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/wavseek/tunesnip/internal/audio"
	"github.com/wavseek/tunesnip/internal/cli"
	"github.com/wavseek/tunesnip/internal/config"
	"github.com/wavseek/tunesnip/internal/encoder"
	"github.com/wavseek/tunesnip/internal/renderer"
	"github.com/wavseek/tunesnip/internal/selection"
	"github.com/wavseek/tunesnip/internal/ui"
	"github.com/wavseek/tunesnip/internal/waveform"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Run      RunCmd      `cmd:"" default:"1" help:"Open the library picker and waveform editor"`
	Clip     ClipCmd     `cmd:"" help:"Extract a range to a WAV file without the TUI"`
	Snapshot SnapshotCmd `cmd:"" help:"Render the waveform and selection to a PNG"`
	Version  bool        `help:"Show version information"`
}

// RunCmd opens the interactive TUI.
type RunCmd struct {
	Library string `arg:"" optional:"" help:"Library directory to scan (default: TUNESNIP_LIBRARY_DIR)"`
}

func (c *RunCmd) Run(cfg config.Service) error {
	if c.Library != "" {
		cfg.LibraryDir = c.Library
	}
	return ui.Run(cfg)
}

// ClipCmd runs the extract/encode pipeline headlessly.
type ClipCmd struct {
	Input    string  `arg:"" help:"Input audio file (wav, mp3, flac, ogg)"`
	Output   string  `arg:"" help:"Output WAV file"`
	Start    float64 `help:"Selection start in seconds" default:"0"`
	Duration float64 `help:"Selection length in seconds" default:"30"`
}

func (c *ClipCmd) Run(cfg config.Service) error {
	asset, err := audio.DecodeFile(c.Input)
	if err != nil {
		return err
	}

	sel := selection.Clamped(c.Start, c.Duration, asset.Duration())
	seg := audio.Extract(asset, sel.Start, sel.Duration)
	wav, err := encoder.Encode(seg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Output, wav, 0o644); err != nil {
		return err
	}
	cli.PrintSuccess(fmt.Sprintf("wrote %s (%d frames)", c.Output, seg.NumFrames()))
	return nil
}

// SnapshotCmd renders a single waveform frame, the way the editor would
// paint it, into a PNG.
type SnapshotCmd struct {
	Input    string  `arg:"" help:"Input audio file"`
	Output   string  `arg:"" help:"Output PNG file"`
	Start    float64 `help:"Selection start in seconds" default:"0"`
	Duration float64 `help:"Selection length in seconds" default:"30"`
	Playhead float64 `help:"Playhead position in seconds" default:"0"`
}

func (c *SnapshotCmd) Run(cfg config.Service) error {
	asset, err := audio.DecodeFile(c.Input)
	if err != nil {
		return err
	}

	env := waveform.FromAsset(asset.Channels[0])
	sel := selection.Clamped(c.Start, c.Duration, asset.Duration())
	img := renderer.Render(env, sel, c.Playhead, asset.Duration(), config.RenderWidth, config.RenderHeight)

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	cli.PrintSuccess("wrote " + c.Output)
	return nil
}

func main() {
	// Optional .env alongside the binary; real environment wins.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("tunesnip"),
		kong.Description("Snip a range out of an audio file and send it off for matching."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if err := ctx.Run(config.LoadService()); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
