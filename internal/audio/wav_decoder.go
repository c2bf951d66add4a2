package audio

import (
	"bytes"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeWAV decodes WAV bytes into an Asset.
func decodeWAV(data []byte) (*Asset, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrCorruptData)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read PCM data: %v", ErrCorruptData, err)
	}

	numChans := buf.Format.NumChannels
	if numChans < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrCorruptData)
	}

	maxVal := float64(goaudio.IntMaxSignedValue(int(decoder.BitDepth)))
	return &Asset{
		SampleRate: buf.Format.SampleRate,
		Channels:   deinterleave(buf.Data, numChans, maxVal),
	}, nil
}
