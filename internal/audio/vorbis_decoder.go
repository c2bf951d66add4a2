package audio

import (
	"bytes"
	"fmt"

	"github.com/jfreymuth/oggvorbis"
)

// decodeVorbis decodes Ogg Vorbis bytes into an Asset.
func decodeVorbis(data []byte) (*Asset, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if format.Channels < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrCorruptData)
	}

	numChans := format.Channels
	frames := len(samples) / numChans
	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			channels[ch][i] = float64(samples[i*numChans+ch])
		}
	}

	return &Asset{
		SampleRate: format.SampleRate,
		Channels:   channels,
	}, nil
}
