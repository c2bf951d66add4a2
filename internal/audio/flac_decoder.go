package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// decodeFLAC decodes FLAC bytes into an Asset. FLAC frames carry one
// subframe per channel.
func decodeFLAC(data []byte) (*Asset, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	defer stream.Close()

	numChans := int(stream.Info.NChannels)
	if numChans < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrCorruptData)
	}
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, 0, stream.Info.NSamples)
	}

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse FLAC frame: %v", ErrCorruptData, err)
		}
		if len(frame.Subframes) != numChans {
			return nil, fmt.Errorf("%w: channel count changed mid-stream", ErrCorruptData)
		}
		for ch, sub := range frame.Subframes {
			for _, s := range sub.Samples {
				channels[ch] = append(channels[ch], float64(s)/scale)
			}
		}
	}

	return &Asset{
		SampleRate: int(stream.Info.SampleRate),
		Channels:   channels,
	}, nil
}
