package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes MP3 bytes into an Asset. go-mp3 always outputs
// interleaved 16-bit stereo: L0 R0 L1 R1 ...
func decodeMP3(data []byte) (*Asset, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read MP3 stream: %v", ErrCorruptData, err)
	}

	frames := len(pcm) / 4 // 2 bytes per sample x 2 channels
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(pcm[i*4]) | int16(pcm[i*4+1])<<8
		r := int16(pcm[i*4+2]) | int16(pcm[i*4+3])<<8
		left[i] = float64(l) / 32768.0
		right[i] = float64(r) / 32768.0
	}

	return &Asset{
		SampleRate: decoder.SampleRate(),
		Channels:   [][]float64{left, right},
	}, nil
}
