package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Decode decodes raw file bytes into an Asset, dispatching on the file
// extension of name. Channels are preserved, not downmixed.
func Decode(data []byte, name string) (*Asset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return decodeWAV(data)
	case ".mp3":
		return decodeMP3(data)
	case ".flac":
		return decodeFLAC(data)
	case ".ogg":
		return decodeVorbis(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string) (*Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// deinterleave splits interleaved frames into channel-major buffers, scaling
// each sample by 1/scale.
func deinterleave(data []int, numChans int, scale float64) [][]float64 {
	frames := len(data) / numChans
	channels := make([][]float64, numChans)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			channels[ch][i] = float64(data[i*numChans+ch]) / scale
		}
	}
	return channels
}
