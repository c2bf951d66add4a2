// Package encoder serializes an extracted segment into a self-contained
// uncompressed WAV container for upload.
package encoder

import (
	"encoding/binary"
	"fmt"

	"github.com/wavseek/tunesnip/internal/audio"
)

const headerSize = 44

// Encode writes the segment as canonical RIFF/WAVE bytes: 16-bit integer
// PCM, little-endian, frame-interleaved. The layout is byte-exact:
//
//	0  "RIFF"            12 "fmt "            22 numChannels (u16)
//	4  36+dataSize (u32) 16 16 (u32)          24 sampleRate (u32)
//	8  "WAVE"            20 audioFormat=1     28 byteRate (u32)
//	32 blockAlign (u16)  34 bitsPerSample=16  36 "data"
//	40 dataSize (u32)    44.. samples
func Encode(seg *audio.Segment) ([]byte, error) {
	numChans := seg.NumChannels()
	if numChans < 1 {
		return nil, fmt.Errorf("segment has no channels")
	}
	frames := seg.NumFrames()
	dataSize := frames * numChans * 2
	if uint64(dataSize) > 1<<32-1-36 {
		return nil, fmt.Errorf("segment too large for WAV container: %d frames", frames)
	}

	buf := make([]byte, headerSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // integer PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(numChans))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(seg.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(seg.SampleRate*numChans*2))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(numChans*2))
	binary.LittleEndian.PutUint16(buf[34:36], 16)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	interleave(buf[headerSize:], seg.Channels)
	return buf, nil
}

// PCM16 converts channel-major float samples into raw interleaved 16-bit LE
// PCM, the same payload Encode places after the header. Preview playback
// feeds these bytes straight to the audio output.
func PCM16(channels [][]float64) []byte {
	if len(channels) == 0 {
		return nil
	}
	buf := make([]byte, len(channels[0])*len(channels)*2)
	interleave(buf, channels)
	return buf
}

func interleave(dst []byte, channels [][]float64) {
	numChans := len(channels)
	frames := 0
	if numChans > 0 {
		frames = len(channels[0])
	}
	off := 0
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			binary.LittleEndian.PutUint16(dst[off:], uint16(sampleToInt16(channels[ch][i])))
			off += 2
		}
	}
}

// sampleToInt16 clamps s to [-1,1] and scales asymmetrically: negative
// samples by 32768, positive by 32767, truncating toward zero. The asymmetry
// must be preserved exactly for bit-compatible output.
func sampleToInt16(s float64) int16 {
	if s < -1 {
		s = -1
	} else if s > 1 {
		s = 1
	}
	if s < 0 {
		return int16(s * 32768)
	}
	return int16(s * 32767)
}
