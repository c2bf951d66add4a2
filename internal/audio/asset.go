package audio

import "errors"

var (
	// ErrUnsupportedFormat is returned when a file extension maps to no decoder.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrCorruptData is returned when a decoder rejects the file contents.
	ErrCorruptData = errors.New("corrupt audio data")
)

// IsUnsupported reports whether err came from an unrecognized file format.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsCorrupt reports whether err came from undecodable file contents.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// Asset is a fully decoded audio file: one float64 slice per channel, all of
// equal length. Assets are immutable once decoded; a new file pick replaces
// the asset wholesale.
type Asset struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (a *Asset) NumChannels() int {
	return len(a.Channels)
}

// NumFrames returns the number of sample frames per channel.
func (a *Asset) NumFrames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Duration returns the asset length in seconds.
func (a *Asset) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(a.NumFrames()) / float64(a.SampleRate)
}

// Segment is a deep-copied slice of an Asset's channels. Its lifetime is
// independent of the source asset.
type Segment struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (s *Segment) NumChannels() int {
	return len(s.Channels)
}

// NumFrames returns the number of sample frames per channel.
func (s *Segment) NumFrames() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}
