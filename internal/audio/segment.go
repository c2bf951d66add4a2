package audio

import "math"

// Extract deep-copies the sample range [start, start+duration) seconds from
// the asset into a new Segment. The range is clamped to the available
// samples; any read past the end (unreachable while selection invariants
// hold) is zero-filled.
func Extract(a *Asset, start, duration float64) *Segment {
	rate := float64(a.SampleRate)
	startSample := int(math.Floor(start * rate))
	length := int(math.Floor(duration * rate))
	total := a.NumFrames()

	if startSample < 0 {
		startSample = 0
	}
	endSample := startSample + length
	if endSample > total {
		endSample = total
	}

	channels := make([][]float64, a.NumChannels())
	for ch, src := range a.Channels {
		dst := make([]float64, length)
		if startSample < endSample {
			copy(dst, src[startSample:endSample])
		}
		channels[ch] = dst
	}

	return &Segment{
		SampleRate: a.SampleRate,
		Channels:   channels,
	}
}
