// Package waveform turns decoded samples into the fixed-resolution amplitude
// envelope used for display. The envelope is computed once per asset and
// cached; rendering only ever reads it.
package waveform

import (
	"math"

	"github.com/wavseek/tunesnip/internal/config"
)

// Envelope is an ordered sequence of scaled amplitude buckets.
type Envelope []float64

// BuildEnvelope partitions samples into buckets contiguous blocks of
// floor(len/buckets) samples and computes the mean absolute amplitude of each
// block, scaled by config.EnvelopeGain. Trailing remainder samples are
// dropped. Values are not clipped here; the renderer caps bar heights.
func BuildEnvelope(samples []float64, buckets int) Envelope {
	env := make(Envelope, buckets)
	if buckets <= 0 {
		return env
	}

	block := len(samples) / buckets
	if block == 0 {
		return env
	}

	for i := 0; i < buckets; i++ {
		var sum float64
		base := i * block
		for j := base; j < base+block; j++ {
			sum += math.Abs(samples[j])
		}
		env[i] = sum / float64(block) * config.EnvelopeGain
	}
	return env
}

// FromAsset builds the default-resolution envelope from channel 0.
func FromAsset(channel0 []float64) Envelope {
	return BuildEnvelope(channel0, config.EnvelopeBuckets)
}
