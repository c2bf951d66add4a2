package player

import (
	"bytes"
	"testing"
)

// pcm16 packs int16 samples (already interleaved) as little-endian bytes.
func pcm16(samples ...int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}

func readInt16(buf []byte, i int) int16 {
	return int16(buf[i*2]) | int16(buf[i*2+1])<<8
}

func TestToDeviceFormatPassthrough(t *testing.T) {
	in := pcm16(100, -100, 200, -200) // 2 stereo frames at device rate
	out := toDeviceFormat(in, deviceRate, deviceChannels)
	if !bytes.Equal(out, in) {
		t.Error("Expected device-format input to pass through unchanged")
	}
}

func TestToDeviceFormatDuplicatesMono(t *testing.T) {
	in := pcm16(1000, -2000, 3000)
	out := toDeviceFormat(in, deviceRate, 1)

	if len(out) != 3*deviceChannels*2 {
		t.Fatalf("Expected %d bytes, got %d", 3*deviceChannels*2, len(out))
	}
	for frame := 0; frame < 3; frame++ {
		l := readInt16(out, frame*deviceChannels)
		r := readInt16(out, frame*deviceChannels+1)
		if l != r {
			t.Errorf("Frame %d: expected mono duplicated, got L=%d R=%d", frame, l, r)
		}
	}
}

func TestToDeviceFormatResamples(t *testing.T) {
	// 8 kHz mono, constant amplitude; at 48 kHz every interpolated sample
	// stays on the constant.
	const frames = 800
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = 5000
	}
	out := toDeviceFormat(pcm16(samples...), 8000, 1)

	wantFrames := frames * deviceRate / 8000
	if got := len(out) / (deviceChannels * 2); got != wantFrames {
		t.Fatalf("Expected %d output frames, got %d", wantFrames, got)
	}
	for i := 0; i < wantFrames*deviceChannels; i++ {
		if v := readInt16(out, i); v != 5000 {
			t.Fatalf("Sample %d: expected 5000, got %d", i, v)
		}
	}
}

func TestToDeviceFormatInterpolates(t *testing.T) {
	// 24 kHz mono ramp 0..6000; doubling the rate puts every odd output
	// frame halfway between its neighbours.
	out := toDeviceFormat(pcm16(0, 6000), 24000, 1)

	if got := len(out) / (deviceChannels * 2); got != 4 {
		t.Fatalf("Expected 4 output frames, got %d", got)
	}
	if v := readInt16(out, 1*deviceChannels); v != 3000 {
		t.Errorf("Expected midpoint 3000, got %d", v)
	}
}

func TestToDeviceFormatDropsExtraChannels(t *testing.T) {
	// One 3-channel frame; the third channel must not leak into the output.
	out := toDeviceFormat(pcm16(100, 200, 30000), deviceRate, 3)

	if got := len(out) / (deviceChannels * 2); got != 1 {
		t.Fatalf("Expected 1 output frame, got %d", got)
	}
	if l, r := readInt16(out, 0), readInt16(out, 1); l != 100 || r != 200 {
		t.Errorf("Expected L=100 R=200, got L=%d R=%d", l, r)
	}
}

func TestToDeviceFormatEmptyInput(t *testing.T) {
	if out := toDeviceFormat(nil, 8000, 1); len(out) != 0 {
		t.Errorf("Expected no output for empty input, got %d bytes", len(out))
	}
}
