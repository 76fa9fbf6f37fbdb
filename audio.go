package folio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Speech audio format: raw signed 16-bit little-endian PCM, mono, 24 kHz.
const (
	AudioChannels   = 1
	AudioSampleRate = 24000

	// pcmScale maps int16 to [-1, 1). The maximum positive sample decodes to
	// 32767/32768, not 1.0.
	pcmScale = 32768.0
)

// AudioBuffer is a decoded, immutable sample buffer ready for playback.
type AudioBuffer struct {
	Channels   int
	SampleRate int
	Samples    []float32
}

// Frames returns the number of sample frames.
func (b AudioBuffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length of the buffer.
func (b AudioBuffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// DecodeAudio decodes a base64 PCM16 payload into an AudioBuffer. Empty input
// yields a zero-length buffer. Odd-length payloads are rejected with
// ErrValidation because the trailing byte cannot form a sample.
func DecodeAudio(payload string) (AudioBuffer, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return AudioBuffer{}, fmt.Errorf("decode audio payload: %v: %w", err, ErrValidation)
	}
	return DecodePCM16(raw)
}

// DecodePCM16 converts raw little-endian PCM16 mono bytes to samples.
func DecodePCM16(raw []byte) (AudioBuffer, error) {
	if len(raw)%2 != 0 {
		return AudioBuffer{}, fmt.Errorf("odd-length PCM16 payload (%d bytes): %w", len(raw), ErrValidation)
	}
	frames := len(raw) / 2 / AudioChannels
	samples := make([]float32, frames*AudioChannels)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(float64(s) / pcmScale)
	}
	return AudioBuffer{
		Channels:   AudioChannels,
		SampleRate: AudioSampleRate,
		Samples:    samples,
	}, nil
}

// EncodePCM16 is the inverse of DecodePCM16. Samples are scaled by 32768,
// rounded to nearest and clamped to the int16 range.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, f := range samples {
		v := math.Round(float64(f) * pcmScale)
		v = max(math.MinInt16, min(math.MaxInt16, v))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}
