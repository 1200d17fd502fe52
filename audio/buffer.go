// SPDX-License-Identifier: EPL-2.0

package audio

// SampleBuffer holds a fully decoded PCM clip as interleaved float32
// samples in [-1, 1]. It is the unit of exchange between the decode,
// mix and loudness stages.
type SampleBuffer struct {
	Data       []float32
	SampleRate int
	Channels   int
}

// NewSampleBuffer allocates a zero-filled (silent) buffer holding frames
// frames of interleaved audio.
func NewSampleBuffer(sampleRate, channels, frames int) *SampleBuffer {
	return &SampleBuffer{
		Data:       make([]float32, frames*channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Frames returns the number of per-channel sample frames in the buffer.
func (b *SampleBuffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}

	return len(b.Data) / b.Channels
}

// Duration returns the buffer length in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}

	return float64(b.Frames()) / float64(b.SampleRate)
}

// Clone returns a deep copy of the buffer. The loudness stage uses it to
// keep gain application from mutating the rendered master.
func (b *SampleBuffer) Clone() *SampleBuffer {
	data := make([]float32, len(b.Data))
	copy(data, b.Data)

	return &SampleBuffer{
		Data:       data,
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
	}
}
