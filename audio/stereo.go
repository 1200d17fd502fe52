// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMapper conforms any Source to exactly two output channels.
// Mono input is duplicated into both channels, stereo passes through,
// and wider layouts are folded down by averaging even- and odd-indexed
// channels into the left and right buss respectively.
type StereoMapper struct {
	src Source
	tmp []float32
}

func NewStereoMapper(src Source) *StereoMapper {
	return &StereoMapper{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *StereoMapper) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMapper) Channels() int   { return 2 }
func (m *StereoMapper) BufSize() int    { return m.src.BufSize() }

func (m *StereoMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *StereoMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}

	channels := m.src.Channels()
	if channels == 2 {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	needed := frames * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, needed)
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	got := n / channels

	switch channels {
	case 1:
		for f := 0; f < got; f++ {
			v := m.tmp[f]
			dst[2*f] = v
			dst[2*f+1] = v
		}
	default:
		// Fold even-indexed channels left, odd-indexed right.
		left := (channels + 1) / 2
		right := channels / 2
		for f := 0; f < got; f++ {
			base := f * channels
			var l, r float32
			for c := 0; c < channels; c += 2 {
				l += m.tmp[base+c]
			}
			for c := 1; c < channels; c += 2 {
				r += m.tmp[base+c]
			}
			dst[2*f] = l / float32(left)
			dst[2*f+1] = r / float32(right)
		}
	}

	return got * 2, err
}
