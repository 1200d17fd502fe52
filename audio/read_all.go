// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// ReadAll drains src into a stereo SampleBuffer at sampleRate, building the
// conversion pipeline only where the source deviates from the target:
//
//  1. Resample with cubic interpolation when the rates differ
//  2. Map to two channels when the layout differs
//  3. Collect everything into one interleaved buffer
//
// The source is closed on return.
func ReadAll(src Source, sampleRate int) (*SampleBuffer, error) {
	if src.Channels() < 1 {
		return nil, ErrInvalidChannels
	}

	pipe := src
	defer src.Close()

	if pipe.SampleRate() != sampleRate {
		pipe = NewResampler(pipe, sampleRate)
	}
	if pipe.Channels() != 2 {
		pipe = NewStereoMapper(pipe)
	}

	// Assume ~2 seconds up front; grows as needed.
	data := make([]float32, 0, sampleRate*2*2)
	buf := make([]float32, 4096)

	for {
		n, err := pipe.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(data) == 0 {
		return nil, ErrEmptySource
	}

	return &SampleBuffer{
		Data:       data,
		SampleRate: sampleRate,
		Channels:   2,
	}, nil
}
