// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/admix/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation over a four-frame sliding window. Works on interleaved
// samples; preserves channel count. A one-pole low-pass is applied when
// downsampling to tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	channels int
	step     float64 // source frames consumed per output frame

	// Sliding window: win[0]=t-1, win[1]=t0, win[2]=t+1, win[3]=t+2.
	// Interpolation happens between win[1] and win[2].
	win  [4][]float32
	have [4]bool
	pos  float64 // fractional position in [0,1) between win[1] and win[2]

	frameBuf []float32
	primed   bool
	eof      bool

	lpState []float32
	lpAlpha float32
	lpInit  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		step:     float64(src.SampleRate()) / float64(dstRate),
		frameBuf: make([]float32, channels),
		lpState:  make([]float32, channels),
	}

	if r.step > 1.0 {
		// Downsampling: cheap one-pole smoothing before interpolation.
		r.lpAlpha = 0.5
	}

	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// readFrame pulls one interleaved frame from the source into frameBuf.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.frameBuf)
	if n > 0 && r.lpAlpha > 0 {
		if !r.lpInit {
			// Seed filter state with the first frame to avoid a warm-up
			// transient at the clip head.
			copy(r.lpState, r.frameBuf)
			r.lpInit = true
		}
		for c := 0; c < r.channels; c++ {
			r.frameBuf[c] = r.lpAlpha*r.frameBuf[c] + (1-r.lpAlpha)*r.lpState[c]
			r.lpState[c] = r.frameBuf[c]
		}
	}

	if err == io.EOF {
		r.eof = true
		if n == 0 {
			return false, io.EOF
		}
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	return n > 0, nil
}

// advance shifts the window one source frame to the right.
func (r *Resampler) advance() error {
	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.have[0], r.have[1], r.have[2] = r.have[1], r.have[2], r.have[3]

	got, err := r.readFrame()
	if got {
		copy(r.win[3], r.frameBuf)
		r.have[3] = true
		return nil
	}

	r.have[3] = false
	if err != nil && err != io.EOF {
		return err
	}

	if !r.have[1] || !r.have[2] {
		return io.EOF
	}

	return nil
}

// prime fills the initial window. The first source frame lands in win[1]
// so output starts at the stream head, with win[0] duplicated behind it.
func (r *Resampler) prime() error {
	got, err := r.readFrame()
	if !got {
		if err == nil {
			err = io.EOF
		}
		return err
	}

	copy(r.win[0], r.frameBuf)
	copy(r.win[1], r.frameBuf)
	r.have[0], r.have[1] = true, true

	for i := 2; i < 4; i++ {
		got, err = r.readFrame()
		if got {
			copy(r.win[i], r.frameBuf)
			r.have[i] = true
			continue
		}

		if err != nil && err != io.EOF {
			return err
		}

		// Short clip: extend the last known frame.
		copy(r.win[i], r.win[i-1])
		r.have[i] = r.have[i-1]
	}

	r.primed = true

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.have[1] || !r.have[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		for c := 0; c < r.channels; c++ {
			y0 := r.win[1][c]
			if r.have[0] {
				y0 = r.win[0][c]
			}

			y3 := r.win[2][c]
			if r.have[3] {
				y3 = r.win[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, r.win[1][c], r.win[2][c], y3, alpha)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
