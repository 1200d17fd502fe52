// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/timeline"
)

// Renderer sums resolved tracks into a single master buffer. All clips
// handed to it must already be conformed to its sample rate and channel
// count; conformance happens at decode time, not here.
type Renderer struct {
	sampleRate int
	channels   int
}

func NewRenderer(sampleRate, channels int) (*Renderer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	if channels <= 0 {
		return nil, audio.ErrInvalidChannels
	}

	return &Renderer{
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

func (r *Renderer) SampleRate() int { return r.sampleRate }
func (r *Renderer) Channels() int   { return r.channels }

// Render mixes every track of the timeline additively into one buffer.
// Track positions are converted to frame offsets by rounding, each clip
// is truncated to its resolved duration, and samples are scaled by the
// track's effective gain. The sum is left unclamped; overshoot beyond
// [-1, 1] is dealt with by the loudness stage before encoding.
func (r *Renderer) Render(tl *timeline.Timeline, clips *audio.Cache) (*audio.SampleBuffer, error) {
	frames := r.totalFrames(tl, clips)
	out := audio.NewSampleBuffer(r.sampleRate, r.channels, frames)

	for _, rt := range tl.Tracks {
		clip, ok := clips.Get(rt.Source)
		if !ok {
			return nil, fmt.Errorf("%w: track %s source %s", ErrMissingClip, rt.ID, rt.Source)
		}

		if clip.SampleRate != r.sampleRate || clip.Channels != r.channels {
			return nil, fmt.Errorf("%w: track %s has %d Hz / %d ch, want %d Hz / %d ch",
				ErrClipMismatch, rt.ID,
				clip.SampleRate, clip.Channels,
				r.sampleRate, r.channels)
		}

		r.mixTrack(out, rt, clip)
	}

	return out, nil
}

// mixTrack adds one clip into the master at its resolved position.
func (r *Renderer) mixTrack(out *audio.SampleBuffer, rt timeline.ResolvedTrack, clip *audio.SampleBuffer) {
	offset := r.frameOffset(rt.StartTime)
	frames := clip.Frames()

	if limit := r.frameOffset(rt.ActualDuration); frames > limit {
		frames = limit
	}

	if avail := out.Frames() - offset; frames > avail {
		frames = avail
	}

	if frames <= 0 {
		return
	}

	gain := float32(rt.EffectiveGain())
	dst := out.Data[offset*r.channels:]
	src := clip.Data[:frames*r.channels]

	for i, v := range src {
		dst[i] += v * gain
	}
}

// totalFrames sizes the master so every track fits: the rounded total
// duration, extended if per-track rounding lands a clip past it.
func (r *Renderer) totalFrames(tl *timeline.Timeline, clips *audio.Cache) int {
	frames := r.frameOffset(tl.TotalDuration)

	for _, rt := range tl.Tracks {
		clip, ok := clips.Get(rt.Source)
		if !ok {
			continue
		}

		n := clip.Frames()
		if limit := r.frameOffset(rt.ActualDuration); n > limit {
			n = limit
		}

		if end := r.frameOffset(rt.StartTime) + n; end > frames {
			frames = end
		}
	}

	return frames
}

func (r *Renderer) frameOffset(seconds float64) int {
	return int(math.Round(seconds * float64(r.sampleRate)))
}
