// SPDX-License-Identifier: EPL-2.0

package timeline

import "github.com/google/uuid"

// Kind classifies a track by the role its clip plays in the spot.
type Kind string

const (
	KindVoice   Kind = "voice"
	KindMusic   Kind = "music"
	KindSoundFX Kind = "soundfx"
)

// Reserved PlayAfter values. Anything else is treated as a track id, or
// failing that a substring match against track labels.
const (
	PlayAfterStart    = "start"
	PlayAfterPrevious = "previous"
)

// Default linear gain applied when a track carries none of its own.
const (
	DefaultVoiceGain   = 1.0
	DefaultMusicGain   = 0.25
	DefaultSoundFXGain = 0.7
)

// DefaultGain returns the mixing gain used for a kind when a track does
// not set one explicitly.
func DefaultGain(kind Kind) float64 {
	switch kind {
	case KindMusic:
		return DefaultMusicGain
	case KindSoundFX:
		return DefaultSoundFXGain
	default:
		return DefaultVoiceGain
	}
}

// Track is one input clip with its placement hints. Tracks are built by
// the calling workflow and are immutable inputs to the resolver.
type Track struct {
	// ID is an opaque stable identifier, unique within one request.
	ID string

	// Kind selects default gain and placement behavior.
	Kind Kind

	// Label is a human-readable name; PlayAfter values that match no id
	// fall back to substring matching against labels.
	Label string

	// Source is the opaque reference of the clip's audio bytes. It keys
	// the duration cache and the decode cache.
	Source string

	// StartAt places the track at an absolute offset in seconds,
	// bypassing every other placement rule. Nil means unset.
	StartAt *float64

	// Duration overrides the measured clip length in seconds when
	// positive (e.g. trimming a long music bed).
	Duration float64

	// PlayAfter chains this track behind another: "start", "previous",
	// a track id, or a label fragment.
	PlayAfter string

	// Overlap pulls the start earlier into the referenced track's tail,
	// in seconds. Never negative.
	Overlap float64

	// ConcurrentGroup makes all tracks sharing the same non-empty group
	// id start at the same instant.
	ConcurrentGroup string

	// Gain is a linear multiplier; zero means the kind default.
	Gain float64
}

// NewTrack builds a track with a generated id.
func NewTrack(kind Kind, source string) Track {
	return Track{
		ID:     uuid.NewString(),
		Kind:   kind,
		Source: source,
	}
}

// StartAtSeconds is a convenience for building explicit placements.
func (t Track) StartAtSeconds(s float64) Track {
	t.StartAt = &s
	return t
}

// EffectiveGain returns the track's gain, falling back to its kind default.
func (t Track) EffectiveGain() float64 {
	if t.Gain > 0 {
		return t.Gain
	}

	return DefaultGain(t.Kind)
}

// ResolvedTrack is a Track with its computed position on the timeline.
type ResolvedTrack struct {
	Track

	// StartTime is the absolute start in seconds, never negative.
	StartTime float64

	// ActualDuration is the track's length on the timeline in seconds,
	// always positive.
	ActualDuration float64
}

// End returns the absolute end time of the track in seconds.
func (r ResolvedTrack) End() float64 {
	return r.StartTime + r.ActualDuration
}

// Timeline is the fully resolved placement of every track.
type Timeline struct {
	Tracks []ResolvedTrack

	// TotalDuration is the maximum end time over all tracks, in seconds.
	TotalDuration float64
}

// Durations maps a track's opaque source reference to its measured clip
// length in seconds. It is populated once per request from the decoded
// buffers and handed to the resolver explicitly.
type Durations map[string]float64
