// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"fmt"
	"strings"
)

// Resolver turns an unordered collection of tracks with optional placement
// hints into a fully resolved timeline. Resolution is deterministic for a
// given input and duration table: tracks are considered in a fixed pass
// order (explicit starts, voice chain, concurrent groups, music, sound
// effects, fallback) and every decision is keyed by track id, never by
// slice position.
type Resolver struct {
	policy Policy
}

func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Resolve computes each track's start time and duration. A playAfter
// value that matches nothing degrades to the default placement for the
// track's kind instead of failing the request.
func (r *Resolver) Resolve(tracks []Track, durations Durations) (*Timeline, error) {
	s := &session{
		policy:    r.policy,
		tracks:    tracks,
		durations: durations,
		placed:    make(map[string]placement, len(tracks)),
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.placeExplicit()
	s.placeVoiceChain()
	s.placeConcurrentGroups()
	s.placeMusic()
	s.placeSoundEffects()
	s.placeRemaining()

	return s.timeline(), nil
}

// placement is a track's resolved position, kept in the id-keyed map
// that replaces any reliance on slice order.
type placement struct {
	start float64
	dur   float64
}

func (p placement) end() float64 { return p.start + p.dur }

type session struct {
	policy    Policy
	tracks    []Track
	durations Durations
	placed    map[string]placement
}

func (s *session) validate() error {
	seen := make(map[string]struct{}, len(s.tracks))

	for _, t := range s.tracks {
		if t.ID == "" {
			return ErrEmptyTrackID
		}

		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateTrackID, t.ID)
		}
		seen[t.ID] = struct{}{}

		if t.Duration <= 0 {
			if _, ok := s.durations[t.Source]; !ok {
				return fmt.Errorf("%w: track %s source %s", ErrUnknownDuration, t.ID, t.Source)
			}
		}
	}

	return nil
}

// durationOf returns the track's length: the explicit override when set,
// otherwise the measured clip duration, clamped to the policy floor.
func (s *session) durationOf(t Track) float64 {
	d := t.Duration
	if d <= 0 {
		d = s.durations[t.Source]
	}

	if d < s.policy.MinDuration {
		d = s.policy.MinDuration
	}

	return d
}

func (s *session) place(id string, start, dur float64) {
	if start < 0 {
		start = 0
	}

	s.placed[id] = placement{start: start, dur: dur}
}

func (s *session) isPlaced(id string) bool {
	_, ok := s.placed[id]
	return ok
}

// maxEnd returns the latest end time over every placed track, or 0.
func (s *session) maxEnd() float64 {
	var m float64
	for _, p := range s.placed {
		if p.end() > m {
			m = p.end()
		}
	}

	return m
}

// voiceSpan returns the earliest start and latest end over placed voice
// tracks. ok is false when no voice track has been placed.
func (s *session) voiceSpan() (start, end float64, ok bool) {
	first := true

	for _, t := range s.tracks {
		if t.Kind != KindVoice {
			continue
		}

		p, placed := s.placed[t.ID]
		if !placed {
			continue
		}

		if first || p.start < start {
			start = p.start
		}
		if first || p.end() > end {
			end = p.end()
		}
		first = false
	}

	return start, end, !first
}

// findRef resolves a playAfter value against already-placed tracks: an
// exact id match wins, then a case-insensitive label fragment match.
func (s *session) findRef(ref string) (placement, bool) {
	if p, ok := s.placed[ref]; ok {
		return p, true
	}

	lower := strings.ToLower(ref)
	for _, t := range s.tracks {
		if t.Label == "" || !s.isPlaced(t.ID) {
			continue
		}

		if strings.Contains(strings.ToLower(t.Label), lower) {
			return s.placed[t.ID], true
		}
	}

	return placement{}, false
}

// afterRef computes "end of ref minus overlap", never preceding the
// referenced track's own start.
func afterRef(ref placement, overlap float64) float64 {
	start := ref.end() - overlap
	if start < ref.start {
		start = ref.start
	}

	return start
}

// placeExplicit pins every track carrying an absolute start time.
func (s *session) placeExplicit() {
	for _, t := range s.tracks {
		if t.StartAt == nil {
			continue
		}

		s.place(t.ID, *t.StartAt, s.durationOf(t))
	}
}

// placeVoiceChain concatenates ungrouped voice tracks: the first lands at
// zero, each later one follows the previous (or its playAfter reference)
// with any requested overlap.
func (s *session) placeVoiceChain() {
	havePrev := false
	var prev placement

	for _, t := range s.tracks {
		if t.Kind != KindVoice || t.ConcurrentGroup != "" {
			continue
		}

		if s.isPlaced(t.ID) {
			// Explicitly placed voice still anchors the chain.
			prev = s.placed[t.ID]
			havePrev = true
			continue
		}

		var start float64

		switch {
		case t.PlayAfter == "" || t.PlayAfter == PlayAfterStart:
			if t.PlayAfter == "" && havePrev {
				start = prev.end()
			}
		case t.PlayAfter == PlayAfterPrevious:
			if havePrev {
				start = afterRef(prev, t.Overlap)
			}
		default:
			if ref, ok := s.findRef(t.PlayAfter); ok {
				start = afterRef(ref, t.Overlap)
			} else if havePrev {
				// Dangling reference: degrade to plain concatenation.
				start = prev.end()
			}
		}

		s.place(t.ID, start, s.durationOf(t))
		prev = s.placed[t.ID]
		havePrev = true
	}
}

// placeConcurrentGroups starts every member of a group at the same
// instant, derived from the group's first member.
func (s *session) placeConcurrentGroups() {
	done := make(map[string]struct{})

	for _, t := range s.tracks {
		group := t.ConcurrentGroup
		if group == "" || s.isPlaced(t.ID) {
			continue
		}

		if _, handled := done[group]; handled {
			continue
		}
		done[group] = struct{}{}

		start := s.groupStart(t)

		for _, m := range s.tracks {
			if m.ConcurrentGroup != group || s.isPlaced(m.ID) {
				continue
			}

			s.place(m.ID, start, s.durationOf(m))
		}
	}
}

// groupStart derives a concurrent group's start from its first unplaced
// member: its playAfter rule when resolvable, zero on an empty timeline,
// and after the latest placed track otherwise.
func (s *session) groupStart(first Track) float64 {
	switch first.PlayAfter {
	case PlayAfterStart:
		return 0
	case "":
		// fall through to the timeline default below
	case PlayAfterPrevious:
		end := s.maxEnd()
		start := end - first.Overlap
		if start < 0 {
			start = 0
		}
		return start
	default:
		if ref, ok := s.findRef(first.PlayAfter); ok {
			return afterRef(ref, first.Overlap)
		}
	}

	if len(s.placed) == 0 {
		return 0
	}

	return s.maxEnd()
}

// placeMusic starts beds at zero and trims them shortly past the last
// voice track, keeping the tail from running long after the copy ends.
func (s *session) placeMusic() {
	_, voiceEnd, haveVoice := s.voiceSpan()

	for _, t := range s.tracks {
		if t.Kind != KindMusic || s.isPlaced(t.ID) {
			continue
		}

		dur := s.durationOf(t)
		if haveVoice {
			if limit := voiceEnd + s.policy.MusicTail; dur > limit {
				dur = limit
			}
		}

		s.place(t.ID, 0, dur)
	}
}

// placeSoundEffects applies the effect rules in order: explicit hints
// first, then the sting and even-distribution conventions for anything
// left untimed.
func (s *session) placeSoundEffects() {
	var untimed []Track

	for i, t := range s.tracks {
		if t.Kind != KindSoundFX || s.isPlaced(t.ID) {
			continue
		}

		switch {
		case t.PlayAfter == PlayAfterStart:
			s.place(t.ID, 0, s.durationOf(t))

		case t.PlayAfter == PlayAfterPrevious:
			s.place(t.ID, s.afterPreceding(i, t.Overlap), s.durationOf(t))

		case t.PlayAfter != "":
			if ref, ok := s.findRef(t.PlayAfter); ok {
				s.place(t.ID, afterRef(ref, t.Overlap), s.durationOf(t))
				break
			}

			// Dangling reference: preserved legacy behavior is to drop
			// the effect after the voice-over instead of failing.
			if _, voiceEnd, ok := s.voiceSpan(); ok {
				s.place(t.ID, voiceEnd, s.durationOf(t))
				break
			}

			untimed = append(untimed, t)

		default:
			untimed = append(untimed, t)
		}
	}

	s.placeUntimedEffects(untimed)
}

// afterPreceding finds the nearest earlier input track that is already
// placed and schedules behind it; the first effect in input order chains
// behind the latest placed track instead.
func (s *session) afterPreceding(idx int, overlap float64) float64 {
	for j := idx - 1; j >= 0; j-- {
		if p, ok := s.placed[s.tracks[j].ID]; ok {
			return afterRef(p, overlap)
		}
	}

	start := s.maxEnd() - overlap
	if start < 0 {
		start = 0
	}

	return start
}

// placeUntimedEffects implements the two editorial conventions for
// effects with no usable hints: a single effect becomes a sting placed
// just before the final voice track ends, while several effects are
// spread evenly across the span by ordinal position.
func (s *session) placeUntimedEffects(untimed []Track) {
	if len(untimed) == 0 {
		return
	}

	voiceStart, voiceEnd, haveVoice := s.voiceSpan()

	if len(untimed) == 1 {
		t := untimed[0]

		if haveVoice {
			s.place(t.ID, voiceEnd-s.policy.StingLead, s.durationOf(t))
		} else {
			s.place(t.ID, 0, s.durationOf(t))
		}

		return
	}

	spanStart, spanEnd := voiceStart, voiceEnd
	if !haveVoice {
		spanStart, spanEnd = 0, s.maxEnd()
	}

	span := spanEnd - spanStart
	n := len(untimed)

	for i, t := range untimed {
		offset := span * float64(i+1) / float64(n+1)
		s.place(t.ID, spanStart+offset, s.durationOf(t))
	}
}

// placeRemaining appends anything the earlier passes did not cover after
// the current end of the timeline.
func (s *session) placeRemaining() {
	end := s.maxEnd()

	for _, t := range s.tracks {
		if s.isPlaced(t.ID) {
			continue
		}

		dur := s.durationOf(t)
		s.place(t.ID, end, dur)
		end += dur
	}
}

// timeline assembles the result in input order.
func (s *session) timeline() *Timeline {
	tl := &Timeline{
		Tracks: make([]ResolvedTrack, 0, len(s.tracks)),
	}

	for _, t := range s.tracks {
		p := s.placed[t.ID]

		tl.Tracks = append(tl.Tracks, ResolvedTrack{
			Track:          t,
			StartTime:      p.start,
			ActualDuration: p.dur,
		})

		if p.end() > tl.TotalDuration {
			tl.TotalDuration = p.end()
		}
	}

	return tl
}
