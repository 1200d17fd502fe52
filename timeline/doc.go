// SPDX-License-Identifier: EPL-2.0

// Package timeline resolves track placement for a mixdown request.
//
// A Track describes one produced clip (spoken segment, music bed, sound
// effect) together with optional placement hints: an absolute start, a
// playAfter chain reference, an overlap into the referenced track's tail,
// or membership in a concurrent group. The Resolver turns a collection of
// such tracks into a Timeline in which every track has a concrete start
// time and duration.
//
// # Pass Order
//
// Placement happens in a fixed priority order, each track placed exactly
// once:
//
//  1. Tracks with an absolute start time are pinned verbatim.
//  2. Ungrouped voice tracks chain one after another, honoring
//     playAfter references and overlaps.
//  3. Concurrent groups start together, at a time derived from the
//     group's first member.
//  4. Music beds start at zero and are trimmed shortly past the last
//     voice track.
//  5. Sound effects follow their hints; leftovers become either a sting
//     before the final voice track or an even spread across the span.
//  6. Anything else is appended after the current end of the timeline.
//
// The resolver never fails on a playAfter value that matches no track;
// the hint degrades to the default placement for the track's kind. The
// heuristic conventions (music tail, sting lead) are carried in Policy
// rather than hard-coded, so callers can tune them.
//
// # Durations
//
// Track lengths come from an explicitly passed Durations table measured
// by decoding each source once; the resolver holds no shared mutable
// state and is safe to reuse across requests.
package timeline
