// SPDX-License-Identifier: EPL-2.0

// Package admix turns a set of independently produced audio clips into
// one normalized, broadcast-ready file. Tracks carry placement hints
// (explicit starts, play-after chains, concurrent groups); the engine
// decodes every clip, resolves the hints into a timeline, renders the
// additive mix and normalizes it to a loudness target before encoding
// the result as 16-bit PCM WAV.
//
// The subpackages are usable on their own: audio holds the sample
// buffer and decoder plumbing, timeline the placement resolver, mix the
// renderer, loudness the BS.1770-style measurement and normalization,
// and formats the per-container decoders.
package admix
