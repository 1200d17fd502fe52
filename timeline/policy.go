// SPDX-License-Identifier: EPL-2.0

package timeline

// Policy collects the tunable placement conventions the resolver applies
// when tracks carry no explicit hints. The defaults reproduce the
// editorial feel of a produced radio spot: the music bed runs a few
// seconds past the last word, and a lone untimed effect lands as a sting
// just before the voice-over finishes.
type Policy struct {
	// MusicTail extends the music bed past the last voice track's end,
	// in seconds, before the bed is trimmed.
	MusicTail float64

	// StingLead places a single untimed effect this many seconds before
	// the final voice track's end.
	StingLead float64

	// MinDuration is the floor applied to every resolved duration so a
	// zero-length measurement can never produce an empty track.
	MinDuration float64
}

// DefaultPolicy returns the standard placement conventions.
func DefaultPolicy() Policy {
	return Policy{
		MusicTail:   3.0,
		StingLead:   0.5,
		MinDuration: 0.01,
	}
}
