// SPDX-License-Identifier: EPL-2.0

package loudness

// Target is the immutable delivery policy the normalizer drives the
// master toward: an integrated loudness level, a true-peak ceiling, and
// the fixed output format those figures were measured against.
type Target struct {
	// IntegratedLUFS is the wanted integrated loudness.
	IntegratedLUFS float64

	// MaxTruePeakDB is the ceiling in dBTP the output must not exceed.
	MaxTruePeakDB float64

	// SampleRate and Channels pin the output format. Buffers handed to
	// the normalizer must already match.
	SampleRate int
	Channels   int
}

// DefaultTarget returns the streaming delivery profile: -16 LUFS
// integrated, -2.0 dBTP ceiling, 44.1 kHz stereo.
func DefaultTarget() Target {
	return Target{
		IntegratedLUFS: -16.0,
		MaxTruePeakDB:  -2.0,
		SampleRate:     44100,
		Channels:       2,
	}
}
