// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"fmt"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/utils"
)

// Measurement reports what the normalizer did to one buffer. All gain
// figures are in dB; a LimiterGainDB of zero means the ceiling was never
// exceeded.
type Measurement struct {
	InputLUFS     float64
	InputPeakDB   float64
	GainDB        float64
	LimiterGainDB float64
	OutputLUFS    float64
	OutputPeakDB  float64
}

// Normalizer drives a rendered master to a loudness target: one uniform
// gain toward the integrated level, then a second brick-wall scale if
// the true peak still sits above the ceiling. Both stages are pure
// scalar multiplies with no lookahead or envelope.
type Normalizer struct {
	target Target
}

func NewNormalizer(target Target) *Normalizer {
	return &Normalizer{target: target}
}

func (n *Normalizer) Target() Target { return n.target }

// Normalize returns a normalized copy of the buffer and the measurement
// report. The input is never mutated. A silent buffer passes through
// with a finite gain and stays silent.
func (n *Normalizer) Normalize(buf *audio.SampleBuffer) (*audio.SampleBuffer, *Measurement, error) {
	if buf.SampleRate != n.target.SampleRate || buf.Channels != n.target.Channels {
		return nil, nil, fmt.Errorf("%w: buffer is %d Hz / %d ch, target wants %d Hz / %d ch",
			ErrTargetMismatch,
			buf.SampleRate, buf.Channels,
			n.target.SampleRate, n.target.Channels)
	}

	m := &Measurement{
		InputLUFS:   Integrated(buf),
		InputPeakDB: TruePeakDB(buf),
	}

	m.GainDB = n.target.IntegratedLUFS - m.InputLUFS

	out := buf.Clone()
	scale(out, utils.DBToLinear(m.GainDB))

	if peak := TruePeak(out); utils.LinearToDB(peak) > n.target.MaxTruePeakDB {
		limiter := utils.DBToLinear(n.target.MaxTruePeakDB) / peak
		scale(out, limiter)
		m.LimiterGainDB = utils.LinearToDB(limiter)
	}

	m.OutputLUFS = Integrated(out)
	m.OutputPeakDB = TruePeakDB(out)

	return out, m, nil
}

func scale(buf *audio.SampleBuffer, gain float64) {
	if gain == 1.0 {
		return
	}

	g := float32(gain)
	for i := range buf.Data {
		buf.Data[i] *= g
	}
}
