// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"math"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/utils"
)

// oversampleFactor is the reconstruction density for true-peak
// measurement: each sample interval is probed at four points.
const oversampleFactor = 4

// TruePeak returns the largest absolute reconstructed sample value over
// all channels, as a linear amplitude. Each interval between adjacent
// samples of a channel is linearly interpolated at 4x density so
// inter-sample excursions register.
func TruePeak(buf *audio.SampleBuffer) float64 {
	var peak float64

	for ch := 0; ch < buf.Channels; ch++ {
		if p := channelTruePeak(buf, ch); p > peak {
			peak = p
		}
	}

	return peak
}

// TruePeakDB returns the true peak in dBTP. Silence yields -Inf.
func TruePeakDB(buf *audio.SampleBuffer) float64 {
	return utils.LinearToDB(TruePeak(buf))
}

func channelTruePeak(buf *audio.SampleBuffer, ch int) float64 {
	frames := buf.Frames()
	if frames == 0 {
		return 0
	}

	at := func(frame int) float64 {
		return float64(buf.Data[frame*buf.Channels+ch])
	}

	peak := math.Abs(at(0))

	for f := 1; f < frames; f++ {
		prev, cur := at(f-1), at(f)

		if a := math.Abs(cur); a > peak {
			peak = a
		}

		for k := 1; k < oversampleFactor; k++ {
			t := float64(k) / oversampleFactor
			v := math.Abs(prev + (cur-prev)*t)

			if v > peak {
				peak = v
			}
		}
	}

	return peak
}
