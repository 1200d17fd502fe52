// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"math"

	"github.com/ik5/admix/audio"
)

// SilenceFloorLUFS is reported when no gating block survives, so silent
// or near-silent input yields a finite loudness instead of -Inf.
const SilenceFloorLUFS = -70.0

const (
	blockSeconds = 0.4
	hopSeconds   = 0.1

	// loudnessOffset calibrates the power average so a 997 Hz full-scale
	// sine reads -3.01 LUFS.
	loudnessOffset = -0.691

	relativeGateLU = 10.0
)

// channelWeight returns the per-channel gating weight: unity for left,
// right and center, raised for surround positions.
func channelWeight(ch int) float64 {
	if ch >= 3 {
		return 1.41
	}

	return 1.0
}

// Integrated measures the gated integrated loudness of the buffer in
// LUFS following the BS.1770 method: K-weighting per channel, 400 ms
// blocks with 75% overlap, an absolute gate at -70 LUFS and a relative
// gate 10 LU under the mean of the survivors. Input too short for a
// full block is measured as one block; silence reports the floor.
func Integrated(buf *audio.SampleBuffer) float64 {
	frames := buf.Frames()
	if frames == 0 || buf.Channels == 0 {
		return SilenceFloorLUFS
	}

	weighted := kWeight(buf)

	blockLen := int(math.Round(blockSeconds * float64(buf.SampleRate)))
	hop := int(math.Round(hopSeconds * float64(buf.SampleRate)))

	if blockLen > frames {
		blockLen = frames
	}
	if hop < 1 {
		hop = 1
	}

	var powers []float64
	for start := 0; start+blockLen <= frames; start += hop {
		powers = append(powers, blockPower(weighted, buf.Channels, start, blockLen))
	}

	// Absolute gate.
	kept := powers[:0]
	for _, p := range powers {
		if powerToLoudness(p) > SilenceFloorLUFS {
			kept = append(kept, p)
		}
	}

	if len(kept) == 0 {
		return SilenceFloorLUFS
	}

	// Relative gate, 10 LU under the loudness of the mean power.
	threshold := powerToLoudness(meanPower(kept)) - relativeGateLU

	var sum float64
	var n int
	for _, p := range kept {
		if powerToLoudness(p) > threshold {
			sum += p
			n++
		}
	}

	if n == 0 {
		return SilenceFloorLUFS
	}

	return powerToLoudness(sum / float64(n))
}

// kWeight runs the two-stage pre-filter over every channel and returns
// the filtered signal, still interleaved.
func kWeight(buf *audio.SampleBuffer) []float64 {
	shelf := newHighShelf(buf.SampleRate, buf.Channels)
	highPass := newHighPass(buf.SampleRate, buf.Channels)

	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		ch := i % buf.Channels
		out[i] = highPass.process(ch, shelf.process(ch, float64(v)))
	}

	return out
}

// blockPower computes the channel-weighted mean square of one block of
// the filtered signal.
func blockPower(weighted []float64, channels, startFrame, frames int) float64 {
	var total float64

	for ch := 0; ch < channels; ch++ {
		var sum float64

		for f := 0; f < frames; f++ {
			v := weighted[(startFrame+f)*channels+ch]
			sum += v * v
		}

		total += channelWeight(ch) * sum / float64(frames)
	}

	return total
}

func powerToLoudness(power float64) float64 {
	if power <= 0 {
		return math.Inf(-1)
	}

	return loudnessOffset + 10*math.Log10(power)
}

func meanPower(powers []float64) float64 {
	var sum float64
	for _, p := range powers {
		sum += p
	}

	return sum / float64(len(powers))
}
