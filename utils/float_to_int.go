// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized float32 sample to 16-bit PCM.
// The input is clamped to [-1, 1], scaled by 32768 and rounded to the
// nearest step, so a decode at the same scale stays within one
// quantization step of the original.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	v := math.Round(float64(x) * 32768.0)
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	}

	return int16(v)
}

// Float32ToInt16Batch converts src samples into dst, clamping each to [-1, 1].
// Returns the number of samples converted (the shorter of the two slices).
func Float32ToInt16Batch(dst []int16, src []float32) int {
	n := min(len(dst), len(src))

	for i := 0; i < n; i++ {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
