// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DBToLinear converts a decibel gain value to a linear amplitude multiplier.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude value to decibels.
// Non-positive input returns negative infinity.
func LinearToDB(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
