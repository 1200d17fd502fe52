// SPDX-License-Identifier: EPL-2.0

// Package loudness measures and normalizes program loudness following
// the ITU-R BS.1770 method: K-weighted, gated integrated loudness in
// LUFS and an oversampled true-peak reading in dBTP. The Normalizer
// applies a uniform gain toward a target level and a brick-wall scale
// against a peak ceiling, so a rendered master comes out at a
// predictable delivery loudness.
package loudness
