// SPDX-License-Identifier: EPL-2.0

// Package mix renders a resolved timeline into a single PCM master by
// additive summation. Each track's decoded clip is placed at its frame
// offset, truncated to its resolved duration and scaled by its gain.
// The mixed signal keeps full float32 headroom; clamping is deferred to
// the final encode so intermediate overshoot never distorts.
package mix
