// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff and
// exposes them as audio.Source. Only 16-bit PCM content is supported.
package aiff
