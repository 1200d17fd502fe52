// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis and exposes them as audio.Source.
// The underlying reader already produces normalized float32 samples, so
// no quantization conversion is needed.
package vorbis
