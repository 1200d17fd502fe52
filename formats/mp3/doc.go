// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3
// and exposes them as audio.Source. Output is always stereo 16-bit PCM at
// the stream's native sample rate; the engine conforms it to the mixdown
// format downstream.
package mp3
