// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding and 16-bit PCM encoding.
//
// Decoding uses the github.com/go-audio library for robust chunk handling
// and exposes the result through the audio.Source interface:
//
//	decoder := wav.Decoder{}
//	src, err := decoder.Decode(reader)
//
// Encoding produces the engine's delivery format: an uncompressed RIFF
// container with a canonical 44-byte header, interleaved 16-bit
// little-endian samples, clamped to [-1, 1] before quantization:
//
//	data, err := wav.Encode(masterBuffer)
//
// DecodeBytes is the inverse of Encode and round-trips samples within
// 16-bit quantization error.
package wav
