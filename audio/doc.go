// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level audio primitives of the mixdown
// engine.
//
// This package contains the building blocks the pipeline stages share:
//   - Source interface for streaming audio input
//   - SampleBuffer for fully decoded clips
//   - Resampler for sample rate conversion
//   - StereoMapper for conforming channel layouts to the stereo buss
//   - Format registry for decoder registration
//   - Cache for per-request decode results
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All format decoders implement this interface, allowing them to be
// chained through the conversion stages regardless of origin.
//
// # Conforming Clips
//
// Input clips arrive at arbitrary rates and channel layouts. ReadAll
// builds the minimal pipeline to conform a source to the engine's fixed
// stereo format and collects the result:
//
//	buf, err := audio.ReadAll(src, 44100)
//	// buf is interleaved stereo float32 at 44.1 kHz
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format lets the renderer sum overlapping tracks without
// worrying about bit depths; clamping happens only at final quantization.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Decode Cache
//
// Resolving a timeline needs every clip's duration, and rendering needs its
// samples. The Cache keeps the decoded buffer from the first pass so each
// source reference is decoded exactly once per request:
//
//	cache := audio.NewCache()
//	cache.Put(ref, buf)
//	buf, ok := cache.Get(ref)
//
// Entries can be evicted at will; the cache is purely an optimization.
//
// # Error Handling
//
// Streaming functions return io.EOF when no more data is available. Other
// errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
