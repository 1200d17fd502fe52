// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/utils"
)

// WritePCM16 writes an interleaved 16-bit PCM WAV stream. samples must be
// int16 PCM with frames laid out as channels-sized groups.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannelCount
	}

	numChannels := uint16(channels)
	bitsPerSample := uint16(16)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := uint32(len(samples) * 2)
	riffSize := 36 + dataSize

	// Canonical 44-byte header
	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	// Write sample data in chunks to bound the conversion buffer
	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		chunk := samples[i:end]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Encode serializes a SampleBuffer as an uncompressed 16-bit little-endian
// PCM WAV byte stream. Samples are clamped to [-1, 1] before quantization.
func Encode(buf *audio.SampleBuffer) ([]byte, error) {
	pcm16 := make([]int16, len(buf.Data))
	utils.Float32ToInt16Batch(pcm16, buf.Data)

	out := new(bytes.Buffer)
	out.Grow(44 + len(pcm16)*2)

	if err := WritePCM16(out, buf.SampleRate, buf.Channels, pcm16); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return out.Bytes(), nil
}

// DecodeBytes parses an encoded WAV byte stream back into a SampleBuffer
// at its native sample rate and channel layout.
func DecodeBytes(data []byte) (*audio.SampleBuffer, error) {
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer src.Close()

	var samples []float32
	buf := make([]float32, 4096)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return &audio.SampleBuffer{
		Data:       samples,
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}, nil
}
