// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// mockMP3Reader simulates go-mp3's byte-oriented decoder output
type mockMP3Reader struct {
	sampleRate int
	pcm        []int16
	offset     int
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(p []byte) (int, error) {
	if m.offset >= len(m.pcm) {
		return 0, io.EOF
	}

	n := 0
	for n+2 <= len(p) && m.offset < len(m.pcm) {
		binary.LittleEndian.PutUint16(p[n:n+2], uint16(m.pcm[m.offset]))
		m.offset++
		n += 2
	}

	if m.offset >= len(m.pcm) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not an mp3 frame")))
	if err == nil {
		t.Fatal("Decode() succeeded on invalid data")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockMP3Reader{sampleRate: 44100, pcm: []int16{16384, -16384, 8192, -8192}},
		sampleRate: 44100,
		buf:        make([]byte, 64),
	}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float32{0.5, -0.5, 0.25, -0.25}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_ReadSamplesEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockMP3Reader{sampleRate: 44100},
		sampleRate: 44100,
		buf:        make([]byte, 64),
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)

	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}
