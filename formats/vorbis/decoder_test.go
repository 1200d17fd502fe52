// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// mockOggReader simulates oggvorbis.Reader for testing
type mockOggReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(p), len(m.samples)-m.offset)
	copy(p, m.samples[m.offset:m.offset+n])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an ogg container")))
	if err == nil {
		t.Fatal("Decode() succeeded on invalid data")
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockOggReader{sampleRate: 44100, channels: 2, samples: []float32{0.1, -0.1, 0.2, -0.2}},
		sampleRate: 44100,
		channels:   2,
		frameBuf:   make([]float32, 64),
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float32{0.1, -0.1, 0.2, -0.2}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_ReadSamplesEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &mockOggReader{sampleRate: 44100, channels: 2},
		sampleRate: 44100,
		channels:   2,
		frameBuf:   make([]float32, 64),
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)

	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:      &mockOggReader{sampleRate: 44100, channels: 2},
		channels: 2,
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}
