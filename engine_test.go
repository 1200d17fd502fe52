// SPDX-License-Identifier: EPL-2.0

package admix

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/formats/wav"
	"github.com/ik5/admix/internal/audiotest"
	"github.com/ik5/admix/loudness"
	"github.com/ik5/admix/timeline"
)

type clip struct {
	format string
	data   []byte
}

// clipFetcher serves pre-encoded clips from memory.
type clipFetcher map[string]clip

func (f clipFetcher) fetch(_ context.Context, source string) (string, io.ReadCloser, error) {
	c, ok := f[source]
	if !ok {
		return "", nil, errors.New("no such clip: " + source)
	}

	return c.format, io.NopCloser(bytes.NewReader(c.data)), nil
}

func sineWAV(t *testing.T, sampleRate int, freq, amplitude, seconds float64) []byte {
	t.Helper()

	frames := int(seconds * float64(sampleRate))
	buf := audio.NewSampleBuffer(sampleRate, 2, frames)

	for f := 0; f < frames; f++ {
		v := float32(amplitude * math.Sin(2*math.Pi*freq*float64(f)/float64(sampleRate)))
		buf.Data[f*2] = v
		buf.Data[f*2+1] = v
	}

	data, err := wav.Encode(buf)
	if err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}

	return data
}

func TestNewEngine_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(nil, Options{}); !errors.Is(err, ErrNilFetcher) {
		t.Errorf("NewEngine(nil) error = %v, want %v", err, ErrNilFetcher)
	}

	mono := DefaultOptions()
	mono.Target.Channels = 1

	fetch := clipFetcher{}.fetch
	if _, err := NewEngine(fetch, mono); !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("NewEngine(mono target) error = %v, want %v", err, ErrUnsupportedLayout)
	}
}

func TestMixdown_EndToEnd(t *testing.T) {
	t.Parallel()

	fetcher := clipFetcher{
		"voice-clip": {format: "wav", data: sineWAV(t, 44100, 440, 0.4, 2.0)},
		"music-clip": {format: "wav", data: sineWAV(t, 44100, 220, 0.4, 10.0)},
	}

	engine, err := NewEngine(fetcher.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	tracks := []timeline.Track{
		{ID: "v", Kind: timeline.KindVoice, Source: "voice-clip"},
		{ID: "m", Kind: timeline.KindMusic, Source: "music-clip"},
	}

	res, err := engine.Mixdown(context.Background(), tracks)
	if err != nil {
		t.Fatalf("Mixdown() error = %v", err)
	}

	// Music bed trimmed to the voice end plus the default tail.
	var music timeline.ResolvedTrack
	for _, rt := range res.Timeline.Tracks {
		if rt.ID == "m" {
			music = rt
		}
	}
	if math.Abs(music.ActualDuration-5.0) > 1e-6 {
		t.Errorf("music duration = %v, want 5.0", music.ActualDuration)
	}

	if math.Abs(res.Loudness.OutputLUFS-(-16.0)) > 0.1 {
		t.Errorf("OutputLUFS = %v, want -16 +/- 0.1", res.Loudness.OutputLUFS)
	}
	if res.Loudness.OutputPeakDB > -2.0+0.01 {
		t.Errorf("OutputPeakDB = %v, want <= -2.0", res.Loudness.OutputPeakDB)
	}

	decoded, err := wav.DecodeBytes(res.Audio)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	if decoded.SampleRate != 44100 || decoded.Channels != 2 {
		t.Errorf("artifact format = %d Hz / %d ch, want 44100 Hz / 2 ch",
			decoded.SampleRate, decoded.Channels)
	}

	if got, want := decoded.Frames(), 5*44100; got != want {
		t.Errorf("artifact frames = %d, want %d", got, want)
	}
}

func TestMixdown_ResamplesToTargetRate(t *testing.T) {
	t.Parallel()

	fetcher := clipFetcher{
		"v": {format: "wav", data: sineWAV(t, 22050, 440, 0.4, 1.0)},
	}

	engine, err := NewEngine(fetcher.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	res, err := engine.Mixdown(context.Background(), []timeline.Track{
		{ID: "v", Kind: timeline.KindVoice, Source: "v"},
	})
	if err != nil {
		t.Fatalf("Mixdown() error = %v", err)
	}

	decoded, err := wav.DecodeBytes(res.Audio)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	if decoded.SampleRate != 44100 {
		t.Errorf("artifact sample rate = %d, want 44100", decoded.SampleRate)
	}

	// A second of audio at either input rate is still a second out.
	if math.Abs(decoded.Duration()-1.0) > 0.01 {
		t.Errorf("artifact duration = %v, want ~1.0s", decoded.Duration())
	}
}

func TestMixdown_CustomRegistry(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register("tone", toneDecoder{})

	fetcher := clipFetcher{
		"generated": {format: "tone", data: nil},
	}

	opts := DefaultOptions()
	opts.Registry = reg

	engine, err := NewEngine(fetcher.fetch, opts)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	res, err := engine.Mixdown(context.Background(), []timeline.Track{
		{ID: "v", Kind: timeline.KindVoice, Source: "generated"},
	})
	if err != nil {
		t.Fatalf("Mixdown() error = %v", err)
	}

	if res.Timeline.TotalDuration <= 0 {
		t.Errorf("TotalDuration = %v, want > 0", res.Timeline.TotalDuration)
	}
}

// toneDecoder ignores its input and synthesizes a short sine clip.
type toneDecoder struct{}

func (toneDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSineSource(44100, 2, 44100, 440, 0.4), nil
}

func TestMixdown_FetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	fetcher := clipFetcher{
		"ok": {format: "wav", data: sineWAV(t, 44100, 440, 0.4, 1.0)},
	}

	engine, err := NewEngine(fetcher.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	_, err = engine.Mixdown(context.Background(), []timeline.Track{
		{ID: "a", Kind: timeline.KindVoice, Source: "ok"},
		{ID: "b", Kind: timeline.KindVoice, Source: "missing"},
	})
	if err == nil {
		t.Fatal("Mixdown() succeeded with a failing clip, want error")
	}
}

func TestMixdown_UnknownFormat(t *testing.T) {
	t.Parallel()

	fetcher := clipFetcher{
		"clip": {format: "flac", data: []byte{0, 1, 2, 3}},
	}

	engine, err := NewEngine(fetcher.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	_, err = engine.Mixdown(context.Background(), []timeline.Track{
		{ID: "a", Kind: timeline.KindVoice, Source: "clip"},
	})
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Mixdown() error = %v, want %v", err, audio.ErrUnknownFormat)
	}
}

func TestMixdown_NoTracks(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(clipFetcher{}.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, err := engine.Mixdown(context.Background(), nil); !errors.Is(err, ErrNoTracks) {
		t.Errorf("Mixdown(nil) error = %v, want %v", err, ErrNoTracks)
	}
}

func TestMixdown_ContextCanceled(t *testing.T) {
	t.Parallel()

	fetcher := clipFetcher{
		"v": {format: "wav", data: sineWAV(t, 44100, 440, 0.4, 1.0)},
	}

	engine, err := NewEngine(fetcher.fetch, Options{})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Mixdown(ctx, []timeline.Track{
		{ID: "v", Kind: timeline.KindVoice, Source: "v"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Mixdown() error = %v, want %v", err, context.Canceled)
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	if opts.Target != loudness.DefaultTarget() {
		t.Errorf("Target = %+v, want default", opts.Target)
	}
	if opts.Policy != timeline.DefaultPolicy() {
		t.Errorf("Policy = %+v, want default", opts.Policy)
	}
	if opts.Registry == nil {
		t.Error("Registry is nil")
	}
	if opts.DecodeConcurrency <= 0 {
		t.Errorf("DecodeConcurrency = %d, want > 0", opts.DecodeConcurrency)
	}
}
