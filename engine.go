// SPDX-License-Identifier: EPL-2.0

package admix

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/admix/audio"
	"github.com/ik5/admix/formats/aiff"
	"github.com/ik5/admix/formats/mp3"
	"github.com/ik5/admix/formats/vorbis"
	"github.com/ik5/admix/formats/wav"
	"github.com/ik5/admix/loudness"
	"github.com/ik5/admix/mix"
	"github.com/ik5/admix/timeline"
)

// Fetcher resolves a track's opaque source reference into its encoded
// bytes. The format key selects a decoder from the registry ("wav",
// "mp3", "ogg", "aiff"). The engine closes the reader.
type Fetcher func(ctx context.Context, source string) (format string, r io.ReadCloser, err error)

// Options configures an Engine. Zero fields fall back to the defaults.
type Options struct {
	// Target is the delivery loudness profile of the output.
	Target loudness.Target

	// Policy tunes the placement conventions of the resolver.
	Policy timeline.Policy

	// Registry maps format keys to decoders. Defaults to all built-in
	// formats.
	Registry *audio.Registry

	// DecodeConcurrency caps how many clips are fetched and decoded in
	// parallel.
	DecodeConcurrency int
}

// DefaultOptions returns the standard engine configuration.
func DefaultOptions() Options {
	return Options{
		Target:            loudness.DefaultTarget(),
		Policy:            timeline.DefaultPolicy(),
		Registry:          DefaultRegistry(),
		DecodeConcurrency: 4,
	}
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// Result is one finished mixdown: the encoded artifact, the resolved
// placement it was rendered from, and the loudness report.
type Result struct {
	// Audio is the normalized master, encoded as 16-bit PCM WAV.
	Audio []byte

	// Timeline is the resolved placement of every input track.
	Timeline *timeline.Timeline

	// Loudness reports the measured levels and applied gains.
	Loudness *loudness.Measurement
}

// Engine runs the full mixdown pipeline: fetch and decode every clip,
// resolve the timeline, render the master, normalize it and encode the
// artifact. An Engine is safe for concurrent use.
type Engine struct {
	fetch    Fetcher
	target   loudness.Target
	policy   timeline.Policy
	registry *audio.Registry
	workers  int
}

// NewEngine builds an engine around a fetcher. Zero-valued options are
// replaced by their defaults; the target layout must be stereo.
func NewEngine(fetch Fetcher, opts Options) (*Engine, error) {
	if fetch == nil {
		return nil, ErrNilFetcher
	}

	def := DefaultOptions()

	if opts.Target == (loudness.Target{}) {
		opts.Target = def.Target
	}
	if opts.Policy == (timeline.Policy{}) {
		opts.Policy = def.Policy
	}
	if opts.Registry == nil {
		opts.Registry = def.Registry
	}
	if opts.DecodeConcurrency <= 0 {
		opts.DecodeConcurrency = def.DecodeConcurrency
	}

	if opts.Target.Channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, opts.Target.Channels)
	}

	return &Engine{
		fetch:    fetch,
		target:   opts.Target,
		policy:   opts.Policy,
		registry: opts.Registry,
		workers:  opts.DecodeConcurrency,
	}, nil
}

// Mixdown produces one normalized artifact from the given tracks. Any
// clip that fails to fetch or decode fails the whole request; there are
// no partial mixes.
func (e *Engine) Mixdown(ctx context.Context, tracks []timeline.Track) (*Result, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	clips, err := e.decodeAll(ctx, tracks)
	if err != nil {
		return nil, err
	}

	durations := make(timeline.Durations, clips.Len())
	for _, t := range tracks {
		if buf, ok := clips.Get(t.Source); ok {
			durations[t.Source] = buf.Duration()
		}
	}

	tl, err := timeline.NewResolver(e.policy).Resolve(tracks, durations)
	if err != nil {
		return nil, err
	}

	renderer, err := mix.NewRenderer(e.target.SampleRate, e.target.Channels)
	if err != nil {
		return nil, err
	}

	master, err := renderer.Render(tl, clips)
	if err != nil {
		return nil, err
	}

	normalized, report, err := loudness.NewNormalizer(e.target).Normalize(master)
	if err != nil {
		return nil, err
	}

	encoded, err := wav.Encode(normalized)
	if err != nil {
		return nil, err
	}

	return &Result{
		Audio:    encoded,
		Timeline: tl,
		Loudness: report,
	}, nil
}

// decodeAll fetches and decodes every distinct source in parallel,
// conforming each clip to the target rate and layout. The first failure
// cancels the remaining work.
func (e *Engine) decodeAll(ctx context.Context, tracks []timeline.Track) (*audio.Cache, error) {
	sources := uniqueSources(tracks)
	clips := audio.NewCache()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, source := range sources {
		source := source
		g.Go(func() error {
			buf, err := e.decodeOne(ctx, source)
			if err != nil {
				return fmt.Errorf("decode %s: %w", source, err)
			}

			clips.Put(source, buf)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return clips, nil
}

func (e *Engine) decodeOne(ctx context.Context, source string) (*audio.SampleBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, r, err := e.fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	dec, ok := e.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}

	return audio.ReadAll(src, e.target.SampleRate)
}

// uniqueSources keeps the first occurrence of each source reference,
// preserving input order so decode scheduling stays deterministic.
func uniqueSources(tracks []timeline.Track) []string {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]string, 0, len(tracks))

	for _, t := range tracks {
		if _, ok := seen[t.Source]; ok {
			continue
		}

		seen[t.Source] = struct{}{}
		out = append(out, t.Source)
	}

	return out
}
