package sbd

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-sbd/internal/abbrev"
	"github.com/jamesainslie/go-sbd/internal/boundary"
	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/normalize"
	"github.com/jamesainslie/go-sbd/internal/numeric"
	"github.com/jamesainslie/go-sbd/internal/pool"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/internal/span"
	"github.com/jamesainslie/go-sbd/internal/split"
	"github.com/jamesainslie/go-sbd/lexicon"
)

// tracerName identifies spans started by this package.
const tracerName = "github.com/jamesainslie/go-sbd"

// Span is a segment with its byte range in the input.
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Segmenter splits text into sentences. It is safe for concurrent use.
type Segmenter struct {
	pool   *pool.Pool[*pipeline]
	dict   *lexicon.Dictionary
	logger *slog.Logger
}

// pipeline holds the compiled rule stages. It is read-only after New and
// every pool slot refers to the same one; the pool only bounds how many texts
// are marked at once.
type pipeline struct {
	abbrev  *abbrev.Protector
	numeric *numeric.Protector
	rules   *boundary.Rules
}

// New creates a Segmenter.
func New(opts ...Option) (*Segmenter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dict := cfg.dict
	for _, a := range cfg.extra {
		d, err := dict.With(a.category, a.tokens...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDictionary, err)
		}
		dict = d
	}

	pl, err := newPipeline(dict, cfg.lists)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionary, err)
	}
	p, err := pool.New(cfg.poolSize, func(int) (*pipeline, error) {
		return pl, nil
	})
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("segmenter ready",
		"dictionary", dict.Version(),
		"abbreviations", dict.Len(),
		"pool_size", p.Size(),
		"list_detection", cfg.lists)

	return &Segmenter{
		pool:   p,
		dict:   dict,
		logger: cfg.logger,
	}, nil
}

func newPipeline(d *lexicon.Dictionary, lists bool) (*pipeline, error) {
	a, err := abbrev.New(d)
	if err != nil {
		return nil, err
	}
	r, err := boundary.New(d)
	if err != nil {
		return nil, err
	}
	return &pipeline{abbrev: a, numeric: numeric.New(lists), rules: r}, nil
}

// mark runs every stage that decides boundaries and returns the marked
// buffer with its extraction table.
func (p *pipeline) mark(text string) (*buffer.Buffer, span.Table, error) {
	b := normalize.Normalize(text)

	b, err := p.abbrev.Apply(b)
	if err != nil {
		return nil, nil, fmt.Errorf("abbreviations: %w", err)
	}
	b, err = p.numeric.Apply(b)
	if err != nil {
		return nil, nil, fmt.Errorf("numbers: %w", err)
	}
	b, table := span.Extract(b)
	b, err = p.rules.Apply(b)
	if err != nil {
		return nil, nil, fmt.Errorf("boundaries: %w", err)
	}
	return b, table, nil
}

// Dictionary returns the abbreviation dictionary in use.
func (s *Segmenter) Dictionary() *lexicon.Dictionary {
	return s.dict
}

// Segment splits text into sentences. The sentences concatenate to text.
func (s *Segmenter) Segment(text string) ([]string, error) {
	segs, err := s.segments(context.Background(), text)
	if err != nil {
		return nil, err
	}
	return segmentTexts(segs), nil
}

// Iter returns the sentences of text as a sequence. The text is segmented
// before Iter returns, so errors are reported here; the sequence may be
// ranged over any number of times and always starts from the first
// sentence.
func (s *Segmenter) Iter(text string) (iter.Seq[string], error) {
	segs, err := s.segments(context.Background(), text)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for _, seg := range segs {
			if !yield(seg.Text) {
				return
			}
		}
	}, nil
}

// Spans splits text into sentences and reports the byte range of each.
func (s *Segmenter) Spans(text string) ([]Span, error) {
	segs, err := s.segments(context.Background(), text)
	if err != nil {
		return nil, err
	}
	spans := make([]Span, len(segs))
	for i, seg := range segs {
		spans[i] = Span{Text: seg.Text, Start: seg.Start, End: seg.End}
	}
	return spans, nil
}

// SegmentWithBoundaries splits text into sentences and returns boundary positions.
// Boundaries are byte offsets where each sentence ends in the original text.
func (s *Segmenter) SegmentWithBoundaries(text string) (sentences []string, boundaries []int, err error) {
	segs, err := s.segments(context.Background(), text)
	if err != nil {
		return nil, nil, err
	}
	for _, seg := range segs {
		sentences = append(sentences, seg.Text)
		boundaries = append(boundaries, seg.End)
	}
	return sentences, boundaries, nil
}

// IsComplete reports whether text ends with a sentence boundary.
func (s *Segmenter) IsComplete(text string) (bool, error) {
	if text == "" {
		return false, nil
	}
	b, _, err := s.mark(context.Background(), text)
	if err != nil {
		return false, err
	}
	return split.Complete(b), nil
}

// SegmentBatch segments independent texts concurrently, at most pool size at
// a time. Results are in input order. The first error cancels the rest.
func (s *Segmenter) SegmentBatch(ctx context.Context, texts []string) ([][]string, error) {
	ctx, sp := otel.Tracer(tracerName).Start(ctx, "sbd.SegmentBatch",
		trace.WithAttributes(
			attribute.Int("sbd.texts", len(texts)),
			attribute.Int("sbd.pool_size", s.pool.Size()),
		))
	defer sp.End()

	results := make([][]string, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.pool.Size())
	for i, text := range texts {
		g.Go(func() error {
			segs, err := s.segments(gctx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = segmentTexts(segs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		sp.RecordError(err)
		sp.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return results, nil
}

// Close releases the pipeline pool. Calls after Close return ErrClosed.
func (s *Segmenter) Close() error {
	s.pool.Close()
	return nil
}

func (s *Segmenter) segments(ctx context.Context, text string) ([]split.Segment, error) {
	if text == "" {
		return nil, nil
	}
	b, table, err := s.mark(ctx, text)
	if err != nil {
		return nil, err
	}

	segs, err := split.Split(b, table)
	if err != nil {
		s.logger.Error("restoring segments failed", "error", err, "marked", sentinel.Visible(b.String()))
		return nil, fmt.Errorf("%w: %w", ErrInternalConsistency, err)
	}
	s.logger.Debug("segmented text", "bytes", len(text), "segments", len(segs))
	return segs, nil
}

func (s *Segmenter) mark(ctx context.Context, text string) (*buffer.Buffer, span.Table, error) {
	if !utf8.ValidString(text) {
		return nil, nil, ErrInvalidInput
	}

	p, err := s.pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, pool.ErrPoolClosed) {
			return nil, nil, ErrClosed
		}
		return nil, nil, err
	}
	defer s.pool.Release(p)

	b, table, err := p.mark(text)
	if err != nil {
		s.logger.Error("marking boundaries failed", "error", err)
		return nil, nil, fmt.Errorf("%w: %w", ErrInternalConsistency, err)
	}

	if s.logger.Enabled(ctx, slog.LevelDebug) {
		s.logger.Debug("marked text",
			"runes", b.Len(),
			"spans", len(table),
			"marked", sentinel.Visible(b.String()))
	}
	return b, table, nil
}

func segmentTexts(segs []split.Segment) []string {
	if segs == nil {
		return nil
	}
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = seg.Text
	}
	return out
}
