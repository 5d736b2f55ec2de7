package bench

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/lexicon"
)

// Profile is a named set of segmenter options.
type Profile struct {
	Name    string
	Options []sbd.Option
}

// Result holds aggregate metrics for one profile.
type Result struct {
	Profile string
	Metrics Metrics
}

// DefaultProfiles returns the option sets compared by sbd-bench: the
// defaults, list detection off, and a dictionary reduced to titles.
func DefaultProfiles() ([]Profile, error) {
	titles, err := lexicon.New("titles-only", lo.Map(lexicon.English().Tokens(lexicon.Title), func(tok string, _ int) lexicon.Entry {
		return lexicon.Entry{Token: tok, Category: lexicon.Title}
	})...)
	if err != nil {
		return nil, err
	}
	return []Profile{
		{Name: "default"},
		{Name: "no-lists", Options: []sbd.Option{sbd.WithListDetection(false)}},
		{Name: "titles-only", Options: []sbd.Option{sbd.WithDictionary(titles)}},
	}, nil
}

// Compare evaluates every profile over docs and returns results sorted by
// weighted score, best first.
func Compare(ctx context.Context, docs []*Document, profiles []Profile, cfg Config, opts ...sbd.Option) ([]Result, error) {
	texts := lo.Map(docs, func(d *Document, _ int) string { return d.Text })

	results := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		seg, err := sbd.New(append(slices.Clone(opts), p.Options...)...)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}

		batch, err := seg.SegmentBatch(ctx, texts)
		_ = seg.Close()
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}

		ms := lo.Map(docs, func(d *Document, i int) Metrics {
			return Evaluate(Boundaries(batch[i]), d.Boundaries, cfg)
		})
		results = append(results, Result{Profile: p.Name, Metrics: Aggregate(ms, cfg)})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Metrics.WeightedScore > b.Metrics.WeightedScore:
			return -1
		case a.Metrics.WeightedScore < b.Metrics.WeightedScore:
			return 1
		}
		return 0
	})
	return results, nil
}
