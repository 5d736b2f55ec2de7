package bench

import (
	"context"
	"strings"
	"unicode"

	"github.com/samber/lo"

	sbd "github.com/jamesainslie/go-sbd"
)

// Config holds evaluation parameters.
type Config struct {
	Tolerance       int // byte match tolerance
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance:       3,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return score(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

// Aggregate sums the counts of several evaluations and rescores them.
func Aggregate(ms []Metrics, cfg Config) Metrics {
	return score(
		lo.SumBy(ms, func(m Metrics) int { return m.TruePositives }),
		lo.SumBy(ms, func(m Metrics) int { return m.FalsePositives }),
		lo.SumBy(ms, func(m Metrics) int { return m.FalseNegatives }),
		cfg,
	)
}

func score(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	wp, wr := cfg.PrecisionWeight, cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
	return m
}

// Boundaries converts segments into end offsets comparable with gold:
// each offset excludes the whitespace the segment carries.
func Boundaries(segments []string) []int {
	out := make([]int, 0, len(segments))
	pos := 0
	for _, s := range segments {
		trimmed := len(strings.TrimRightFunc(s, unicode.IsSpace))
		if trimmed > 0 {
			out = append(out, pos+trimmed)
		}
		pos += len(s)
	}
	return out
}

// EvaluateDocument segments doc with seg and scores the result.
func EvaluateDocument(ctx context.Context, seg *sbd.Segmenter, doc *Document, cfg Config) (Metrics, error) {
	batch, err := seg.SegmentBatch(ctx, []string{doc.Text})
	if err != nil {
		return Metrics{}, err
	}
	return Evaluate(Boundaries(batch[0]), doc.Boundaries, cfg), nil
}

// EvaluateTalk scores a transcript.
func EvaluateTalk(ctx context.Context, seg *sbd.Segmenter, talk *Talk, cfg Config) (Metrics, error) {
	return EvaluateDocument(ctx, seg, talk.Document(), cfg)
}
