// Command sbd-bench scores the segmenter against gold corpora.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/internal/bench"
	"github.com/jamesainslie/go-sbd/internal/config"
)

var version = "dev"

var (
	configPath string
	corpusDir  string
	tolerance  int
	wp, wr     float64
	compare    bool
	perDoc     bool
)

var rootCmd = &cobra.Command{
	Use:   "sbd-bench",
	Short: "Evaluate sentence boundaries against a gold corpus",
	Long: `Loads .txt transcripts and .json documents from the corpus directory
and reports precision, recall and F1 of predicted sentence ends.
With --compare, ranks the built-in option profiles instead.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "path to sbd.toml (default $SBD_CONFIG or ./sbd.toml)")
	f.StringVar(&corpusDir, "corpus", "testdata/ted", "directory containing corpus files")
	f.IntVar(&tolerance, "tolerance", 3, "byte tolerance for boundary matching")
	f.Float64Var(&wp, "wp", 1.0, "precision weight")
	f.Float64Var(&wr, "wr", 1.0, "recall weight")
	f.BoolVar(&compare, "compare", false, "compare option profiles")
	f.BoolVar(&perDoc, "per-doc", false, "print metrics for every document")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.Logger(cmd.ErrOrStderr())

	docs, err := bench.LoadCorpus(corpusDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d documents from %s\n\n", len(docs), corpusDir)

	evalCfg := bench.Config{
		Tolerance:       tolerance,
		PrecisionWeight: wp,
		RecallWeight:    wr,
	}

	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	if compare {
		return runCompare(cmd.Context(), out, docs, evalCfg, opts)
	}
	return runSingle(cmd.Context(), out, docs, evalCfg, opts)
}

func runSingle(ctx context.Context, out io.Writer, docs []*bench.Document, cfg bench.Config, opts []sbd.Option) error {
	seg, err := sbd.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = seg.Close() }()

	ms := make([]bench.Metrics, 0, len(docs))
	for _, doc := range docs {
		m, err := bench.EvaluateDocument(ctx, seg, doc, cfg)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", doc.Name, err)
		}
		if perDoc {
			fmt.Fprintf(out, "%-30s P %.2f  R %.2f  F1 %.2f\n", doc.Name, m.Precision, m.Recall, m.F1)
		}
		ms = append(ms, m)
	}

	printMetrics(out, bench.Aggregate(ms, cfg))
	return nil
}

func runCompare(ctx context.Context, out io.Writer, docs []*bench.Document, cfg bench.Config, opts []sbd.Option) error {
	profiles, err := bench.DefaultProfiles()
	if err != nil {
		return err
	}
	results, err := bench.Compare(ctx, docs, profiles, cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Profile Comparison (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Fprintln(out, strings.Repeat("-", 50))
	fmt.Fprintf(out, "%-14s %-8s %-8s %-8s %-8s\n", "Profile", "Prec", "Rec", "F1", "Weighted")
	for _, r := range results {
		fmt.Fprintf(out, "%-14s %-8.2f %-8.2f %-8.2f %-8.2f\n",
			r.Profile, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
	}
	fmt.Fprintln(out, strings.Repeat("-", 50))
	if len(results) > 0 {
		fmt.Fprintf(out, "Best: %s (Weighted: %.2f)\n", results[0].Profile, results[0].Metrics.WeightedScore)
	}
	return nil
}

func printMetrics(out io.Writer, m bench.Metrics) {
	fmt.Fprintf(out, "Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Fprintf(out, "(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
