package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	segmentFile  string
	segmentJSON  bool
	segmentSpans bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment [text...]",
	Short: "Split text into sentences",
	Long: `Splits text into sentences. Text comes from the arguments, from --file,
or from standard input when neither is given. Whitespace after a sentence
stays with it, so the printed sentences concatenate to the input.`,
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().StringVarP(&segmentFile, "file", "f", "", "read text from file (- for stdin)")
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "output as JSON")
	segmentCmd.Flags().BoolVar(&segmentSpans, "spans", false, "include byte offsets")
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	seg, err := newSegmenter(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = seg.Close() }()

	spans, err := seg.Spans(text)
	if err != nil {
		return fmt.Errorf("segment: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case segmentJSON && segmentSpans:
		return writeJSON(out, spans)
	case segmentJSON:
		sentences := make([]string, len(spans))
		for i, sp := range spans {
			sentences[i] = sp.Text
		}
		return writeJSON(out, sentences)
	}

	for i, sp := range spans {
		if segmentSpans {
			fmt.Fprintf(out, "%d\t%d-%d\t%q\n", i+1, sp.Start, sp.End, sp.Text)
			continue
		}
		fmt.Fprintf(out, "%d\t%q\n", i+1, sp.Text)
	}
	return nil
}

func readText(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case segmentFile != "" && len(args) > 0:
		return "", errors.New("give text as arguments or --file, not both")
	case segmentFile == "-":
		return readAll(cmd.InOrStdin())
	case segmentFile != "":
		data, err := os.ReadFile(segmentFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", segmentFile, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return readAll(cmd.InOrStdin())
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
