package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete text...",
	Short: "Report whether text ends at a sentence boundary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runComplete,
}

func init() {
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	seg, err := newSegmenter(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = seg.Close() }()

	complete, err := seg.IsComplete(text)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Text: %q\nComplete: %v\n", text, complete)
	return nil
}
