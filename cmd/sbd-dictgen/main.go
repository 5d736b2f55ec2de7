// Command sbd-dictgen writes and inspects abbreviation dictionary assets.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sbd/lexicon"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:          "sbd-dictgen",
	Short:        "Build and inspect sbd dictionary assets",
	SilenceUsage: true,
}

var (
	exportOut     string
	exportVersion string
	exportAdd     []string
	inspectTokens bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the English dictionary, plus additions, to a file",
	Long: `Writes the built-in English dictionary in protobuf wire format.
Additions are given as category:token, for example --add title:Capt.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarize a dictionary asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (required)")
	exportCmd.Flags().StringVar(&exportVersion, "version-label", "", "version label (default: built-in label)")
	exportCmd.Flags().StringArrayVar(&exportAdd, "add", nil, "add category:token (repeatable)")
	_ = exportCmd.MarkFlagRequired("out")

	inspectCmd.Flags().BoolVar(&inspectTokens, "tokens", false, "list every token")

	rootCmd.AddCommand(exportCmd, inspectCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	d := lexicon.English()
	for _, arg := range exportAdd {
		c, tok, err := parseAddition(arg)
		if err != nil {
			return err
		}
		if d, err = d.With(c, tok); err != nil {
			return err
		}
	}
	if exportVersion != "" {
		var err error
		if d, err = lexicon.New(exportVersion, d.Entries()...); err != nil {
			return err
		}
	}

	if err := lexicon.Save(exportOut, d); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tokens (%s) to %s\n", d.Len(), d.Version(), exportOut)
	return nil
}

func parseAddition(arg string) (lexicon.Category, string, error) {
	name, tok, ok := strings.Cut(arg, ":")
	if !ok || name == "" || tok == "" {
		return 0, "", fmt.Errorf("addition %q: want category:token", arg)
	}
	c, err := lexicon.ParseCategory(name)
	if err != nil {
		return 0, "", fmt.Errorf("addition %q: %w", arg, err)
	}
	return c, tok, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	d, err := lexicon.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version: %s\ntokens:  %d\n", d.Version(), d.Len())

	counts := lo.CountValuesBy(d.Entries(), func(e lexicon.Entry) lexicon.Category { return e.Category })
	for _, c := range []lexicon.Category{lexicon.Title, lexicon.Numeric, lexicon.General, lexicon.Acronym, lexicon.Starter, lexicon.Exclamation} {
		fmt.Fprintf(out, "  %-12s %d\n", c, counts[c])
		if inspectTokens {
			for _, tok := range d.Tokens(c) {
				fmt.Fprintf(out, "    %s\n", tok)
			}
		}
	}
	return nil
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
