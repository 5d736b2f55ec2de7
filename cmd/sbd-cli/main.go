// Command sbd-cli splits text into sentences.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "sbd-cli",
	Short:        "Rule-based sentence boundary detection",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to sbd.toml (default $SBD_CONFIG or ./sbd.toml)")
}

// newSegmenter builds a segmenter from configuration, logging to the
// command's error stream.
func newSegmenter(cmd *cobra.Command) (*sbd.Segmenter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Segmenter(cfg.Logger(cmd.ErrOrStderr()))
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
