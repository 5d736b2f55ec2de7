package sbd

import (
	"log/slog"
	"runtime"

	"github.com/jamesainslie/go-sbd/lexicon"
)

// Option configures a Segmenter.
type Option func(*config)

type config struct {
	poolSize int
	logger   *slog.Logger
	dict     *lexicon.Dictionary
	extra    []abbreviations
	lists    bool
}

type abbreviations struct {
	category lexicon.Category
	tokens   []string
}

func defaultConfig() config {
	return config{
		poolSize: runtime.NumCPU(),
		logger:   slog.Default(),
		dict:     lexicon.English(),
		lists:    true,
	}
}

// WithPoolSize sets how many texts may be segmented at once (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDictionary replaces the abbreviation dictionary (default: lexicon.English()).
func WithDictionary(d *lexicon.Dictionary) Option {
	return func(c *config) {
		if d != nil {
			c.dict = d
		}
	}
}

// WithAbbreviations adds tokens to the dictionary under category. It may be
// given several times and applies after WithDictionary.
func WithAbbreviations(category lexicon.Category, tokens ...string) Option {
	return func(c *config) {
		c.extra = append(c.extra, abbreviations{category: category, tokens: tokens})
	}
}

// WithListDetection turns list-marker detection on or off (default: on).
func WithListDetection(on bool) Option {
	return func(c *config) {
		c.lists = on
	}
}
