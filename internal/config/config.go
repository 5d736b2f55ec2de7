// Package config loads settings for the sbd binaries from a TOML file, a
// .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/lexicon"
)

// DefaultFile is read when no path is given and SBD_CONFIG is unset.
const DefaultFile = "sbd.toml"

// Environment variables that override the file.
const (
	EnvConfig     = "SBD_CONFIG"
	EnvDictionary = "SBD_DICTIONARY"
	EnvLogLevel   = "SBD_LOG_LEVEL"
	EnvPoolSize   = "SBD_POOL_SIZE"
)

// Config holds binary settings. An empty Dictionary selects the built-in
// English dictionary; otherwise it names an asset written by sbd-dictgen.
// A PoolSize of 0 lets the segmenter pick runtime.NumCPU().
type Config struct {
	Dictionary    string        `toml:"dictionary"`
	ListDetection bool          `toml:"list_detection"`
	PoolSize      int           `toml:"pool_size"`
	LogLevel      string        `toml:"log_level"`
	Abbreviations Abbreviations `toml:"abbreviations"`
}

// Abbreviations are added on top of the dictionary.
type Abbreviations struct {
	Title   []string `toml:"title"`
	General []string `toml:"general"`
	Numeric []string `toml:"numeric"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		ListDetection: true,
		LogLevel:      "warn",
	}
}

// LoadDotEnv copies variables from .env files into the environment. Missing
// files are ignored and variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads path over Defaults, applies environment overrides and
// validates the result. An empty path falls back to SBD_CONFIG, then to
// DefaultFile if it exists.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path, explicit = os.LookupEnv(EnvConfig)
	}
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvDictionary); ok {
		cfg.Dictionary = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPoolSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPoolSize, err)
		}
		cfg.PoolSize = n
	}
	return nil
}

// Validate checks the settings without touching the filesystem.
func Validate(cfg Config) error {
	if cfg.PoolSize < 0 {
		return errors.New("config: pool_size must be >= 0")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	for name, tokens := range map[string][]string{
		"title":   cfg.Abbreviations.Title,
		"general": cfg.Abbreviations.General,
		"numeric": cfg.Abbreviations.Numeric,
	} {
		for _, tok := range tokens {
			if strings.TrimSpace(strings.TrimSuffix(tok, ".")) == "" {
				return fmt.Errorf("config: abbreviations.%s contains an empty token", name)
			}
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", s, err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Options translates the settings into segmenter options, loading the
// dictionary asset if one is named.
func (c Config) Options(logger *slog.Logger) ([]sbd.Option, error) {
	opts := []sbd.Option{
		sbd.WithListDetection(c.ListDetection),
		sbd.WithPoolSize(c.PoolSize),
		sbd.WithLogger(logger),
	}
	if c.Dictionary != "" {
		d, err := lexicon.Load(c.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, sbd.WithDictionary(d))
	}
	for _, a := range []struct {
		category lexicon.Category
		tokens   []string
	}{
		{lexicon.Title, c.Abbreviations.Title},
		{lexicon.General, c.Abbreviations.General},
		{lexicon.Numeric, c.Abbreviations.Numeric},
	} {
		if len(a.tokens) > 0 {
			opts = append(opts, sbd.WithAbbreviations(a.category, a.tokens...))
		}
	}
	return opts, nil
}

// Segmenter builds a segmenter from the settings.
func (c Config) Segmenter(logger *slog.Logger) (*sbd.Segmenter, error) {
	opts, err := c.Options(logger)
	if err != nil {
		return nil, err
	}
	return sbd.New(opts...)
}
