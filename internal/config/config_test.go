package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-sbd/lexicon"
)

// clearEnv unsets the override variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvDictionary, EnvLogLevel, EnvPoolSize} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.True(t, cfg.ListDetection)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.PoolSize)
	assert.Empty(t, cfg.Dictionary)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "sbd.toml", `
pool_size = 4
log_level = "debug"

[abbreviations]
title = ["Capt"]
general = ["approx."]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.ListDetection, "unset keys keep their defaults")
	assert.Equal(t, []string{"Capt"}, cfg.Abbreviations.Title)
	assert.Equal(t, []string{"approx."}, cfg.Abbreviations.General)
	assert.Empty(t, cfg.Abbreviations.Numeric)
}

func TestLoad_ListDetectionOff(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "sbd.toml", "list_detection = false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.ListDetection)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "other.toml", "pool_size = 2\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PoolSize)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bad.toml", "pool_size = [")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "sbd.toml", "pool_size = 4\nlog_level = \"info\"\n")
	t.Setenv(EnvPoolSize, "8")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvDictionary, "/tmp/custom.pb")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.PoolSize)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/tmp/custom.pb", cfg.Dictionary)
}

func TestLoad_BadPoolSizeEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(EnvPoolSize, "many")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPoolSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative pool", func(c *Config) { c.PoolSize = -1 }, "config: pool_size"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "config: log_level"},
		{"empty token", func(c *Config) { c.Abbreviations.Numeric = []string{"."} }, "config: abbreviations.numeric"},
		{"upper level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", "SBD_POOL_SIZE=3\nSBD_LOG_LEVEL=debug\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "3", os.Getenv(EnvPoolSize))

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.PoolSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnv_KeepsExisting(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPoolSize, "5")
	path := writeFile(t, ".env", "SBD_POOL_SIZE=3\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "5", os.Getenv(EnvPoolSize))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.LogLevel = "info"

	logger := cfg.Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=1")
}

func TestSegmenter(t *testing.T) {
	cfg := Defaults()
	cfg.PoolSize = 1
	cfg.Abbreviations.General = []string{"approx"}

	seg, err := cfg.Segmenter(cfg.Logger(&bytes.Buffer{}))
	require.NoError(t, err)
	defer func() { _ = seg.Close() }()

	c, ok := seg.Dictionary().Lookup("approx")
	assert.True(t, ok)
	assert.Equal(t, lexicon.General, c)

	got, err := seg.Segment("It takes approx. two hours. Done.")
	require.NoError(t, err)
	assert.Equal(t, []string{"It takes approx. two hours. ", "Done."}, got)
}

func TestSegmenter_DictionaryFile(t *testing.T) {
	d, err := lexicon.New("custom-1", lexicon.Entry{Token: "Capt", Category: lexicon.Title})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dict.pb")
	require.NoError(t, lexicon.Save(path, d))

	cfg := Defaults()
	cfg.Dictionary = path
	seg, err := cfg.Segmenter(cfg.Logger(&bytes.Buffer{}))
	require.NoError(t, err)
	defer func() { _ = seg.Close() }()

	assert.Equal(t, "custom-1", seg.Dictionary().Version())
	_, ok := seg.Dictionary().Lookup("mr")
	assert.False(t, ok)
}

func TestSegmenter_MissingDictionary(t *testing.T) {
	cfg := Defaults()
	cfg.Dictionary = filepath.Join(t.TempDir(), "missing.pb")

	_, err := cfg.Segmenter(cfg.Logger(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}
