package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sbd "github.com/jamesainslie/go-sbd"
)

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SBD_CONFIG", "")
	require.NoError(t, os.Unsetenv("SBD_CONFIG"))
	configPath, segmentFile, segmentJSON, segmentSpans = "", "", false, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSegmentCmd_Args(t *testing.T) {
	out, err := execute(t, "", "segment", "Hi Mr. Kim.", "Let's meet at 3 P.M.")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"Hi Mr. Kim. \"\n2\t\"Let's meet at 3 P.M.\"\n", out)
}

func TestSegmentCmd_JSON(t *testing.T) {
	out, err := execute(t, "", "segment", "--json", "One. Two.")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"One. ", "Two."}, got)
}

func TestSegmentCmd_SpansJSON(t *testing.T) {
	out, err := execute(t, "", "segment", "--json", "--spans", "One. Two.")
	require.NoError(t, err)

	var got []sbd.Span
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []sbd.Span{
		{Text: "One. ", Start: 0, End: 5},
		{Text: "Two.", Start: 5, End: 9},
	}, got)
}

func TestSegmentCmd_Spans(t *testing.T) {
	out, err := execute(t, "", "segment", "--spans", "One. Two.")
	require.NoError(t, err)
	assert.Equal(t, "1\t0-5\t\"One. \"\n2\t5-9\t\"Two.\"\n", out)
}

func TestSegmentCmd_Stdin(t *testing.T) {
	out, err := execute(t, "Wait... what?", "segment")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"Wait... what?\"\n", out)
}

func TestSegmentCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("Steps: 1. Mix. 2. Bake."), 0o644))

	out, err := execute(t, "", "segment", "--file", path, "--json")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Steps: ", "1. Mix. ", "2. Bake."}, got)
}

func TestSegmentCmd_Errors(t *testing.T) {
	_, err := execute(t, "", "segment", "--file", "x.txt", "extra")
	assert.ErrorContains(t, err, "not both")

	_, err = execute(t, "", "segment", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "", "segment", "bad \xff text")
	assert.ErrorIs(t, err, sbd.ErrInvalidInput)
}

func TestSegmentCmd_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbd.toml")
	require.NoError(t, os.WriteFile(path, []byte("list_detection = false\n"), 0o644))

	out, err := execute(t, "", "--config", path, "segment", "--json", "Steps: 1. Mix. 2. Bake.")
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"Steps: 1. ", "Mix. ", "2. ", "Bake."}, got)
}

func TestCompleteCmd(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hello world.", "Complete: true"},
		{"Hello world", "Complete: false"},
	}

	for _, tt := range tests {
		out, err := execute(t, "", "complete", tt.text)
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}

	_, err := execute(t, "", "complete")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)

	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sbd-cli version test-version-1.0.0")
}
