package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	logger := setupLogging(&buf, false, true)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"service":"azquery"`)

	buf.Reset()
	verbose := setupLogging(&buf, true, true)
	assert.Equal(t, zerolog.DebugLevel, verbose.GetLevel())
	verbose.Debug().Msg("details")
	assert.Contains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), `"caller"`)
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogging(&buf, false, false)
	logger.Info().Msg("No data found.")

	assert.Contains(t, buf.String(), "No data found.")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestFlags(t *testing.T) {
	flags := rootCmd.Flags()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{name: "config", shorthand: "c", def: "info.json"},
		{name: "query", shorthand: "q", def: ""},
		{name: "query-file", shorthand: "f", def: ""},
		{name: "output", shorthand: "o", def: ""},
		{name: "format", def: "csv"},
		{name: "verbose", shorthand: "v", def: "false"},
		{name: "log-json", def: "false"},
		{name: "metrics-file", def: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flags.Lookup(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.shorthand, f.Shorthand)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Version:    dev")
}

func TestRootCommand_RejectsUnknownFormat(t *testing.T) {
	rootCmd.SetArgs([]string{"--format", "parquet", "--query", "SELECT 1"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRootCommand_FailureNotLogged(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "missing.json"),
		"--query", "SELECT 1",
		"--format", "csv",
		"--log-json",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIGURATION_ERROR")

	assert.Empty(t, stdout.String())
	assert.NotContains(t, stderr.String(), "CONFIGURATION_ERROR")
	assert.NotContains(t, stderr.String(), `"level":"error"`)
}
