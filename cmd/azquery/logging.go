package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// setupLogging builds the process logger writing to w, which is the command's
// stderr so stdout carries only result tables.
func setupLogging(w io.Writer, verbose, jsonOutput bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "azquery")

	if verbose {
		logger = logger.Caller()
	}

	return logger.Logger()
}
