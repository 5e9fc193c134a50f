// Package main provides quickquery, a minimal one-shot query tool that reads
// its connection settings from info.json in the working directory.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/TFMV/azquery/pkg/config"
	"github.com/TFMV/azquery/pkg/runner"
)

// DefaultQuery runs when no query argument is given.
const DefaultQuery = "SELECT * FROM YourTable"

var rootCmd = &cobra.Command{
	Use:   "quickquery [query]",
	Short: "Run one SQL statement using info.json",
	Long: `Run one SQL statement using the connection settings in ./info.json.

Example:
  quickquery
  quickquery "DELETE FROM YourTable WHERE id = 1"`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuick,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func queryFromArgs(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	return DefaultQuery
}

func runQuick(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Str("service", "quickquery").
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Streams{
		Stdin:  os.Stdin,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, logger)

	return r.Run(ctx, runner.Options{
		ConfigPath: config.DefaultPath,
		Query:      queryFromArgs(args),
		Quick:      true,
	})
}
