// Package main provides the azquery command-line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TFMV/azquery/pkg/config"
	"github.com/TFMV/azquery/pkg/errors"
	"github.com/TFMV/azquery/pkg/output"
	"github.com/TFMV/azquery/pkg/runner"
	"github.com/TFMV/azquery/pkg/services"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var formatFlag = output.FormatCSV

var rootCmd = &cobra.Command{
	Use:   "azquery",
	Short: "Run a SQL statement against SQL Server or Azure SQL",
	Long: `Run a single SQL statement against a SQL Server or Azure SQL database.

INSERT, UPDATE and DELETE statements are committed. Anything else is treated as
a query: its rows are printed as a table or exported to a file.

Example:
  azquery --config info.json --query "SELECT * FROM YourTable" --output results.csv --format csv --verbose
  azquery -f report.sql -o report.xlsx --format xlsx`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuery,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("config", "c", config.DefaultPath, "path to the JSON file with database connection info")
	flags.StringP("query", "q", "", "SQL statement to execute")
	flags.StringP("query-file", "f", "", "path to a file containing the SQL statement")
	flags.StringP("output", "o", "", "file to save results to (prints a table when empty)")
	flags.Var(&formatFlag, "format", "output format for saved results (csv|xlsx|json)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("log-json", false, "write logs as JSON lines")
	flags.String("metrics-file", "", "write run metrics in Prometheus text format to this file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "azquery\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			fmt.Fprintf(out, "Build Date: %s\n", buildDate)
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newViper binds the command flags and AZQUERY_* environment variables.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(v.GetString("format"))
	if err != nil {
		return errors.Wrap(err, errors.CodeConfiguration, "invalid output format")
	}

	logger := setupLogging(cmd.ErrOrStderr(), v.GetBool("verbose"), v.GetBool("log-json"))
	logger.Debug().
		Str("version", version).
		Str("commit", commit).
		Msg("Starting azquery")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Streams{
		Stdin:       os.Stdin,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Interactive: services.StdinIsTerminal(),
	}, logger)

	return r.Run(ctx, runner.Options{
		ConfigPath:  v.GetString("config"),
		Query:       v.GetString("query"),
		QueryFile:   v.GetString("query-file"),
		OutputPath:  v.GetString("output"),
		Format:      format,
		MetricsFile: v.GetString("metrics-file"),
	})
}
