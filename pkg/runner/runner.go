// Package runner wires config, query resolution, connection, execution and
// output into a single run.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TFMV/azquery/pkg/config"
	"github.com/TFMV/azquery/pkg/errors"
	"github.com/TFMV/azquery/pkg/infrastructure/database"
	"github.com/TFMV/azquery/pkg/infrastructure/metrics"
	"github.com/TFMV/azquery/pkg/models"
	"github.com/TFMV/azquery/pkg/output"
	"github.com/TFMV/azquery/pkg/repositories/sqldb"
	"github.com/TFMV/azquery/pkg/services"
)

// Messages printed to stdout in quick mode.
const (
	QuickResultHeader = "Query result:"
	QuickNoData       = "No data found"
	QuickSuccess      = "Query executed successfully"
)

// Options holds the settings for one run.
type Options struct {
	ConfigPath  string
	Query       string
	QueryFile   string
	OutputPath  string
	Format      output.Format
	MetricsFile string

	// Quick prints plain status lines to stdout and always renders results
	// as a table.
	Quick bool
}

// Streams are the process streams a run reads from and writes to.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive enables the query prompt on Stderr.
	Interactive bool
}

type opener func(ctx context.Context, cfg *config.ConnectionConfig, logger zerolog.Logger) (*sql.DB, error)

// Runner executes the query pipeline.
type Runner struct {
	streams Streams
	logger  zerolog.Logger
	open    opener
}

// New creates a runner.
func New(streams Streams, logger zerolog.Logger) *Runner {
	return &Runner{
		streams: streams,
		logger:  logger,
		open:    database.Open,
	}
}

// Run performs one full invocation. The database handle, once opened, is
// closed before Run returns on every path.
func (r *Runner) Run(ctx context.Context, opts Options) (err error) {
	logger := r.logger.With().Str("run_id", uuid.NewString()).Logger()

	collector := metrics.NewNoOpCollector()
	if opts.MetricsFile != "" {
		collector = metrics.NewPrometheusCollector()
		defer func() {
			if werr := collector.WriteTextfile(opts.MetricsFile); werr != nil {
				logger.Error().Err(werr).Msg("Failed to write metrics")
				if err == nil {
					err = werr
				}
			}
		}()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger.Debug().Str("config", cfg.String()).Msg("Configuration loaded")

	resolver := services.NewQueryResolver(r.streams.Stdin, r.streams.Stderr, r.streams.Interactive, logger)
	query, err := resolver.Resolve(services.QueryInput{
		Query:     opts.Query,
		QueryFile: opts.QueryFile,
	})
	if err != nil {
		return err
	}

	db, err := r.open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close database connection")
			return
		}
		logger.Debug().Msg("Database connection closed")
	}()

	repo := sqldb.NewQueryRepository(db, logger.With().Str("component", "repository").Logger())
	svc := services.NewQueryService(repo, logger, collector)

	result, err := svc.Execute(ctx, query)
	if err != nil {
		return err
	}

	if opts.Quick {
		return r.printQuick(result)
	}

	if result.Kind == models.StatementMutating {
		logger.Info().Msg("Query executed successfully.")
		return nil
	}

	sink := output.NewSink(r.streams.Stdout, opts.OutputPath, opts.Format, logger)
	_, err = sink.Emit(result.Table)
	return err
}

func (r *Runner) printQuick(result *models.ExecutionResult) error {
	var err error
	switch {
	case result.Kind == models.StatementMutating:
		_, err = fmt.Fprintln(r.streams.Stdout, QuickSuccess)
	case result.Table.Empty():
		_, err = fmt.Fprintln(r.streams.Stdout, QuickNoData)
	default:
		if _, err = fmt.Fprintf(r.streams.Stdout, "%s\n\n", QuickResultHeader); err == nil {
			err = output.WriteTable(r.streams.Stdout, result.Table)
		}
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeOutput, "failed to write result")
	}
	return nil
}
