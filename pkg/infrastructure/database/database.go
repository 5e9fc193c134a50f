// Package database opens the single database/sql handle a run uses.
package database

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/rs/zerolog"

	"github.com/TFMV/azquery/pkg/config"
	"github.com/TFMV/azquery/pkg/errors"
)

// Open resolves the configured driver, opens a handle limited to one
// connection and pings it. On failure the handle is closed.
func Open(ctx context.Context, cfg *config.ConnectionConfig, logger zerolog.Logger) (*sql.DB, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeConfiguration, "connection config is required")
	}

	kind := ResolveKind(cfg.Driver)
	dsn, err := BuildDSN(kind, cfg)
	if err != nil {
		return nil, err
	}

	logger = logger.With().Str("component", "database").Str("driver", kind.String()).Logger()
	logger.Info().
		Str("server", cfg.Server).
		Str("database", cfg.Database).
		Msg("Connecting to database")
	logger.Debug().Str("dsn", maskDSN(dsn)).Msg("Resolved connection string")

	db, err := sql.Open(kind.DriverName(), dsn)
	if err != nil {
		return nil, connectionError(err, "failed to open database", cfg, kind)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Debug().Err(cerr).Msg("Failed to close handle after ping failure")
		}
		return nil, connectionError(err, "failed to connect to database", cfg, kind)
	}

	logger.Info().Msg("Connected to database")
	return db, nil
}

func connectionError(err error, msg string, cfg *config.ConnectionConfig, kind Kind) *errors.QueryError {
	return errors.Wrap(err, errors.CodeConnection, msg).
		WithDetail("server", cfg.Server).
		WithDetail("database", cfg.Database).
		WithDetail("driver", kind.String())
}
