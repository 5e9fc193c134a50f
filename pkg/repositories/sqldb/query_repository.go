// Package sqldb provides a database/sql implementation of the query repository.
// It is driver agnostic: SQL Server, ODBC, PostgreSQL and DuckDB handles all
// go through the same code.
package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/TFMV/azquery/pkg/errors"
	"github.com/TFMV/azquery/pkg/models"
	"github.com/TFMV/azquery/pkg/repositories"
)

// queryRepository implements repositories.QueryRepository over *sql.DB.
type queryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewQueryRepository creates a new query repository.
func NewQueryRepository(db *sql.DB, logger zerolog.Logger) repositories.QueryRepository {
	return &queryRepository{
		db:     db,
		logger: logger,
	}
}

// ExecuteQuery executes a query and returns the full result set.
func (r *queryRepository) ExecuteQuery(ctx context.Context, query string) (*models.ResultTable, error) {
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExecution, "error executing query")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExecution, "failed to read result columns")
	}

	typeNames := make([]string, len(columns))
	if colTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range colTypes {
			typeNames[i] = ct.DatabaseTypeName()
		}
	}

	table := &models.ResultTable{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, errors.CodeExecution, "failed to scan result row")
		}
		row := make([]any, len(columns))
		for i, v := range values {
			row[i] = normalizeValue(v, typeNames[i])
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeExecution, "error reading query results")
	}

	r.logger.Debug().
		Int("columns", len(columns)).
		Int("rows", len(table.Rows)).
		Dur("execution_time", time.Since(start)).
		Msg("Query results read complete")

	return table, nil
}

// ExecuteUpdate executes a statement inside a transaction and commits it.
func (r *queryRepository) ExecuteUpdate(ctx context.Context, statement string) (int64, error) {
	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeExecution, "failed to begin transaction")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			r.logger.Error().Err(err).Msg("failed to rollback transaction")
		}
	}()

	result, err := tx.ExecContext(ctx, statement)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeExecution, "error executing statement")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Debug().Err(err).Msg("Driver does not report affected rows")
		rowsAffected = -1
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, errors.CodeExecution, "failed to commit transaction")
	}

	r.logger.Debug().
		Int64("rows_affected", rowsAffected).
		Dur("execution_time", time.Since(start)).
		Msg("Statement committed")

	return rowsAffected, nil
}
