// Package repositories defines interfaces for data access operations.
package repositories

import (
	"context"

	"github.com/TFMV/azquery/pkg/models"
)

// QueryRepository runs single statements against an open database handle.
type QueryRepository interface {
	// ExecuteQuery runs a projecting statement and materializes every row.
	ExecuteQuery(ctx context.Context, query string) (*models.ResultTable, error)
	// ExecuteUpdate runs a mutating statement in a transaction and commits it.
	// The returned count is -1 when the driver cannot report affected rows.
	ExecuteUpdate(ctx context.Context, statement string) (int64, error)
}
