// Package models provides data structures shared across the query pipeline.
package models

import (
	"time"
)

// StatementKind tags a statement as mutating or projecting.
type StatementKind int

const (
	// StatementProjecting is any statement expected to return a result set.
	StatementProjecting StatementKind = iota
	// StatementMutating is an INSERT, UPDATE or DELETE that must be committed.
	StatementMutating
)

// String returns the string representation of the statement kind.
func (k StatementKind) String() string {
	switch k {
	case StatementMutating:
		return "mutating"
	case StatementProjecting:
		return "projecting"
	default:
		return "unknown"
	}
}

// ResultTable is a fully materialized result set.
// Every row holds exactly one value per column, in column order.
type ResultTable struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the table has no rows.
func (t *ResultTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// NumRows returns the number of data rows.
func (t *ResultTable) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ExecutionResult represents the outcome of running one statement.
type ExecutionResult struct {
	Kind          StatementKind `json:"kind"`
	RowsAffected  int64         `json:"rows_affected"`
	Table         *ResultTable  `json:"-"`
	ExecutionTime time.Duration `json:"execution_time"`
}
