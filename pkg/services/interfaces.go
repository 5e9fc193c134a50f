// Package services contains business logic implementations.
package services

import (
	"context"

	"github.com/TFMV/azquery/pkg/infrastructure/metrics"
	"github.com/TFMV/azquery/pkg/models"
)

// QueryService runs a single resolved statement.
type QueryService interface {
	Execute(ctx context.Context, query string) (*models.ExecutionResult, error)
	ClassifyStatement(query string) models.StatementKind
}

// MetricsCollector defines metrics collection interface.
type MetricsCollector interface {
	IncrementCounter(name string, labels ...string)
	RecordHistogram(name string, value float64, labels ...string)
	RecordGauge(name string, value float64, labels ...string)
	StartTimer(name string, labels ...string) metrics.Timer
}
