package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TFMV/azquery/pkg/errors"
	"github.com/TFMV/azquery/pkg/models"
	"github.com/TFMV/azquery/pkg/repositories"
)

// Metric names recorded by the query service.
const (
	MetricStatementsTotal   = "azquery_statements_total"
	MetricStatementDuration = "azquery_statement_duration_seconds"
	MetricResultRows        = "azquery_result_rows"
	MetricDangerousTotal    = "azquery_dangerous_statements_total"
)

// queryService implements QueryService interface.
type queryService struct {
	repo       repositories.QueryRepository
	logger     zerolog.Logger
	metrics    MetricsCollector
	classifier *StatementClassifier
}

// NewQueryService creates a new query service.
func NewQueryService(
	repo repositories.QueryRepository,
	logger zerolog.Logger,
	metrics MetricsCollector,
) QueryService {
	return &queryService{
		repo:       repo,
		logger:     logger.With().Str("component", "query_service").Logger(),
		metrics:    metrics,
		classifier: NewStatementClassifier(),
	}
}

// ClassifyStatement returns the kind of a SQL statement.
func (s *queryService) ClassifyStatement(query string) models.StatementKind {
	return s.classifier.ClassifyStatement(query)
}

// Execute classifies the statement and either commits it or materializes its
// result set.
func (s *queryService) Execute(ctx context.Context, query string) (*models.ExecutionResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.CodeInput, "no SQL query provided")
	}

	kind := s.classifier.ClassifyStatement(query)

	if s.classifier.IsDangerous(query) {
		s.logger.Warn().Str("kind", kind.String()).Msg("Potentially destructive statement")
		s.metrics.IncrementCounter(MetricDangerousTotal)
	}

	s.logger.Debug().
		Str("kind", kind.String()).
		Str("query", query).
		Msg("Executing statement")

	result := &models.ExecutionResult{Kind: kind}

	timer := s.metrics.StartTimer(MetricStatementDuration, "kind", kind.String())
	var err error
	switch kind {
	case models.StatementMutating:
		result.RowsAffected, err = s.repo.ExecuteUpdate(ctx, query)
	default:
		result.Table, err = s.repo.ExecuteQuery(ctx, query)
	}
	result.ExecutionTime = time.Duration(timer.Stop() * float64(time.Second))

	if err != nil {
		s.metrics.IncrementCounter(MetricStatementsTotal, "kind", kind.String(), "status", "error")
		s.logger.Error().
			Err(err).
			Str("kind", kind.String()).
			Dur("execution_time", result.ExecutionTime).
			Msg("Statement execution failed")
		return nil, s.wrapExecutionError(ctx, err)
	}

	s.metrics.IncrementCounter(MetricStatementsTotal, "kind", kind.String(), "status", "success")

	event := s.logger.Info().
		Str("kind", kind.String()).
		Dur("execution_time", result.ExecutionTime)
	if kind == models.StatementMutating {
		event.Int64("rows_affected", result.RowsAffected).Msg("Statement committed")
	} else {
		s.metrics.RecordGauge(MetricResultRows, float64(result.Table.NumRows()))
		event.Int("rows", result.Table.NumRows()).Msg("Query executed successfully")
	}

	return result, nil
}

// wrapExecutionError tags driver failures with a coarse reason.
func (s *queryService) wrapExecutionError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsExecution(err) {
		return withReason(ctx, err)
	}
	return withReason(ctx, errors.Wrap(err, errors.CodeExecution, "statement execution failed"))
}

func withReason(ctx context.Context, err error) error {
	qe, ok := err.(*errors.QueryError)
	if !ok {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return qe.WithDetail("reason", "canceled")
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "syntax"):
		return qe.WithDetail("reason", "syntax")
	case strings.Contains(errStr, "invalid object name"), strings.Contains(errStr, "does not exist"):
		return qe.WithDetail("reason", "not_found")
	case strings.Contains(errStr, "permission"):
		return qe.WithDetail("reason", "permission")
	}
	return qe
}
