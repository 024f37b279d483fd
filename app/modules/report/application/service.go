package reportservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/metrics"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/clock"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ReportService"

// RoundHistory is the read side of the round repository.
type RoundHistory interface {
	ListPlayers(ctx context.Context, db bun.IDB) ([]rounddomain.Player, error)
	ListRoundsBetween(ctx context.Context, db bun.IDB, start, end time.Time) ([]rounddomain.Round, error)
	ListDetailsForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
}

// MoneyHistory is the read side of the money repository.
type MoneyHistory interface {
	ListForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]moneydomain.MoneyRound, []moneydomain.MoneyRoundDetail, error)
}

// ReportService implements the Service interface.
type ReportService struct {
	rounds     RoundHistory
	money      MoneyHistory
	aggregator *reportdomain.Aggregator
	clock      clock.Clock
	cache      *reportCache
	logger     *slog.Logger
	metrics    metrics.ReportMetrics
	tracer     trace.Tracer
	db         *bun.DB
}

// NewReportService creates a new ReportService. A nil clock reads the system time.
func NewReportService(
	rounds RoundHistory,
	money MoneyHistory,
	aggregator *reportdomain.Aggregator,
	clk clock.Clock,
	logger *slog.Logger,
	metrics metrics.ReportMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &ReportService{
		rounds:     rounds,
		money:      money,
		aggregator: aggregator,
		clock:      clk,
		cache:      newReportCache(defaultCacheEntries),
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ReportService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ReportService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// startSpan starts a span for operations that do not go through withTelemetry.
func (s *ReportService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}
