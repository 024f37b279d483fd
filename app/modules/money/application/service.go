package moneyservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/metrics"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "MoneyService"

// RoundLookup is the part of the round repository settlement needs.
type RoundLookup interface {
	GetRound(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error)
	GetDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
}

// EventPublisher publishes JSON events; eventbus.EventBus satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, payload any) error
}

// MoneyService implements the Service interface.
type MoneyService struct {
	repo      moneydb.Repository
	rounds    RoundLookup
	rules     moneydomain.Rules
	publisher EventPublisher
	logger    *slog.Logger
	metrics   metrics.MoneyMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewMoneyService creates a new MoneyService.
func NewMoneyService(
	repo moneydb.Repository,
	rounds RoundLookup,
	rules moneydomain.Rules,
	publisher EventPublisher,
	logger *slog.Logger,
	metrics metrics.MoneyMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MoneyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MoneyService{
		repo:      repo,
		rounds:    rounds,
		rules:     rules,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// Rules returns the settlement rules in force.
func (s *MoneyService) Rules() moneydomain.Rules {
	return s.rules
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MoneyService,
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
	s *MoneyService,
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
