package reportrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/eventbus"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	reporthandlers "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/infrastructure/handlers"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

type ReportRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewReportRouter creates a router for the report module. Watermill router
// metrics are registered only when a registry is given outside of tests.
func NewReportRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
	inTestEnv bool,
) *ReportRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &ReportRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
	}
}

// Configure adds middleware and registers the cache invalidation handlers.
func (r *ReportRouter) Configure(routerCtx context.Context, service reporthandlers.CacheInvalidator) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - either in test environment or metrics not configured")
	}

	handlers := reporthandlers.NewReportHandlers(service, r.logger, r.tracer)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes every handler to its topic.
func (r *ReportRouter) RegisterHandlers(ctx context.Context, handlers reporthandlers.Handlers) error {
	eventsToHandlers := map[string]message.NoPublishHandlerFunc{
		events.RoundCreatedV1:       handle(handlers.HandleRoundCreated),
		events.RoundScoresEnteredV1: handle(handlers.HandleRoundScoresEntered),
		events.RoundScoredV1:        handle(handlers.HandleRoundScored),
		events.RoundRescheduledV1:   handle(handlers.HandleRoundRescheduled),
		events.MoneyRoundSettledV1:  handle(handlers.HandleMoneyRoundSettled),
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("report.%s", topic)
		r.Router.AddNoPublisherHandler(
			handlerName,
			topic,
			r.subscriber,
			func(msg *message.Message) error {
				if err := handlerFunc(msg); err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("handler", handlerName),
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return err
				}
				return nil
			},
		)
	}
	return nil
}

// handle decodes the JSON payload and restores the correlation id before
// calling fn. Undecodable messages are acked and dropped.
func handle[T any](fn func(ctx context.Context, payload *T) error) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		payload, err := eventbus.Decode[T](msg)
		if err != nil {
			slog.Default().Warn("Dropping undecodable message",
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil
		}
		ctx := attr.WithCorrelationID(msg.Context(), msg.Metadata.Get(eventbus.MetadataCorrelationID))
		return fn(ctx, &payload)
	}
}

// Close stops the underlying watermill router.
func (r *ReportRouter) Close() error {
	return r.Router.Close()
}
