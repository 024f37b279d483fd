package reporthandlers

import (
	"context"
	"log/slog"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// CacheInvalidator is the part of the report service the handlers drive.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context, reason string)
}

// ReportHandlers implements the Handlers interface.
type ReportHandlers struct {
	service CacheInvalidator
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewReportHandlers creates a new ReportHandlers instance.
func NewReportHandlers(service CacheInvalidator, logger *slog.Logger, tracer trace.Tracer) Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *ReportHandlers) HandleRoundCreated(ctx context.Context, payload *events.RoundCreatedPayload) error {
	ctx, span := h.startSpan(ctx, "ReportHandlers.HandleRoundCreated")
	defer span.End()

	h.logger.InfoContext(ctx, "Round created, dropping cached reports",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.Int("participants", payload.Participants),
	)
	h.service.InvalidateCache(ctx, events.RoundCreatedV1)
	return nil
}

func (h *ReportHandlers) HandleRoundScoresEntered(ctx context.Context, payload *events.RoundScoredPayload) error {
	ctx, span := h.startSpan(ctx, "ReportHandlers.HandleRoundScoresEntered")
	defer span.End()

	h.logger.InfoContext(ctx, "Round scores entered, dropping cached reports",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.Int("changed", payload.Changed),
	)
	h.service.InvalidateCache(ctx, events.RoundScoresEnteredV1)
	return nil
}

func (h *ReportHandlers) HandleRoundScored(ctx context.Context, payload *events.RoundScoredPayload) error {
	ctx, span := h.startSpan(ctx, "ReportHandlers.HandleRoundScored")
	defer span.End()

	h.logger.InfoContext(ctx, "Round scored, dropping cached reports",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.Int("changed", payload.Changed),
	)
	h.service.InvalidateCache(ctx, events.RoundScoredV1)
	return nil
}

func (h *ReportHandlers) HandleRoundRescheduled(ctx context.Context, payload *events.RoundRescheduledPayload) error {
	ctx, span := h.startSpan(ctx, "ReportHandlers.HandleRoundRescheduled")
	defer span.End()

	h.logger.InfoContext(ctx, "Round rescheduled, dropping cached reports",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
	)
	h.service.InvalidateCache(ctx, events.RoundRescheduledV1)
	return nil
}

func (h *ReportHandlers) HandleMoneyRoundSettled(ctx context.Context, payload *events.MoneyRoundSettledPayload) error {
	ctx, span := h.startSpan(ctx, "ReportHandlers.HandleMoneyRoundSettled")
	defer span.End()

	h.logger.InfoContext(ctx, "Money round settled, dropping cached reports",
		attr.ExtractCorrelationID(ctx),
		attr.RoundID(payload.RoundID),
		attr.Int64("house_cents", payload.HouseCents),
	)
	h.service.InvalidateCache(ctx, events.MoneyRoundSettledV1)
	return nil
}

func (h *ReportHandlers) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if h.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return h.tracer.Start(ctx, name)
}
