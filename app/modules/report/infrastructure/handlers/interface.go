package reporthandlers

import (
	"context"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
)

// Handlers react to events that make cached reports stale.
type Handlers interface {
	HandleRoundCreated(ctx context.Context, payload *events.RoundCreatedPayload) error
	HandleRoundScoresEntered(ctx context.Context, payload *events.RoundScoredPayload) error
	HandleRoundScored(ctx context.Context, payload *events.RoundScoredPayload) error
	HandleRoundRescheduled(ctx context.Context, payload *events.RoundRescheduledPayload) error
	HandleMoneyRoundSettled(ctx context.Context, payload *events.MoneyRoundSettledPayload) error
}
