package reporthandlers

import (
	"context"
	"sync"
	"testing"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	"github.com/gonzoleeman/disc-golf-scoring-app/internal/testutils"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

type FakeInvalidator struct {
	mu      sync.Mutex
	reasons []string
}

func (f *FakeInvalidator) InvalidateCache(ctx context.Context, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reasons = append(f.reasons, reason)
}

func (f *FakeInvalidator) Reasons() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reasons...)
}

func TestHandlers_InvalidateOnEveryEvent(t *testing.T) {
	fake := &FakeInvalidator{}
	h := NewReportHandlers(fake, testutils.DiscardLogger(), noop.NewTracerProvider().Tracer("test"))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{
			name: "round created",
			call: func() error { return h.HandleRoundCreated(ctx, &events.RoundCreatedPayload{RoundID: 1, Participants: 4}) },
			want: events.RoundCreatedV1,
		},
		{
			name: "scores entered",
			call: func() error {
				return h.HandleRoundScoresEntered(ctx, &events.RoundScoredPayload{RoundID: 1, Changed: 1})
			},
			want: events.RoundScoresEnteredV1,
		},
		{
			name: "round scored",
			call: func() error { return h.HandleRoundScored(ctx, &events.RoundScoredPayload{RoundID: 1, Changed: 2}) },
			want: events.RoundScoredV1,
		},
		{
			name: "round rescheduled",
			call: func() error { return h.HandleRoundRescheduled(ctx, &events.RoundRescheduledPayload{RoundID: 1}) },
			want: events.RoundRescheduledV1,
		},
		{
			name: "money settled",
			call: func() error {
				return h.HandleMoneyRoundSettled(ctx, &events.MoneyRoundSettledPayload{RoundID: 1, HouseCents: 300})
			},
			want: events.MoneyRoundSettledV1,
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.call())
			reasons := fake.Reasons()
			assert.Len(t, reasons, i+1)
			assert.Equal(t, tt.want, reasons[len(reasons)-1])
		})
	}
}
