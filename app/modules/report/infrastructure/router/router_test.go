package reportrouter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/eventbus"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingInvalidator struct {
	mu      sync.Mutex
	reasons []string
	ids     []string
	done    chan struct{}
}

func (r *recordingInvalidator) InvalidateCache(ctx context.Context, reason string) {
	r.mu.Lock()
	r.reasons = append(r.reasons, reason)
	r.ids = append(r.ids, attr.CorrelationID(ctx))
	r.mu.Unlock()
	r.done <- struct{}{}
}

func TestReportRouter_InvalidatesOnPublishedEvents(t *testing.T) {
	logger := testutils.DiscardLogger()
	bus := eventbus.NewEventBus(logger, 16)
	t.Cleanup(func() { _ = bus.Close() })

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	inv := &recordingInvalidator{done: make(chan struct{}, 4)}
	r := NewReportRouter(logger, wmRouter, bus, noop.NewTracerProvider().Tracer("test"), nil, true)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, r.Configure(ctx, inv))

	go func() { _ = wmRouter.Run(ctx) }()
	<-wmRouter.Running()
	t.Cleanup(func() { _ = r.Close() })

	pubCtx := attr.WithCorrelationID(context.Background(), "corr-1")
	require.NoError(t, bus.PublishEvent(pubCtx, events.RoundScoredV1, events.RoundScoredPayload{RoundID: 7, Changed: 1}))
	require.NoError(t, bus.PublishEvent(pubCtx, events.MoneyRoundSettledV1, events.MoneyRoundSettledPayload{RoundID: 7}))

	for range 2 {
		select {
		case <-inv.done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for the handler")
		}
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	assert.ElementsMatch(t, []string{events.RoundScoredV1, events.MoneyRoundSettledV1}, inv.reasons)
	assert.Equal(t, []string{"corr-1", "corr-1"}, inv.ids)
}

func TestReportRouter_PublishReturnsAfterInvalidation(t *testing.T) {
	logger := testutils.DiscardLogger()
	bus := eventbus.NewEventBus(logger, 0)
	t.Cleanup(func() { _ = bus.Close() })

	wmRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	require.NoError(t, err)

	inv := &recordingInvalidator{done: make(chan struct{}, 4)}
	r := NewReportRouter(logger, wmRouter, bus, noop.NewTracerProvider().Tracer("test"), nil, true)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, r.Configure(ctx, inv))

	go func() { _ = wmRouter.Run(ctx) }()
	<-wmRouter.Running()
	t.Cleanup(func() { _ = r.Close() })

	reasons := func() []string {
		inv.mu.Lock()
		defer inv.mu.Unlock()
		return append([]string(nil), inv.reasons...)
	}

	require.NoError(t, bus.PublishEvent(ctx, events.RoundCreatedV1, events.RoundCreatedPayload{RoundID: 3, Participants: 2}))
	assert.Equal(t, []string{events.RoundCreatedV1}, reasons(), "handled before publish returned")

	require.NoError(t, bus.PublishEvent(ctx, events.RoundScoresEnteredV1, events.RoundScoredPayload{RoundID: 3, Changed: 1}))
	assert.Equal(t, []string{events.RoundCreatedV1, events.RoundScoresEnteredV1}, reasons())
}

func TestHandle_DropsUndecodablePayload(t *testing.T) {
	called := false
	h := handle(func(ctx context.Context, payload *events.RoundScoredPayload) error {
		called = true
		return nil
	})
	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	assert.NoError(t, h(msg))
	assert.False(t, called)
}
