package moneyservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/metrics"
	"github.com/gonzoleeman/disc-golf-scoring-app/internal/testutils"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

func win(stage int, dollars, cents int64) [moneydomain.StageCount]money.Amount {
	var w [moneydomain.StageCount]money.Amount
	w[stage-1] = money.MustNew(dollars, cents)
	return w
}

func TestSettleMoneyRound_Failures(t *testing.T) {
	lookup := &FakeRoundLookup{RoundID: 10, Players: []rounddomain.PlayerID{1, 2, 3}}

	tests := []struct {
		name      string
		req       SettleRequest
		lookupErr error
		wantErr   error
		wantTrace []string
	}{
		{
			name:      "stage code out of range",
			req:       SettleRequest{RoundID: 10, Stages: [3]int{8, 0, 0}, Winnings: []PlayerWinnings{{PlayerID: 1}}},
			wantErr:   moneydomain.ErrOutcomeOutOfRange,
			wantTrace: []string{},
		},
		{
			name:    "stage two without stage one",
			req:     SettleRequest{RoundID: 10, Stages: [3]int{0, 3, 0}, Winnings: []PlayerWinnings{{PlayerID: 1}}},
			wantErr: moneydomain.ErrDependentStage,
		},
		{
			name:    "nobody played",
			req:     SettleRequest{RoundID: 10, Stages: [3]int{2, 0, 0}},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "unknown round",
			req:     SettleRequest{RoundID: 11, Stages: [3]int{2, 0, 0}, Winnings: []PlayerWinnings{{PlayerID: 1}}},
			wantErr: ErrRoundNotFound,
		},
		{
			name:    "money player skipped the round",
			req:     SettleRequest{RoundID: 10, Stages: [3]int{2, 0, 0}, Winnings: []PlayerWinnings{{PlayerID: 1}, {PlayerID: 9}}},
			wantErr: ErrNotRoundParticipant,
		},
		{
			name: "winnings on a house stage",
			req: SettleRequest{RoundID: 10, Stages: [3]int{7, 0, 0}, Winnings: []PlayerWinnings{
				{PlayerID: 1, Stages: win(1, 3, 0)}, {PlayerID: 2},
			}},
			wantErr: moneydomain.ErrHouseStageWinnings,
		},
		{
			name: "two winners on one stage",
			req: SettleRequest{RoundID: 10, Stages: [3]int{2, 0, 0}, Winnings: []PlayerWinnings{
				{PlayerID: 1, Stages: win(1, 1, 50)}, {PlayerID: 2, Stages: win(1, 1, 50)},
			}},
			wantErr:   moneydomain.ErrMultipleClaimants,
			wantTrace: []string{},
		},
		{
			name:      "round lookup fails",
			req:       SettleRequest{RoundID: 10, Stages: [3]int{2, 0, 0}, Winnings: []PlayerWinnings{{PlayerID: 1}}},
			lookupErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMoneyRepo()
			pub := &FakePublisher{}
			l := *lookup
			l.Err = tt.lookupErr
			svc := NewMoneyService(repo, &l, moneydomain.DefaultRules(), pub, testutils.DiscardLogger(), metrics.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), nil)

			_, err := svc.SettleMoneyRound(context.Background(), tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Contains(t, err.Error(), "SettleMoneyRound: failed to get round")
			}
			if tt.wantTrace != nil {
				assert.Equal(t, tt.wantTrace, repo.Trace(), "nothing is stored")
			}
			assert.Empty(t, pub.Topics)
		})
	}
}

func TestSettleMoneyRound_StoresAndAnnounces(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	ctx := context.Background()
	rounds := rounddb.NewRepository(db)

	round := rounddomain.Round{CourseID: 1, Date: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, rounds.CreateRound(ctx, nil, &round))
	var details []rounddomain.RoundDetail
	for id := rounddomain.PlayerID(1); id <= 6; id++ {
		details = append(details, rounddomain.RoundDetail{RoundID: round.ID, PlayerID: id})
	}
	require.NoError(t, rounds.SaveDetails(ctx, nil, details))

	pub := &FakePublisher{}
	svc := NewMoneyService(moneydb.NewRepository(db), rounds, moneydomain.DefaultRules(), pub,
		testutils.DiscardLogger(), metrics.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), db)

	req := SettleRequest{RoundID: round.ID, Stages: [3]int{2, 7, 0}}
	for id := rounddomain.PlayerID(1); id <= 6; id++ {
		req.Winnings = append(req.Winnings, PlayerWinnings{PlayerID: id})
	}
	req.Winnings[2].Stages = win(1, 6, 0)

	settlement, err := svc.SettleMoneyRound(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, moneydomain.Stage2Resolved, settlement.Round.State())
	assert.True(t, settlement.House.Equal(money.Dollars(6)), "six players, one house stage")

	require.Equal(t, []string{events.MoneyRoundSettledV1}, pub.Topics)
	payload := pub.Payloads[0].(events.MoneyRoundSettledPayload)
	assert.Equal(t, int64(600), payload.HouseCents)
	assert.Equal(t, [3]int{2, 7, 0}, payload.Stages)

	stored, err := svc.GetMoneyRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, settlement.Round.Codes(), stored.Round.Codes())
	require.Len(t, stored.Details, 6)
	assert.True(t, stored.Details[2].Total().Equal(money.Dollars(6)))
	assert.True(t, stored.House.Equal(settlement.House))

	_, err = svc.GetMoneyRound(ctx, round.ID+1)
	assert.ErrorIs(t, err, ErrMoneyRoundNotFound)
}

func TestSettleMoneyRound_SaveErrorIsInfrastructure(t *testing.T) {
	repo := NewFakeMoneyRepo()
	repo.SaveSettlementFunc = func(ctx context.Context, db bun.IDB, settlement moneydomain.Settlement) error {
		return errors.New("disk full")
	}
	svc := NewMoneyService(repo, &FakeRoundLookup{RoundID: 1, Players: []rounddomain.PlayerID{1}}, moneydomain.DefaultRules(), nil,
		testutils.DiscardLogger(), metrics.NoOpMetrics{}, nil, nil)

	_, err := svc.SettleMoneyRound(context.Background(), SettleRequest{RoundID: 1, Stages: [3]int{1, 0, 0}, Winnings: []PlayerWinnings{{PlayerID: 1, Stages: win(1, 1, 0)}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save settlement")
	assert.Equal(t, []string{"SaveSettlement"}, repo.Trace())
}
