package roundservice

import (
	"context"
	"errors"
	"testing"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestRescheduleRound(t *testing.T) {
	svc, pub := newStoreService(t)
	ctx := context.Background()

	first, err := svc.CreateRound(ctx, CreateRoundRequest{CourseID: 1, Date: testDay, PlayerIDs: []rounddomain.PlayerID{1, 2}})
	require.NoError(t, err)
	second, err := svc.CreateRound(ctx, CreateRoundRequest{CourseID: 1, Date: testDay.AddDate(0, 0, 7), PlayerIDs: []rounddomain.PlayerID{1, 2}})
	require.NoError(t, err)

	_, err = svc.RescheduleRound(ctx, RescheduleRequest{RoundID: first.Round.ID, CourseID: 1, Date: second.Round.Date})
	assert.ErrorIs(t, err, ErrDuplicateRoundDate)

	_, err = svc.RescheduleRound(ctx, RescheduleRequest{RoundID: first.Round.ID, CourseID: 42, Date: testDay})
	assert.ErrorIs(t, err, ErrUnknownCourse)

	// Same day, new course: the round's own date does not count as a duplicate.
	moved, err := svc.RescheduleRound(ctx, RescheduleRequest{RoundID: first.Round.ID, CourseID: 3, Date: testDay})
	require.NoError(t, err)
	assert.Equal(t, rounddomain.CourseID(3), moved.Round.CourseID)
	assert.Equal(t, "Bill's", moved.Course.Name)
	require.Len(t, pub.Events(), 3)
	assert.Equal(t, events.RoundRescheduledV1, pub.Events()[2].Topic)

	// Unchanged request is a no-op.
	_, err = svc.RescheduleRound(ctx, RescheduleRequest{RoundID: first.Round.ID, CourseID: 3, Date: testDay})
	require.NoError(t, err)
	assert.Len(t, pub.Events(), 3)
}

func TestRescheduleRound_SettledRoundIsFrozen(t *testing.T) {
	svc, _ := newStoreService(t)
	ctx := context.Background()

	view, err := svc.CreateRound(ctx, CreateRoundRequest{CourseID: 1, Date: testDay, PlayerIDs: []rounddomain.PlayerID{1, 2}})
	require.NoError(t, err)

	mr, err := moneydomain.NewMoneyRoundFromCodes(view.Round.ID, [3]int{7, 0, 0})
	require.NoError(t, err)
	settlement, err := moneydomain.Settle(mr, []moneydomain.MoneyRoundDetail{
		{RoundID: view.Round.ID, PlayerID: 1},
		{RoundID: view.Round.ID, PlayerID: 2},
	}, moneydomain.DefaultRules())
	require.NoError(t, err)
	require.NoError(t, svc.settlements.(moneydb.Repository).SaveSettlement(ctx, nil, settlement))

	_, err = svc.RescheduleRound(ctx, RescheduleRequest{RoundID: view.Round.ID, CourseID: 2, Date: testDay.AddDate(0, 0, 1)})
	assert.ErrorIs(t, err, ErrRoundSettled)
}

func TestRescheduleRound_SettlementLookupError(t *testing.T) {
	fakeRepo := NewFakeRoundRepo()
	fakeRepo.GetRoundFunc = func(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error) {
		return rounddomain.Round{ID: id, CourseID: 1, Date: testDay}, nil
	}
	settlements := &FakeSettlements{
		HasSettlementFunc: func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error) {
			return false, errors.New("money table locked")
		},
	}
	svc := newFakeService(fakeRepo, settlements, &FakePublisher{})

	_, err := svc.RescheduleRound(context.Background(), RescheduleRequest{RoundID: 5, CourseID: 1, Date: testDay})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRoundSettled)
	assert.Equal(t, []string{"GetRound"}, fakeRepo.Trace())
}
