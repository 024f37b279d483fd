package reportdomain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// scoredRound builds and scores a round from (player, front, back) triples.
func scoredRound(t *testing.T, id rounddomain.RoundID, raws ...[3]int) []rounddomain.RoundDetail {
	t.Helper()
	details := make([]rounddomain.RoundDetail, 0, len(raws))
	for _, r := range raws {
		details = append(details, rounddomain.RoundDetail{
			RoundID:  id,
			PlayerID: rounddomain.PlayerID(r[0]),
			FrontRaw: rounddomain.IntPtr(r[1]),
			BackRaw:  rounddomain.IntPtr(r[2]),
		})
	}
	require.NoError(t, rounddomain.NewScorer(rounddomain.DefaultRules()).Score(details))
	return details
}

func newTestAggregator() *Aggregator {
	return NewAggregator(rounddomain.DefaultRules(), moneydomain.DefaultRules())
}

func TestAggregate_WindowIsInclusive(t *testing.T) {
	h := History{
		Rounds: []rounddomain.Round{
			{ID: 1, Date: day(2024, 5, 31)},
			{ID: 2, Date: day(2024, 6, 1)},
			{ID: 3, Date: day(2024, 6, 30).Add(18 * time.Hour)},
			{ID: 4, Date: day(2024, 7, 1)},
		},
	}
	for id := rounddomain.RoundID(1); id <= 4; id++ {
		h.Details = append(h.Details, scoredRound(t, id, [3]int{1, 0, 0})...)
	}

	rng, err := NewDateRange(day(2024, 6, 1), day(2024, 6, 30))
	require.NoError(t, err)

	rep := newTestAggregator().Aggregate(rng, h)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, 2, rep.Results[0].Rounds, "rounds on both boundaries count, neighbours do not")
	assert.Equal(t, 2, rep.RoundCount)
	assert.Equal(t, 1, rep.ParticipantCount)
}

func TestAggregate_Statistics(t *testing.T) {
	h := History{
		Rounds: []rounddomain.Round{
			{ID: 1, Date: day(2024, 6, 1)},
			{ID: 2, Date: day(2024, 6, 8)},
		},
	}
	// Round 1: player 1 wins everything outright.
	h.Details = append(h.Details, scoredRound(t, 1, [3]int{1, -3, -2}, [3]int{2, 0, 0}, [3]int{3, 1, 1})...)
	// Round 2: players 1 and 2 tie on the front, player 2 wins back and overall.
	h.Details = append(h.Details, scoredRound(t, 2, [3]int{1, -1, 2}, [3]int{2, -1, -1}, [3]int{3, 4, 0})...)
	h.Details[0].Aces = 1
	h.Details[4].Eagles = 2

	rep := newTestAggregator().Aggregate(DateRange{Start: day(2024, 6, 1), End: day(2024, 6, 30)}, h)
	require.Len(t, rep.Results, 3)

	p1, ok := rep.Find(1)
	require.True(t, ok)
	assert.Equal(t, 2, p1.Rounds)
	assert.Equal(t, 1, p1.Aces)
	// Round 1: 9+9+15. Round 2: front 15/2, back 3, overall 10.
	assert.True(t, p1.FrontPoints.Equal(fraction.New(33, 2)), "front = %s", p1.FrontPoints)
	assert.True(t, p1.BackPoints.EqualInt(12), "back = %s", p1.BackPoints)
	assert.True(t, p1.OverallPoints.EqualInt(25), "overall = %s", p1.OverallPoints)
	assert.Equal(t, 2, p1.Won9)
	assert.Equal(t, 1, p1.Won18)
	assert.Equal(t, 1, p1.Won33)
	require.NotNil(t, p1.BestFront)
	assert.Equal(t, -3, *p1.BestFront)
	assert.Equal(t, -2, *p1.BestBack)

	p2, _ := rep.Find(2)
	assert.Equal(t, 2, p2.Eagles)
	assert.Equal(t, 1, p2.Won9, "tied front win does not count as a clean win")
	assert.Equal(t, 1, p2.Won18)
	assert.Equal(t, 0, p2.Won33)

	// Highest total first.
	assert.Equal(t, rounddomain.PlayerID(1), rep.Results[0].PlayerID)
	total := p1.TotalPoints()
	assert.True(t, p1.PointsPerRound().Equal(total.DivInt(2)))
}

func TestAggregate_MoneyAndHouse(t *testing.T) {
	h := History{
		Rounds: []rounddomain.Round{
			{ID: 1, Date: day(2024, 6, 1)},
			{ID: 2, Date: day(2023, 1, 1)},
		},
		Details: append(
			scoredRound(t, 1, [3]int{1, 0, 0}, [3]int{2, 1, 1}, [3]int{3, 2, 2}),
			scoredRound(t, 2, [3]int{1, 0, 0})...,
		),
	}
	inRange, err := moneydomain.NewMoneyRoundFromCodes(1, [3]int{2, 7, 0})
	require.NoError(t, err)
	outOfRange, err := moneydomain.NewMoneyRoundFromCodes(2, [3]int{7, 0, 0})
	require.NoError(t, err)
	h.MoneyRounds = []moneydomain.MoneyRound{inRange, outOfRange}
	h.MoneyDetails = []moneydomain.MoneyRoundDetail{
		{RoundID: 1, PlayerID: 1, Winnings: [3]money.Amount{money.Dollars(3)}},
		{RoundID: 1, PlayerID: 2},
		{RoundID: 1, PlayerID: 3},
		{RoundID: 2, PlayerID: 1, Winnings: [3]money.Amount{money.Dollars(50)}},
	}

	rep := newTestAggregator().Aggregate(DateRange{Start: day(2024, 1, 1), End: day(2024, 12, 31)}, h)

	p1, _ := rep.Find(1)
	assert.Equal(t, "$3.00", p1.MoneyWon.String())
	assert.Equal(t, "$3.00", rep.HouseFund.String(), "one house stage times three participants")
}

func TestAggregate_EmptyWindow(t *testing.T) {
	h := History{
		Rounds:  []rounddomain.Round{{ID: 1, Date: day(2024, 6, 1)}},
		Details: scoredRound(t, 1, [3]int{1, 0, 0}),
	}
	rep := newTestAggregator().Aggregate(DateRange{Start: day(2025, 1, 1), End: day(2025, 1, 31)}, h)

	assert.Empty(t, rep.Results)
	assert.Zero(t, rep.RoundCount)
	assert.Zero(t, rep.ParticipantCount)
	assert.True(t, rep.HouseFund.IsZero())
}

func TestAggregate_Deterministic(t *testing.T) {
	h := History{
		Rounds:  []rounddomain.Round{{ID: 1, Date: day(2024, 6, 1)}},
		Details: scoredRound(t, 1, [3]int{3, 0, 0}, [3]int{1, 0, 0}, [3]int{2, 0, 0}),
	}
	rng := DateRange{Start: day(2024, 1, 1), End: day(2024, 12, 31)}
	agg := newTestAggregator()

	first := agg.Aggregate(rng, h)
	second := agg.Aggregate(rng, h)
	ids := func(rep Report) []rounddomain.PlayerID {
		out := make([]rounddomain.PlayerID, 0, len(rep.Results))
		for _, r := range rep.Results {
			out = append(out, r.PlayerID)
		}
		return out
	}
	if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
		t.Fatalf("ordering differs between runs (-first +second):\n%s", diff)
	}
	// All tied: ordering falls back to participant id.
	if diff := cmp.Diff([]rounddomain.PlayerID{1, 2, 3}, ids(first)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestAggregate_SkipsUnscoredRounds(t *testing.T) {
	h := History{
		Rounds: []rounddomain.Round{
			{ID: 1, Date: day(2024, 6, 1)},
			{ID: 2, Date: day(2024, 6, 8)},
		},
		Details: append(
			scoredRound(t, 1, [3]int{1, -2, 0}, [3]int{2, 0, 0}),
			rounddomain.RoundDetail{RoundID: 2, PlayerID: 1},
			rounddomain.RoundDetail{RoundID: 2, PlayerID: 2},
		),
	}
	pending, err := moneydomain.NewMoneyRoundFromCodes(2, [3]int{7, 0, 0})
	require.NoError(t, err)
	h.MoneyRounds = []moneydomain.MoneyRound{pending}

	rep := newTestAggregator().Aggregate(DateRange{Start: day(2024, 6, 1), End: day(2024, 6, 30)}, h)

	assert.Equal(t, 1, rep.RoundCount)
	assert.True(t, rep.HouseFund.IsZero())
	p1, ok := rep.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1, p1.Rounds)
	assert.True(t, p1.PointsPerRound().Equal(p1.TotalPoints()), "ppr = %s", p1.PointsPerRound())
}

func TestAggregate_SkipsPartiallyEnteredRounds(t *testing.T) {
	h := History{
		Rounds: []rounddomain.Round{
			{ID: 1, Date: day(2024, 6, 1)},
			{ID: 2, Date: day(2024, 6, 8)},
		},
		Details: append(
			scoredRound(t, 1, [3]int{1, 1, 0}, [3]int{2, 2, 2}),
			rounddomain.RoundDetail{RoundID: 2, PlayerID: 1, FrontRaw: rounddomain.IntPtr(-6)},
			rounddomain.RoundDetail{RoundID: 2, PlayerID: 2, FrontRaw: rounddomain.IntPtr(0), BackRaw: rounddomain.IntPtr(0)},
		),
	}

	rep := newTestAggregator().Aggregate(DateRange{Start: day(2024, 6, 1), End: day(2024, 6, 30)}, h)

	assert.Equal(t, 1, rep.RoundCount)
	p1, _ := rep.Find(1)
	assert.Equal(t, 1, p1.Rounds)
	require.NotNil(t, p1.BestFront)
	assert.Equal(t, 1, *p1.BestFront)
	p2, _ := rep.Find(2)
	assert.Equal(t, 1, p2.Rounds)
	require.NotNil(t, p2.BestFront)
	assert.Equal(t, 2, *p2.BestFront)
}
