package rounddb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/internal/testutils"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRepository_SeededRoster(t *testing.T) {
	repo := rounddb.NewRepository(testutils.NewSQLiteDB(t))
	ctx := context.Background()

	players, err := repo.ListPlayers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, players, 11)
	assert.Equal(t, "Gary", players[0].Name)

	courses, err := repo.ListCourses(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, courses, 5)

	p := rounddomain.Player{Name: "Sam", FullName: "Sam Example"}
	require.NoError(t, repo.CreatePlayer(ctx, nil, &p))
	assert.Greater(t, int64(p.ID), int64(11), "new players continue after the seeded ids")

	_, err = repo.GetCourse(ctx, nil, 99)
	assert.ErrorIs(t, err, rounddb.ErrNotFound)
}

func TestRepository_RoundLifecycle(t *testing.T) {
	repo := rounddb.NewRepository(testutils.NewSQLiteDB(t))
	ctx := context.Background()

	round := rounddomain.Round{CourseID: 1, Date: day("2015-01-12").Add(15 * time.Hour)}
	require.NoError(t, repo.CreateRound(ctx, nil, &round))
	require.NotZero(t, round.ID)

	got, err := repo.GetRound(ctx, nil, round.ID)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(day("2015-01-12")), "dates are stored as calendar days")

	byDate, err := repo.FindRoundByDate(ctx, nil, day("2015-01-12").Add(20*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, round.ID, byDate.ID)

	_, err = repo.FindRoundByDate(ctx, nil, day("2015-01-13"))
	assert.True(t, errors.Is(err, rounddb.ErrNotFound))

	got.Date = day("2015-01-14")
	got.CourseID = 2
	require.NoError(t, repo.UpdateRound(ctx, nil, got))
	assert.ErrorIs(t, repo.UpdateRound(ctx, nil, rounddomain.Round{ID: 999, CourseID: 1, Date: day("2015-02-01")}), rounddb.ErrNoRowsAffected)

	second := rounddomain.Round{CourseID: 3, Date: day("2015-03-01")}
	require.NoError(t, repo.CreateRound(ctx, nil, &second))

	all, err := repo.ListRoundsBetween(ctx, nil, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, round.ID, all[0].ID)

	feb, err := repo.ListRoundsBetween(ctx, nil, day("2015-02-01"), day("2015-03-01"))
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, second.ID, feb[0].ID)
}

func TestRepository_DuplicateDateRejected(t *testing.T) {
	repo := rounddb.NewRepository(testutils.NewSQLiteDB(t))
	ctx := context.Background()

	first := rounddomain.Round{CourseID: 1, Date: day("2016-05-01")}
	require.NoError(t, repo.CreateRound(ctx, nil, &first))
	dup := rounddomain.Round{CourseID: 2, Date: day("2016-05-01")}
	assert.Error(t, repo.CreateRound(ctx, nil, &dup))
}

func TestRepository_SaveDetailsRoundTrip(t *testing.T) {
	repo := rounddb.NewRepository(testutils.NewSQLiteDB(t))
	ctx := context.Background()

	round := rounddomain.Round{CourseID: 1, Date: day("2015-01-12")}
	require.NoError(t, repo.CreateRound(ctx, nil, &round))

	details := []rounddomain.RoundDetail{
		{RoundID: round.ID, PlayerID: 1, FrontRaw: rounddomain.IntPtr(-3), BackRaw: rounddomain.IntPtr(-2),
			FrontPoints: fraction.New(15, 2), BackPoints: fraction.FromInt(9), OverallPoints: fraction.New(25, 2)},
		{RoundID: round.ID, PlayerID: 4, Aces: 1},
	}
	require.NoError(t, repo.SaveDetails(ctx, nil, details))

	got, err := repo.GetDetails(ctx, nil, round.ID)
	require.NoError(t, err)
	assert.True(t, rounddomain.DetailsEqual(details, got), "got %+v", got)
	assert.False(t, got[1].HasRawScores())

	// Upsert replaces the existing row.
	details[1].SetRawScores(1, 0)
	require.NoError(t, repo.SaveDetails(ctx, nil, details[1:]))
	got, err = repo.GetDetails(ctx, nil, round.ID)
	require.NoError(t, err)
	assert.True(t, rounddomain.DetailsEqual(details, got))

	listed, err := repo.ListDetailsForRounds(ctx, nil, []rounddomain.RoundID{round.ID, 999})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	none, err := repo.ListDetailsForRounds(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
