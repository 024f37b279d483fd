package roundservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

// GetRound returns a round with its course, details and participants.
func (s *RoundService) GetRound(ctx context.Context, roundID rounddomain.RoundID) (*RoundView, error) {
	getTx := func(ctx context.Context, db bun.IDB) (viewResult, error) {
		round, failure, err := s.getRound(ctx, db, roundID)
		if failure != nil || err != nil {
			return viewResult{Failure: failure}, err
		}
		view, err := s.loadView(ctx, db, round)
		if err != nil {
			return viewResult{}, err
		}
		return results.SuccessResult[*RoundView, error](view), nil
	}

	return unwrap(withTelemetry(s, ctx, "GetRound", itoa(int64(roundID)), func(ctx context.Context) (viewResult, error) {
		return runInTx(s, ctx, getTx)
	}))
}

// ListRounds returns the rounds between start and end inclusive, oldest first.
// A zero start or end leaves that side open.
func (s *RoundService) ListRounds(ctx context.Context, start, end time.Time) ([]rounddomain.Round, error) {
	type listResult = results.OperationResult[[]rounddomain.Round, error]

	identifier := start.Format("2006-01-02") + ".." + end.Format("2006-01-02")
	return unwrap(withTelemetry(s, ctx, "ListRounds", identifier, func(ctx context.Context) (listResult, error) {
		rounds, err := s.repo.ListRoundsBetween(ctx, nil, start, end)
		if err != nil {
			return listResult{}, fmt.Errorf("failed to list rounds: %w", err)
		}
		return results.SuccessResult[[]rounddomain.Round, error](rounds), nil
	}))
}

func (s *RoundService) ListPlayers(ctx context.Context) ([]rounddomain.Player, error) {
	type listResult = results.OperationResult[[]rounddomain.Player, error]

	return unwrap(withTelemetry(s, ctx, "ListPlayers", "all", func(ctx context.Context) (listResult, error) {
		players, err := s.repo.ListPlayers(ctx, nil)
		if err != nil {
			return listResult{}, fmt.Errorf("failed to list players: %w", err)
		}
		return results.SuccessResult[[]rounddomain.Player, error](players), nil
	}))
}

func (s *RoundService) ListCourses(ctx context.Context) ([]rounddomain.Course, error) {
	type listResult = results.OperationResult[[]rounddomain.Course, error]

	return unwrap(withTelemetry(s, ctx, "ListCourses", "all", func(ctx context.Context) (listResult, error) {
		courses, err := s.repo.ListCourses(ctx, nil)
		if err != nil {
			return listResult{}, fmt.Errorf("failed to list courses: %w", err)
		}
		return results.SuccessResult[[]rounddomain.Course, error](courses), nil
	}))
}

// getRound maps a missing round to a failure.
func (s *RoundService) getRound(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (rounddomain.Round, *error, error) {
	round, err := s.repo.GetRound(ctx, db, roundID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			failure := fmt.Errorf("%w: %d", ErrRoundNotFound, roundID)
			return rounddomain.Round{}, &failure, nil
		}
		return rounddomain.Round{}, nil, fmt.Errorf("failed to get round: %w", err)
	}
	return round, nil, nil
}

func (s *RoundService) loadView(ctx context.Context, db bun.IDB, round rounddomain.Round) (*RoundView, error) {
	details, err := s.repo.GetDetails(ctx, db, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get details: %w", err)
	}
	return s.loadViewWithDetails(ctx, db, round, details)
}

func (s *RoundService) loadViewWithDetails(ctx context.Context, db bun.IDB, round rounddomain.Round, details []rounddomain.RoundDetail) (*RoundView, error) {
	course, err := s.repo.GetCourse(ctx, db, round.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", round.CourseID, err)
	}
	players, err := s.playersByID(ctx, db)
	if err != nil {
		return nil, err
	}

	view := &RoundView{
		Round:   round,
		Course:  course,
		Details: details,
		Players: make(map[rounddomain.PlayerID]rounddomain.Player, len(details)),
	}
	for _, d := range details {
		if p, ok := players[d.PlayerID]; ok {
			view.Players[d.PlayerID] = p
		}
	}
	return view, nil
}

func (s *RoundService) playersByID(ctx context.Context, db bun.IDB) (map[rounddomain.PlayerID]rounddomain.Player, error) {
	roster, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	byID := make(map[rounddomain.PlayerID]rounddomain.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}
	return byID, nil
}
