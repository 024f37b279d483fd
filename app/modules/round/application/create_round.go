package roundservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

type viewResult = results.OperationResult[*RoundView, error]

// CreateRound schedules a round and creates an unscored detail row for every participant.
func (s *RoundService) CreateRound(ctx context.Context, req CreateRoundRequest) (*RoundView, error) {
	createTx := func(ctx context.Context, db bun.IDB) (viewResult, error) {
		return s.createRoundLogic(ctx, db, req)
	}

	identifier := rounddomain.CalendarDay(req.Date).Format("2006-01-02")
	view, err := unwrap(withTelemetry(s, ctx, "CreateRound", identifier, func(ctx context.Context) (viewResult, error) {
		return runInTx(s, ctx, createTx)
	}))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.RoundCreatedV1, events.RoundCreatedPayload{
		RoundID:      int64(view.Round.ID),
		CourseID:     int64(view.Round.CourseID),
		Date:         view.Round.Day(),
		Participants: len(view.Details),
	})
	return view, nil
}

func (s *RoundService) createRoundLogic(ctx context.Context, db bun.IDB, req CreateRoundRequest) (viewResult, error) {
	if len(req.PlayerIDs) == 0 {
		return results.FailureResult[*RoundView, error](ErrEmptyRoster), nil
	}

	course, err := s.repo.GetCourse(ctx, db, req.CourseID)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*RoundView, error](fmt.Errorf("%w: %d", ErrUnknownCourse, req.CourseID)), nil
		}
		return viewResult{}, fmt.Errorf("failed to get course: %w", err)
	}

	seen := make(map[rounddomain.PlayerID]struct{}, len(req.PlayerIDs))
	players := make(map[rounddomain.PlayerID]rounddomain.Player, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if _, dup := seen[id]; dup {
			return results.FailureResult[*RoundView, error](fmt.Errorf("%w: %d", ErrDuplicatePlayer, id)), nil
		}
		seen[id] = struct{}{}

		player, err := s.repo.GetPlayer(ctx, db, id)
		if err != nil {
			if errors.Is(err, rounddb.ErrNotFound) {
				return results.FailureResult[*RoundView, error](fmt.Errorf("%w: %d", ErrUnknownPlayer, id)), nil
			}
			return viewResult{}, fmt.Errorf("failed to get player: %w", err)
		}
		players[id] = player
	}

	day := rounddomain.CalendarDay(req.Date)
	if failure, err := s.checkDateFree(ctx, db, day, 0); failure != nil || err != nil {
		return viewResult{Failure: failure}, err
	}

	round := rounddomain.Round{CourseID: course.ID, Date: day}
	if err := s.repo.CreateRound(ctx, db, &round); err != nil {
		return viewResult{}, fmt.Errorf("failed to create round: %w", err)
	}

	details := make([]rounddomain.RoundDetail, 0, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		details = append(details, rounddomain.RoundDetail{RoundID: round.ID, PlayerID: id})
	}
	rounddomain.SortByPlayer(details)
	if err := s.repo.SaveDetails(ctx, db, details); err != nil {
		return viewResult{}, fmt.Errorf("failed to create round details: %w", err)
	}

	return results.SuccessResult[*RoundView, error](&RoundView{
		Round:   round,
		Course:  course,
		Details: details,
		Players: players,
	}), nil
}

// checkDateFree returns a failure when a round other than self is on day.
func (s *RoundService) checkDateFree(ctx context.Context, db bun.IDB, day time.Time, self rounddomain.RoundID) (*error, error) {
	existing, err := s.repo.FindRoundByDate(ctx, db, day)
	switch {
	case errors.Is(err, rounddb.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to check round date: %w", err)
	case existing.ID == self:
		return nil, nil
	}
	failure := fmt.Errorf("%w: round %d is already on %s", ErrDuplicateRoundDate, existing.ID, existing.Day().Format("2006-01-02"))
	return &failure, nil
}
