package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

type rescheduleOutcome struct {
	view  *RoundView
	moved bool
}

// RescheduleRound changes a round's course or day. A round whose money round has been
// played cannot move.
func (s *RoundService) RescheduleRound(ctx context.Context, req RescheduleRequest) (*RoundView, error) {
	type outcomeResult = results.OperationResult[rescheduleOutcome, error]

	rescheduleTx := func(ctx context.Context, db bun.IDB) (outcomeResult, error) {
		return s.rescheduleRoundLogic(ctx, db, req)
	}

	out, err := unwrap(withTelemetry(s, ctx, "RescheduleRound", itoa(int64(req.RoundID)), func(ctx context.Context) (outcomeResult, error) {
		return runInTx(s, ctx, rescheduleTx)
	}))
	if err != nil {
		return nil, err
	}
	if out.moved {
		s.publish(ctx, events.RoundRescheduledV1, events.RoundRescheduledPayload{
			RoundID:  int64(out.view.Round.ID),
			CourseID: int64(out.view.Round.CourseID),
			Date:     out.view.Round.Day(),
		})
	}
	return out.view, nil
}

func (s *RoundService) rescheduleRoundLogic(ctx context.Context, db bun.IDB, req RescheduleRequest) (results.OperationResult[rescheduleOutcome, error], error) {
	type outcomeResult = results.OperationResult[rescheduleOutcome, error]

	round, failure, err := s.getRound(ctx, db, req.RoundID)
	if failure != nil || err != nil {
		return outcomeResult{Failure: failure}, err
	}

	if s.settlements != nil {
		settled, err := s.settlements.HasSettlement(ctx, db, round.ID)
		if err != nil {
			return outcomeResult{}, fmt.Errorf("failed to check money round: %w", err)
		}
		if settled {
			return results.FailureResult[rescheduleOutcome, error](fmt.Errorf("%w: %d", ErrRoundSettled, round.ID)), nil
		}
	}

	if _, err := s.repo.GetCourse(ctx, db, req.CourseID); err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[rescheduleOutcome, error](fmt.Errorf("%w: %d", ErrUnknownCourse, req.CourseID)), nil
		}
		return outcomeResult{}, fmt.Errorf("failed to get course: %w", err)
	}

	day := rounddomain.CalendarDay(req.Date)
	moved := !day.Equal(round.Day()) || req.CourseID != round.CourseID
	if moved {
		if failure, err := s.checkDateFree(ctx, db, day, round.ID); failure != nil || err != nil {
			return outcomeResult{Failure: failure}, err
		}
		round.CourseID = req.CourseID
		round.Date = day
		if err := s.repo.UpdateRound(ctx, db, round); err != nil {
			return outcomeResult{}, fmt.Errorf("failed to update round: %w", err)
		}
	}

	view, err := s.loadView(ctx, db, round)
	if err != nil {
		return outcomeResult{}, err
	}
	return results.SuccessResult[rescheduleOutcome, error](rescheduleOutcome{view: view, moved: moved}), nil
}
