package roundservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
	"github.com/uptrace/bun"
)

type scoreResult = results.OperationResult[*ScoreResult, error]

// RecordScores sets raw results for participants of a round and re-scores the whole
// round once everybody has both halves recorded. Only rows that differ from what is
// stored are written. round.scored.v1 is published when a complete round changed,
// round.scores_entered.v1 when rows of an incomplete round were written.
func (s *RoundService) RecordScores(ctx context.Context, roundID rounddomain.RoundID, entries []ScoreEntry) (*ScoreResult, error) {
	recordTx := func(ctx context.Context, db bun.IDB) (scoreResult, error) {
		return s.recordScoresLogic(ctx, db, roundID, entries, false)
	}

	res, err := unwrap(withTelemetry(s, ctx, "RecordScores", itoa(int64(roundID)), func(ctx context.Context) (scoreResult, error) {
		return runInTx(s, ctx, recordTx)
	}))
	if err != nil {
		return nil, err
	}
	s.announceScored(ctx, res)
	return res, nil
}

func (s *RoundService) announceScored(ctx context.Context, res *ScoreResult) {
	if res.Changed == 0 {
		return
	}
	topic := events.RoundScoredV1
	if !res.Scored {
		topic = events.RoundScoresEnteredV1
	}
	s.publish(ctx, topic, events.RoundScoredPayload{
		RoundID:      int64(res.View.Round.ID),
		Date:         res.View.Round.Day(),
		Participants: len(res.View.Details),
		Changed:      res.Changed,
	})
}

// recordScoresLogic applies entries to the round's details. With addMissing set, entries
// for roster players who are not yet participants join the round instead of failing.
func (s *RoundService) recordScoresLogic(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID, entries []ScoreEntry, addMissing bool) (scoreResult, error) {
	if len(entries) == 0 {
		return results.FailureResult[*ScoreResult, error](ErrNoScores), nil
	}

	round, failure, err := s.getRound(ctx, db, roundID)
	if failure != nil || err != nil {
		return scoreResult{Failure: failure}, err
	}

	before, err := s.repo.GetDetails(ctx, db, roundID)
	if err != nil {
		return scoreResult{}, fmt.Errorf("failed to get details: %w", err)
	}

	after := make([]rounddomain.RoundDetail, len(before))
	copy(after, before)
	index := make(map[rounddomain.PlayerID]int, len(after))
	for i, d := range after {
		index[d.PlayerID] = i
	}

	seen := make(map[rounddomain.PlayerID]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.PlayerID]; dup {
			return results.FailureResult[*ScoreResult, error](fmt.Errorf("%w: %d", ErrDuplicatePlayer, e.PlayerID)), nil
		}
		seen[e.PlayerID] = struct{}{}

		if e.Aces < 0 || e.Eagles < 0 || e.AceEagles < 0 {
			return results.FailureResult[*ScoreResult, error](fmt.Errorf("%w: player %d has a negative count", ErrInvalidScore, e.PlayerID)), nil
		}

		i, ok := index[e.PlayerID]
		if !ok {
			if !addMissing {
				return results.FailureResult[*ScoreResult, error](fmt.Errorf("%w: %d", ErrPlayerNotInRound, e.PlayerID)), nil
			}
			if _, err := s.repo.GetPlayer(ctx, db, e.PlayerID); err != nil {
				if errors.Is(err, rounddb.ErrNotFound) {
					return results.FailureResult[*ScoreResult, error](fmt.Errorf("%w: %d", ErrUnknownPlayer, e.PlayerID)), nil
				}
				return scoreResult{}, fmt.Errorf("failed to get player: %w", err)
			}
			after = append(after, rounddomain.RoundDetail{RoundID: roundID, PlayerID: e.PlayerID})
			i = len(after) - 1
			index[e.PlayerID] = i
		}

		after[i].SetRawScores(e.Front, e.Back)
		after[i].Aces = e.Aces
		after[i].Eagles = e.Eagles
		after[i].AceEagles = e.AceEagles
	}

	scored := true
	for _, d := range after {
		if !d.HasRawScores() {
			scored = false
			break
		}
	}
	if scored {
		if err := s.scorer.Score(after); err != nil {
			return results.FailureResult[*ScoreResult, error](err), nil
		}
	} else {
		// Points from an earlier complete scoring are stale once the field changes.
		for i := range after {
			after[i].FrontPoints = fraction.Zero()
			after[i].BackPoints = fraction.Zero()
			after[i].OverallPoints = fraction.Zero()
		}
	}

	changed := rounddomain.ChangedDetails(before, after)
	if len(changed) > 0 {
		if err := s.repo.SaveDetails(ctx, db, changed); err != nil {
			return scoreResult{}, fmt.Errorf("failed to save details: %w", err)
		}
	}
	if scored && s.metrics != nil {
		s.metrics.RecordRoundScored(ctx, len(after), len(changed) > 0)
	}

	rounddomain.SortByPlayer(after)
	view, err := s.loadViewWithDetails(ctx, db, round, after)
	if err != nil {
		return scoreResult{}, err
	}
	return results.SuccessResult[*ScoreResult, error](&ScoreResult{
		View:    *view,
		Scored:  scored,
		Changed: len(changed),
	}), nil
}
