package moneyservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/events"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

type settlementResult = results.OperationResult[*moneydomain.Settlement, error]

// SettleMoneyRound validates and stores a money round, replacing any earlier one for the
// same round, and announces it on money.settled.v1.
func (s *MoneyService) SettleMoneyRound(ctx context.Context, req SettleRequest) (*moneydomain.Settlement, error) {
	settleTx := func(ctx context.Context, db bun.IDB) (settlementResult, error) {
		return s.settleMoneyRoundLogic(ctx, db, req)
	}

	result, err := withTelemetry(s, ctx, "SettleMoneyRound", fmt.Sprint(int64(req.RoundID)), func(ctx context.Context) (settlementResult, error) {
		return runInTx(s, ctx, settleTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		if s.metrics != nil {
			s.metrics.RecordSettlementRejected(ctx, rejectionReason(*result.Failure))
		}
		return nil, *result.Failure
	}

	settlement := *result.Success
	if s.metrics != nil {
		s.metrics.RecordSettlement(ctx, settlement.Round.State().String(), settlement.House.AsCents())
	}
	if s.publisher != nil {
		err := s.publisher.PublishEvent(ctx, events.MoneyRoundSettledV1, events.MoneyRoundSettledPayload{
			RoundID:      int64(settlement.Round.RoundID),
			Stages:       settlement.Round.Codes(),
			Participants: len(settlement.Details),
			HouseCents:   settlement.House.AsCents(),
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish money event",
				attr.ExtractCorrelationID(ctx),
				attr.RoundID(int64(settlement.Round.RoundID)),
				attr.Error(err),
			)
		}
	}
	return settlement, nil
}

func (s *MoneyService) settleMoneyRoundLogic(ctx context.Context, db bun.IDB, req SettleRequest) (settlementResult, error) {
	round, err := moneydomain.NewMoneyRoundFromCodes(req.RoundID, req.Stages)
	if err != nil {
		return results.FailureResult[*moneydomain.Settlement, error](err), nil
	}
	if len(req.Winnings) == 0 {
		return results.FailureResult[*moneydomain.Settlement, error](ErrNoParticipants), nil
	}

	if _, err := s.rounds.GetRound(ctx, db, req.RoundID); err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return results.FailureResult[*moneydomain.Settlement, error](fmt.Errorf("%w: %d", ErrRoundNotFound, req.RoundID)), nil
		}
		return settlementResult{}, fmt.Errorf("failed to get round: %w", err)
	}
	roundDetails, err := s.rounds.GetDetails(ctx, db, req.RoundID)
	if err != nil {
		return settlementResult{}, fmt.Errorf("failed to get round details: %w", err)
	}
	played := make(map[rounddomain.PlayerID]bool, len(roundDetails))
	for _, d := range roundDetails {
		played[d.PlayerID] = true
	}

	details := make([]moneydomain.MoneyRoundDetail, 0, len(req.Winnings))
	for _, w := range req.Winnings {
		if !played[w.PlayerID] {
			return results.FailureResult[*moneydomain.Settlement, error](fmt.Errorf("%w: player %d", ErrNotRoundParticipant, w.PlayerID)), nil
		}
		details = append(details, moneydomain.MoneyRoundDetail{
			RoundID:  req.RoundID,
			PlayerID: w.PlayerID,
			Winnings: w.Stages,
		})
	}

	settlement, err := moneydomain.Settle(round, details, s.rules)
	if err != nil {
		return results.FailureResult[*moneydomain.Settlement, error](err), nil
	}
	if err := s.repo.SaveSettlement(ctx, db, settlement); err != nil {
		return settlementResult{}, fmt.Errorf("failed to save settlement: %w", err)
	}
	return results.SuccessResult[*moneydomain.Settlement, error](&settlement), nil
}

// GetMoneyRound returns the stored money round with its details and house accrual.
func (s *MoneyService) GetMoneyRound(ctx context.Context, roundID rounddomain.RoundID) (*moneydomain.Settlement, error) {
	getTx := func(ctx context.Context, db bun.IDB) (settlementResult, error) {
		round, err := s.repo.GetMoneyRound(ctx, db, roundID)
		if err != nil {
			if errors.Is(err, moneydb.ErrNotFound) {
				return results.FailureResult[*moneydomain.Settlement, error](fmt.Errorf("%w: %d", ErrMoneyRoundNotFound, roundID)), nil
			}
			return settlementResult{}, fmt.Errorf("failed to get money round: %w", err)
		}
		details, err := s.repo.GetMoneyDetails(ctx, db, roundID)
		if err != nil {
			return settlementResult{}, fmt.Errorf("failed to get money details: %w", err)
		}
		return results.SuccessResult[*moneydomain.Settlement, error](&moneydomain.Settlement{
			Round:   round,
			Details: details,
			House:   moneydomain.HouseAccrual(round, len(details), s.rules.UnitStake),
		}), nil
	}

	result, err := withTelemetry(s, ctx, "GetMoneyRound", fmt.Sprint(int64(roundID)), func(ctx context.Context) (settlementResult, error) {
		return runInTx(s, ctx, getTx)
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}
