package moneyservice

import (
	"errors"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
)

var (
	// ErrRoundNotFound indicates the regular round does not exist.
	ErrRoundNotFound = errors.New("round not found")

	// ErrMoneyRoundNotFound indicates the round has no money round on file.
	ErrMoneyRoundNotFound = errors.New("money round not found")

	// ErrNotRoundParticipant indicates a money player who did not play the regular round.
	ErrNotRoundParticipant = errors.New("money player did not play the round")

	ErrNoParticipants = errors.New("money round needs at least one participant")
)

// rejectionReason labels a settlement failure for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, moneydomain.ErrOutcomeOutOfRange):
		return "invalid_stage_code"
	case errors.Is(err, moneydomain.ErrDependentStage):
		return "dependent_stage"
	case errors.Is(err, moneydomain.ErrUnplayedStageWinnings):
		return "unplayed_stage"
	case errors.Is(err, moneydomain.ErrHouseStageWinnings):
		return "house_stage"
	case errors.Is(err, moneydomain.ErrMultipleClaimants):
		return "multiple_claimants"
	case errors.Is(err, moneydomain.ErrNegativeWinnings):
		return "negative_winnings"
	case errors.Is(err, moneydomain.ErrDuplicateParticipant):
		return "duplicate_participant"
	case errors.Is(err, ErrNotRoundParticipant):
		return "not_participant"
	case errors.Is(err, ErrRoundNotFound):
		return "round_not_found"
	default:
		return "other"
	}
}
