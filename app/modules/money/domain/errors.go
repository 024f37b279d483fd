package moneydomain

import (
	"errors"
	"fmt"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

var (
	// ErrOutcomeOutOfRange is returned when a stored stage code is not 0-7.
	ErrOutcomeOutOfRange = errors.New("money round stage out of range")

	ErrDependentStage        = errors.New("dependent stage without prerequisite")
	ErrUnplayedStageWinnings = errors.New("winnings recorded for unplayed stage")
	ErrHouseStageWinnings    = errors.New("winnings recorded for a stage the house won")
	ErrMultipleClaimants     = errors.New("more than one participant paid on a single stage")
	ErrNegativeWinnings      = errors.New("winnings cannot be negative")
	ErrDuplicateParticipant  = errors.New("participant listed twice in money round")
	ErrRoundMismatch         = errors.New("detail belongs to a different round")
	ErrStageIndex            = errors.New("stage index out of range")
	ErrLaterStagePlayed      = errors.New("a later stage is still played")
)

// DependentStageError reports a stage played while its predecessor was not.
type DependentStageError struct {
	Stage int // 1-based
}

func (e *DependentStageError) Error() string {
	return fmt.Sprintf("stage %d played without stage %d", e.Stage, e.Stage-1)
}

func (e *DependentStageError) Unwrap() error { return ErrDependentStage }

// StageWinningsError points at the participant and stage whose winnings were rejected.
type StageWinningsError struct {
	PlayerID rounddomain.PlayerID
	Stage    int // 1-based
	Err      error
}

func (e *StageWinningsError) Error() string {
	return fmt.Sprintf("player %d, stage %d: %v", e.PlayerID, e.Stage, e.Err)
}

func (e *StageWinningsError) Unwrap() error { return e.Err }

// MultipleClaimantsError lists everyone paid on a stage that allows a single winner.
type MultipleClaimantsError struct {
	Stage     int // 1-based
	Claimants []rounddomain.PlayerID
}

func (e *MultipleClaimantsError) Error() string {
	return fmt.Sprintf("stage %d paid to %d participants %v", e.Stage, len(e.Claimants), e.Claimants)
}

func (e *MultipleClaimantsError) Unwrap() error { return ErrMultipleClaimants }
