package roundservice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Domain errors for the round service.
// These are returned as failure results: the request was understood but cannot be applied.
var (
	// ErrRoundNotFound indicates a round does not exist.
	ErrRoundNotFound = errors.New("round not found")

	// ErrDuplicateRoundDate indicates another round is already on that calendar day.
	ErrDuplicateRoundDate = errors.New("duplicate round date")

	ErrUnknownCourse = errors.New("unknown course")
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrEmptyRoster indicates a round was requested without participants.
	ErrEmptyRoster = errors.New("round needs at least one participant")

	ErrDuplicatePlayer = errors.New("player listed more than once")

	// ErrPlayerNotInRound indicates scores for someone who is not a participant.
	ErrPlayerNotInRound = errors.New("player is not in the round")

	ErrNoScores     = errors.New("no scores given")
	ErrInvalidScore = errors.New("invalid score")

	// ErrRoundSettled indicates the money round was already played, which freezes the round.
	ErrRoundSettled = errors.New("round already has a settled money round")

	// ErrInvalidScorecard wraps parser failures.
	ErrInvalidScorecard = errors.New("invalid scorecard")
)

// UnknownPlayersError lists scorecard names that matched nobody on the roster.
type UnknownPlayersError struct {
	Names []string
}

func (e *UnknownPlayersError) Error() string {
	return fmt.Sprintf("scorecard names not on the roster: %s", strings.Join(e.Names, ", "))
}

func (e *UnknownPlayersError) Unwrap() error { return ErrUnknownPlayer }

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
