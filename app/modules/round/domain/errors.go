package rounddomain

import (
	"errors"
	"fmt"
)

// ErrMissingScore is matched by every MissingScoreError.
var ErrMissingScore = errors.New("missing raw score")

// MissingScoreError reports a detail that was handed to the scorer without a raw value.
type MissingScoreError struct {
	RoundID  RoundID
	PlayerID PlayerID
	Field    string
}

func (e *MissingScoreError) Error() string {
	return fmt.Sprintf("round %d: player %d has no %s score", e.RoundID, e.PlayerID, e.Field)
}

func (e *MissingScoreError) Unwrap() error {
	return ErrMissingScore
}
