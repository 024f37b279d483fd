package moneydomain

import "fmt"

const (
	// StageCount is the number of chained wagers in a money round.
	StageCount = 3
	// MaxAttempts is the last attempt number that can resolve a stage.
	MaxAttempts = 6

	codeNotPlayed = 0
	codeHouse     = 7
)

// OutcomeKind tags how a stage ended.
type OutcomeKind int

const (
	KindNotPlayed OutcomeKind = iota
	KindResolved
	KindHouse
)

func (k OutcomeKind) String() string {
	switch k {
	case KindNotPlayed:
		return "not_played"
	case KindResolved:
		return "resolved"
	case KindHouse:
		return "house"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// StageOutcome is one stage's result. The zero value is NotPlayed.
type StageOutcome struct {
	kind    OutcomeKind
	attempt int
}

func NotPlayed() StageOutcome {
	return StageOutcome{kind: KindNotPlayed}
}

// HouseWins means no participant succeeded and the stake went to the house fund.
func HouseWins() StageOutcome {
	return StageOutcome{kind: KindHouse}
}

// ResolvedOnAttempt records that a participant succeeded on the given attempt (1-6).
func ResolvedOnAttempt(attempt int) (StageOutcome, error) {
	if attempt < 1 || attempt > MaxAttempts {
		return StageOutcome{}, fmt.Errorf("%w: attempt %d", ErrOutcomeOutOfRange, attempt)
	}
	return StageOutcome{kind: KindResolved, attempt: attempt}, nil
}

// OutcomeFromCode decodes the stored form: 0 not played, 1-6 attempt, 7 house.
func OutcomeFromCode(code int) (StageOutcome, error) {
	switch {
	case code == codeNotPlayed:
		return NotPlayed(), nil
	case code == codeHouse:
		return HouseWins(), nil
	case code >= 1 && code <= MaxAttempts:
		return StageOutcome{kind: KindResolved, attempt: code}, nil
	default:
		return StageOutcome{}, fmt.Errorf("%w: code %d", ErrOutcomeOutOfRange, code)
	}
}

// Code encodes the outcome for storage.
func (o StageOutcome) Code() int {
	switch o.kind {
	case KindResolved:
		return o.attempt
	case KindHouse:
		return codeHouse
	default:
		return codeNotPlayed
	}
}

func (o StageOutcome) Kind() OutcomeKind { return o.kind }

// Played is true for both participant and house resolutions.
func (o StageOutcome) Played() bool {
	return o.kind != KindNotPlayed
}

func (o StageOutcome) IsHouse() bool {
	return o.kind == KindHouse
}

// Attempt returns the resolving attempt; ok is false unless a participant resolved the stage.
func (o StageOutcome) Attempt() (int, bool) {
	if o.kind != KindResolved {
		return 0, false
	}
	return o.attempt, true
}

func (o StageOutcome) String() string {
	switch o.kind {
	case KindResolved:
		return fmt.Sprintf("attempt %d", o.attempt)
	case KindHouse:
		return "house"
	default:
		return "not played"
	}
}
