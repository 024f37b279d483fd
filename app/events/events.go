// Package events names the topics published between modules and their payloads.
package events

import "time"

const (
	// RoundCreatedV1 is published after a round and its empty details were stored.
	RoundCreatedV1 = "round.created.v1"
	// RoundScoresEnteredV1 is published when raw scores were written but the round is not complete yet.
	RoundScoresEnteredV1 = "round.scores_entered.v1"
	// RoundScoredV1 is published after a round's scores were recalculated and something changed.
	RoundScoredV1 = "round.scored.v1"
	// RoundRescheduledV1 is published when a round's date or course changes.
	RoundRescheduledV1 = "round.rescheduled.v1"
	// MoneyRoundSettledV1 is published after a money round was stored.
	MoneyRoundSettledV1 = "money.settled.v1"
)

type RoundCreatedPayload struct {
	RoundID      int64     `json:"round_id"`
	CourseID     int64     `json:"course_id"`
	Date         time.Time `json:"date"`
	Participants int       `json:"participants"`
}

// RoundScoredPayload announces new points for a round. It is also the payload of
// round.scores_entered.v1, where Changed counts the rows written so far.
type RoundScoredPayload struct {
	RoundID      int64     `json:"round_id"`
	Date         time.Time `json:"date"`
	Participants int       `json:"participants"`
	Changed      int       `json:"changed"`
}

type RoundRescheduledPayload struct {
	RoundID  int64     `json:"round_id"`
	CourseID int64     `json:"course_id"`
	Date     time.Time `json:"date"`
}

// MoneyRoundSettledPayload announces a stored money round. HouseCents is the house accrual.
type MoneyRoundSettledPayload struct {
	RoundID      int64  `json:"round_id"`
	Stages       [3]int `json:"stages"`
	Participants int    `json:"participants"`
	HouseCents   int64  `json:"house_cents"`
}
