package moneydomain

import (
	"fmt"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

// MoneyRound is the settlement record for the side wager played after a round.
type MoneyRound struct {
	RoundID rounddomain.RoundID
	Stages  [StageCount]StageOutcome
}

// NewMoneyRoundFromCodes decodes stored stage codes and validates stage ordering.
func NewMoneyRoundFromCodes(roundID rounddomain.RoundID, codes [StageCount]int) (MoneyRound, error) {
	mr := MoneyRound{RoundID: roundID}
	for i, code := range codes {
		outcome, err := OutcomeFromCode(code)
		if err != nil {
			return MoneyRound{}, fmt.Errorf("stage %d: %w", i+1, err)
		}
		mr.Stages[i] = outcome
	}
	if err := mr.Validate(); err != nil {
		return MoneyRound{}, err
	}
	return mr, nil
}

// Codes encodes the stages for storage.
func (m MoneyRound) Codes() [StageCount]int {
	var codes [StageCount]int
	for i, s := range m.Stages {
		codes[i] = s.Code()
	}
	return codes
}

// Validate enforces that a stage is only played after the one before it.
func (m MoneyRound) Validate() error {
	for i := 1; i < StageCount; i++ {
		if m.Stages[i].Played() && !m.Stages[i-1].Played() {
			return &DependentStageError{Stage: i + 1}
		}
	}
	return nil
}

// HouseStages counts the stages whose stake went to the house.
func (m MoneyRound) HouseStages() int {
	n := 0
	for _, s := range m.Stages {
		if s.IsHouse() {
			n++
		}
	}
	return n
}

// SettlementState is how far a money round has progressed.
type SettlementState int

const (
	NotStarted SettlementState = iota
	Stage1Resolved
	Stage2Resolved
	Stage3Resolved
)

func (s SettlementState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Stage1Resolved:
		return "stage1_resolved"
	case Stage2Resolved:
		return "stage2_resolved"
	case Stage3Resolved:
		return "stage3_resolved"
	default:
		return fmt.Sprintf("SettlementState(%d)", int(s))
	}
}

// State counts the leading played stages. Validate must pass for this to be meaningful.
func (m MoneyRound) State() SettlementState {
	n := 0
	for _, s := range m.Stages {
		if !s.Played() {
			break
		}
		n++
	}
	return SettlementState(n)
}

// Resolve returns a copy with stage (1-based) set to a played outcome. A stage can
// only be resolved once everything before it is, and an earlier stage cannot be
// re-resolved while a later one is played.
func (m MoneyRound) Resolve(stage int, outcome StageOutcome) (MoneyRound, error) {
	if stage < 1 || stage > StageCount {
		return m, fmt.Errorf("%w: %d", ErrStageIndex, stage)
	}
	if !outcome.Played() {
		return m.Clear(stage)
	}
	idx := stage - 1
	if idx > 0 && !m.Stages[idx-1].Played() {
		return m, &DependentStageError{Stage: stage}
	}
	if idx+1 < StageCount && m.Stages[idx+1].Played() {
		return m, fmt.Errorf("%w: stage %d", ErrLaterStagePlayed, idx+2)
	}
	m.Stages[idx] = outcome
	return m, nil
}

// Clear returns a copy with stage (1-based) reset to not played. Later stages must be cleared first.
func (m MoneyRound) Clear(stage int) (MoneyRound, error) {
	if stage < 1 || stage > StageCount {
		return m, fmt.Errorf("%w: %d", ErrStageIndex, stage)
	}
	idx := stage - 1
	if idx+1 < StageCount && m.Stages[idx+1].Played() {
		return m, fmt.Errorf("%w: stage %d", ErrLaterStagePlayed, idx+2)
	}
	m.Stages[idx] = NotPlayed()
	return m, nil
}

// MoneyRoundDetail is one participant's winnings per stage.
type MoneyRoundDetail struct {
	RoundID  rounddomain.RoundID
	PlayerID rounddomain.PlayerID
	Winnings [StageCount]money.Amount
}

func (d MoneyRoundDetail) Key() rounddomain.DetailKey {
	return rounddomain.DetailKey{RoundID: d.RoundID, PlayerID: d.PlayerID}
}

// Total sums the winnings across stages.
func (d MoneyRoundDetail) Total() money.Amount {
	return money.Sum(d.Winnings[:]...)
}

// Rules configures settlement.
type Rules struct {
	// UnitStake is what each participant puts in per stage.
	UnitStake money.Amount
	// AllowSplitWinnings permits more than one participant to be paid on one stage.
	AllowSplitWinnings bool
}

// DefaultRules is a one dollar stake with a single winner per stage.
func DefaultRules() Rules {
	return Rules{UnitStake: money.Dollars(1)}
}

// ValidateSettlement checks a money round and its winnings before anything is persisted.
// The first violation found is returned.
func ValidateSettlement(round MoneyRound, details []MoneyRoundDetail, rules Rules) error {
	if err := round.Validate(); err != nil {
		return err
	}

	seen := make(map[rounddomain.PlayerID]struct{}, len(details))
	var claimants [StageCount][]rounddomain.PlayerID

	for _, d := range details {
		if d.RoundID != round.RoundID {
			return fmt.Errorf("%w: player %d has round %d, want %d", ErrRoundMismatch, d.PlayerID, d.RoundID, round.RoundID)
		}
		if _, dup := seen[d.PlayerID]; dup {
			return fmt.Errorf("%w: player %d", ErrDuplicateParticipant, d.PlayerID)
		}
		seen[d.PlayerID] = struct{}{}

		for i, w := range d.Winnings {
			if w.IsZero() {
				continue
			}
			stage := round.Stages[i]
			switch {
			case !stage.Played():
				return &StageWinningsError{PlayerID: d.PlayerID, Stage: i + 1, Err: ErrUnplayedStageWinnings}
			case stage.IsHouse():
				return &StageWinningsError{PlayerID: d.PlayerID, Stage: i + 1, Err: ErrHouseStageWinnings}
			case w.IsNegative():
				return &StageWinningsError{PlayerID: d.PlayerID, Stage: i + 1, Err: ErrNegativeWinnings}
			}
			claimants[i] = append(claimants[i], d.PlayerID)
		}
	}

	if !rules.AllowSplitWinnings {
		for i, c := range claimants {
			if len(c) > 1 {
				return &MultipleClaimantsError{Stage: i + 1, Claimants: c}
			}
		}
	}
	return nil
}

// HouseAccrual is what the house fund takes from a money round: one unit stake from
// every participant for each stage the house won.
func HouseAccrual(round MoneyRound, participantCount int, unitStake money.Amount) money.Amount {
	return unitStake.Mul(int64(participantCount)).Mul(int64(round.HouseStages()))
}

// Settlement is a validated money round with its per-participant winnings.
type Settlement struct {
	Round   MoneyRound
	Details []MoneyRoundDetail
	House   money.Amount
}

// Settle validates and computes the house accrual in one step.
func Settle(round MoneyRound, details []MoneyRoundDetail, rules Rules) (Settlement, error) {
	if err := ValidateSettlement(round, details, rules); err != nil {
		return Settlement{}, err
	}
	return Settlement{
		Round:   round,
		Details: details,
		House:   HouseAccrual(round, len(details), rules.UnitStake),
	}, nil
}
