package moneydb

import (
	"time"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
	"github.com/uptrace/bun"
)

// MoneyRound stores the outcome code of each stage: 0 not played, 1-6 the
// winning attempt, 7 house. The house accrual is derived, not stored.
type MoneyRound struct {
	bun.BaseModel `bun:"table:money_rounds,alias:mr"`
	RoundID       int64     `bun:"round_id,pk"`
	Stage1        int       `bun:"stage1,notnull,default:0"`
	Stage2        int       `bun:"stage2,notnull,default:0"`
	Stage3        int       `bun:"stage3,notnull,default:0"`
	UpdatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// MoneyRoundDetail stores one participant's winnings per stage in cents.
type MoneyRoundDetail struct {
	bun.BaseModel `bun:"table:money_round_details,alias:mrd"`
	RoundID       int64 `bun:"round_id,pk"`
	PlayerID      int64 `bun:"player_id,pk"`
	Stage1Cents   int64 `bun:"stage1_cents,notnull,default:0"`
	Stage2Cents   int64 `bun:"stage2_cents,notnull,default:0"`
	Stage3Cents   int64 `bun:"stage3_cents,notnull,default:0"`
}

func (m MoneyRound) toDomain() (moneydomain.MoneyRound, error) {
	return moneydomain.NewMoneyRoundFromCodes(rounddomain.RoundID(m.RoundID), [moneydomain.StageCount]int{m.Stage1, m.Stage2, m.Stage3})
}

func moneyRoundFromDomain(s moneydomain.Settlement) *MoneyRound {
	codes := s.Round.Codes()
	return &MoneyRound{
		RoundID:   int64(s.Round.RoundID),
		Stage1:    codes[0],
		Stage2:    codes[1],
		Stage3:    codes[2],
		UpdatedAt: time.Now().UTC(),
	}
}

func (d MoneyRoundDetail) toDomain() moneydomain.MoneyRoundDetail {
	return moneydomain.MoneyRoundDetail{
		RoundID:  rounddomain.RoundID(d.RoundID),
		PlayerID: rounddomain.PlayerID(d.PlayerID),
		Winnings: [moneydomain.StageCount]money.Amount{
			money.FromCents(d.Stage1Cents),
			money.FromCents(d.Stage2Cents),
			money.FromCents(d.Stage3Cents),
		},
	}
}

func detailFromDomain(d moneydomain.MoneyRoundDetail) MoneyRoundDetail {
	return MoneyRoundDetail{
		RoundID:     int64(d.RoundID),
		PlayerID:    int64(d.PlayerID),
		Stage1Cents: d.Winnings[0].AsCents(),
		Stage2Cents: d.Winnings[1].AsCents(),
		Stage3Cents: d.Winnings[2].AsCents(),
	}
}
