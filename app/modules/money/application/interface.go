package moneyservice

import (
	"context"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

// Service defines the money round operations.
type Service interface {
	SettleMoneyRound(ctx context.Context, req SettleRequest) (*moneydomain.Settlement, error)
	GetMoneyRound(ctx context.Context, roundID rounddomain.RoundID) (*moneydomain.Settlement, error)
}

// SettleRequest records a money round. Stages holds the stored stage codes: 0 not
// played, 1-6 the attempt that won, 7 the house. Every money participant is listed in
// Winnings, including those who won nothing.
type SettleRequest struct {
	RoundID  rounddomain.RoundID
	Stages   [moneydomain.StageCount]int
	Winnings []PlayerWinnings
}

type PlayerWinnings struct {
	PlayerID rounddomain.PlayerID
	Stages   [moneydomain.StageCount]money.Amount
}

var _ Service = (*MoneyService)(nil)
