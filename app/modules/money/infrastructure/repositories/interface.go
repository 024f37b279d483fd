package moneydb

import (
	"context"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for money round persistence.
// A nil db uses the repository's own connection.
type Repository interface {
	// GetMoneyRound returns ErrNotFound when the round has no money round.
	GetMoneyRound(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (moneydomain.MoneyRound, error)
	// HasSettlement reports whether any stage of the round's money round has been played.
	HasSettlement(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error)
	GetMoneyDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]moneydomain.MoneyRoundDetail, error)
	// SaveSettlement replaces the money round and all of its details.
	SaveSettlement(ctx context.Context, db bun.IDB, settlement moneydomain.Settlement) error
	// ListForRounds loads every money round and detail belonging to roundIDs.
	ListForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]moneydomain.MoneyRound, []moneydomain.MoneyRoundDetail, error)
}
