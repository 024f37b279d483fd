package moneyservice

import (
	"context"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Money Repo
// ------------------------

type FakeMoneyRepo struct {
	trace []string

	GetMoneyRoundFunc   func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (moneydomain.MoneyRound, error)
	HasSettlementFunc   func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error)
	GetMoneyDetailsFunc func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]moneydomain.MoneyRoundDetail, error)
	SaveSettlementFunc  func(ctx context.Context, db bun.IDB, settlement moneydomain.Settlement) error
	ListForRoundsFunc   func(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]moneydomain.MoneyRound, []moneydomain.MoneyRoundDetail, error)
}

func NewFakeMoneyRepo() *FakeMoneyRepo {
	return &FakeMoneyRepo{trace: []string{}}
}

func (f *FakeMoneyRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMoneyRepo) GetMoneyRound(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (moneydomain.MoneyRound, error) {
	f.record("GetMoneyRound")
	if f.GetMoneyRoundFunc != nil {
		return f.GetMoneyRoundFunc(ctx, db, roundID)
	}
	return moneydomain.MoneyRound{}, moneydb.ErrNotFound
}

func (f *FakeMoneyRepo) HasSettlement(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error) {
	f.record("HasSettlement")
	if f.HasSettlementFunc != nil {
		return f.HasSettlementFunc(ctx, db, roundID)
	}
	return false, nil
}

func (f *FakeMoneyRepo) GetMoneyDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]moneydomain.MoneyRoundDetail, error) {
	f.record("GetMoneyDetails")
	if f.GetMoneyDetailsFunc != nil {
		return f.GetMoneyDetailsFunc(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeMoneyRepo) SaveSettlement(ctx context.Context, db bun.IDB, settlement moneydomain.Settlement) error {
	f.record("SaveSettlement")
	if f.SaveSettlementFunc != nil {
		return f.SaveSettlementFunc(ctx, db, settlement)
	}
	return nil
}

func (f *FakeMoneyRepo) ListForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]moneydomain.MoneyRound, []moneydomain.MoneyRoundDetail, error) {
	f.record("ListForRounds")
	if f.ListForRoundsFunc != nil {
		return f.ListForRoundsFunc(ctx, db, roundIDs)
	}
	return nil, nil, nil
}

func (f *FakeMoneyRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ moneydb.Repository = (*FakeMoneyRepo)(nil)

// ------------------------
// Fake Round Lookup
// ------------------------

// FakeRoundLookup serves one round whose participants are Players.
type FakeRoundLookup struct {
	RoundID rounddomain.RoundID
	Players []rounddomain.PlayerID
	Err     error
}

func (f *FakeRoundLookup) GetRound(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error) {
	if f.Err != nil {
		return rounddomain.Round{}, f.Err
	}
	if id != f.RoundID {
		return rounddomain.Round{}, rounddb.ErrNotFound
	}
	return rounddomain.Round{ID: id, CourseID: 1}, nil
}

func (f *FakeRoundLookup) GetDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error) {
	details := make([]rounddomain.RoundDetail, len(f.Players))
	for i, p := range f.Players {
		details[i] = rounddomain.RoundDetail{RoundID: roundID, PlayerID: p}
	}
	return details, nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	Topics   []string
	Payloads []any
}

func (f *FakePublisher) PublishEvent(ctx context.Context, topic string, payload any) error {
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return nil
}
