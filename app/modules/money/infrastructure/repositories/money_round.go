package moneydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new money round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) GetMoneyRound(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (moneydomain.MoneyRound, error) {
	db = r.resolveDB(db)
	row := new(MoneyRound)
	err := db.NewSelect().Model(row).Where("round_id = ?", int64(roundID)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return moneydomain.MoneyRound{}, ErrNotFound
		}
		return moneydomain.MoneyRound{}, fmt.Errorf("failed to fetch money round %d: %w", roundID, err)
	}
	mr, err := row.toDomain()
	if err != nil {
		return moneydomain.MoneyRound{}, fmt.Errorf("stored money round %d is invalid: %w", roundID, err)
	}
	return mr, nil
}

func (r *Impl) HasSettlement(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error) {
	mr, err := r.GetMoneyRound(ctx, db, roundID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mr.State() > moneydomain.NotStarted, nil
}

func (r *Impl) GetMoneyDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]moneydomain.MoneyRoundDetail, error) {
	db = r.resolveDB(db)
	var rows []MoneyRoundDetail
	err := db.NewSelect().
		Model(&rows).
		Where("round_id = ?", int64(roundID)).
		OrderExpr("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch money details for round %d: %w", roundID, err)
	}
	details := make([]moneydomain.MoneyRoundDetail, len(rows))
	for i, row := range rows {
		details[i] = row.toDomain()
	}
	return details, nil
}

func (r *Impl) SaveSettlement(ctx context.Context, db bun.IDB, settlement moneydomain.Settlement) error {
	db = r.resolveDB(db)
	roundID := int64(settlement.Round.RoundID)

	_, err := db.NewInsert().
		Model(moneyRoundFromDomain(settlement)).
		On("CONFLICT (round_id) DO UPDATE").
		Set("stage1 = EXCLUDED.stage1").
		Set("stage2 = EXCLUDED.stage2").
		Set("stage3 = EXCLUDED.stage3").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save money round %d: %w", roundID, err)
	}

	if _, err := db.NewDelete().
		Model((*MoneyRoundDetail)(nil)).
		Where("round_id = ?", roundID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear money details for round %d: %w", roundID, err)
	}

	if len(settlement.Details) == 0 {
		return nil
	}
	rows := make([]MoneyRoundDetail, len(settlement.Details))
	for i, d := range settlement.Details {
		rows[i] = detailFromDomain(d)
	}
	if _, err := db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert money details for round %d: %w", roundID, err)
	}
	return nil
}

func (r *Impl) ListForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]moneydomain.MoneyRound, []moneydomain.MoneyRoundDetail, error) {
	if len(roundIDs) == 0 {
		return nil, nil, nil
	}
	db = r.resolveDB(db)
	ids := make([]int64, len(roundIDs))
	for i, id := range roundIDs {
		ids[i] = int64(id)
	}

	var roundRows []MoneyRound
	if err := db.NewSelect().
		Model(&roundRows).
		Where("round_id IN (?)", bun.In(ids)).
		OrderExpr("round_id ASC").
		Scan(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to list money rounds: %w", err)
	}
	var detailRows []MoneyRoundDetail
	if err := db.NewSelect().
		Model(&detailRows).
		Where("round_id IN (?)", bun.In(ids)).
		OrderExpr("round_id ASC, player_id ASC").
		Scan(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to list money details: %w", err)
	}

	rounds := make([]moneydomain.MoneyRound, 0, len(roundRows))
	for _, row := range roundRows {
		mr, err := row.toDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("stored money round %d is invalid: %w", row.RoundID, err)
		}
		rounds = append(rounds, mr)
	}
	details := make([]moneydomain.MoneyRoundDetail, len(detailRows))
	for i, row := range detailRows {
		details[i] = row.toDomain()
	}
	return rounds, details, nil
}
