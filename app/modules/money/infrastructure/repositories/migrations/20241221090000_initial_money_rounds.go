package moneymigrations

import (
	"context"
	"fmt"

	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating money_rounds and money_round_details tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().
				Model((*moneydb.MoneyRound)(nil)).
				IfNotExists().
				ForeignKey(`("round_id") REFERENCES "rounds" ("id") ON DELETE CASCADE`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create money_rounds table: %w", err)
			}
			if _, err := tx.NewCreateTable().
				Model((*moneydb.MoneyRoundDetail)(nil)).
				IfNotExists().
				ForeignKey(`("round_id") REFERENCES "money_rounds" ("round_id") ON DELETE CASCADE`).
				ForeignKey(`("player_id") REFERENCES "players" ("id")`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create money_round_details table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back money tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewDropTable().Model((*moneydb.MoneyRoundDetail)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop money_round_details table: %w", err)
			}
			if _, err := tx.NewDropTable().Model((*moneydb.MoneyRound)(nil)).IfExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop money_rounds table: %w", err)
			}
			return nil
		})
	})
}
