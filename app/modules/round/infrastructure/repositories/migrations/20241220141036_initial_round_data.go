package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players, courses, rounds and round_details tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewCreateTable().Model((*rounddb.Player)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}
			if _, err := tx.NewCreateTable().Model((*rounddb.Course)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create courses table: %w", err)
			}
			if _, err := tx.NewCreateTable().
				Model((*rounddb.Round)(nil)).
				IfNotExists().
				ForeignKey(`("course_id") REFERENCES "courses" ("id")`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create rounds table: %w", err)
			}
			// One round per calendar day.
			if _, err := tx.NewCreateIndex().
				Model((*rounddb.Round)(nil)).
				Index("idx_rounds_round_date").
				Unique().
				Column("round_date").
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create rounds date index: %w", err)
			}
			if _, err := tx.NewCreateTable().
				Model((*rounddb.RoundDetail)(nil)).
				IfNotExists().
				ForeignKey(`("round_id") REFERENCES "rounds" ("id") ON DELETE CASCADE`).
				ForeignKey(`("player_id") REFERENCES "players" ("id")`).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create round_details table: %w", err)
			}
			if _, err := tx.NewCreateIndex().
				Model((*rounddb.RoundDetail)(nil)).
				Index("idx_round_details_player_id").
				Column("player_id").
				IfNotExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to create round_details player index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back round tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for _, model := range []any{
				(*rounddb.RoundDetail)(nil),
				(*rounddb.Round)(nil),
				(*rounddb.Course)(nil),
				(*rounddb.Player)(nil),
			} {
				if _, err := tx.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
					return fmt.Errorf("failed to drop table: %w", err)
				}
			}
			return nil
		})
	})
}
