package roundmigrations

import (
	"context"
	"fmt"

	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var seedPlayers = []rounddb.Player{
	{ID: 1, Name: "Gary", FullName: "Gary Rogers"},
	{ID: 2, Name: "Pat", FullName: "Pat Olmstead"},
	{ID: 3, Name: "Charlie", FullName: "Charlie Amacher"},
	{ID: 4, Name: "Dick", FullName: "Dick Burdock"},
	{ID: 5, Name: "Gabe", FullName: "Gabe Miller"},
	{ID: 6, Name: "Dr Dave", FullName: "Dr Dave"},
	{ID: 7, Name: "John J", FullName: "John J"},
	{ID: 8, Name: "John U", FullName: "John U"},
	{ID: 9, Name: "Jonathon", FullName: "Jonathon Williams"},
	{ID: 10, Name: "Rick", FullName: "Rick Miller"},
	{ID: 11, Name: "Lee", FullName: "Lee Duncan"},
}

var seedCourses = []rounddb.Course{
	{ID: 1, Name: "Dick's"},
	{ID: 2, Name: "Charlie's"},
	{ID: 3, Name: "Bill's"},
	{ID: 4, Name: "Rick's"},
	{ID: 5, Name: "Pat's"},
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Seeding league roster and courses...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			players := append([]rounddb.Player(nil), seedPlayers...)
			if _, err := tx.NewInsert().Model(&players).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
				return fmt.Errorf("failed to seed players: %w", err)
			}
			courses := append([]rounddb.Course(nil), seedCourses...)
			if _, err := tx.NewInsert().Model(&courses).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
				return fmt.Errorf("failed to seed courses: %w", err)
			}
			if db.Dialect().Name() == dialect.PG {
				// Explicit ids leave the serial sequences behind.
				for _, table := range []string{"players", "courses"} {
					if _, err := tx.ExecContext(ctx, fmt.Sprintf(
						"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT MAX(id) FROM %[1]s))", table)); err != nil {
						return fmt.Errorf("failed to reset %s sequence: %w", table, err)
					}
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Removing seeded roster...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewDelete().Model((*rounddb.Player)(nil)).Where("id <= ?", len(seedPlayers)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to remove seeded players: %w", err)
			}
			if _, err := tx.NewDelete().Model((*rounddb.Course)(nil)).Where("id <= ?", len(seedCourses)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to remove seeded courses: %w", err)
			}
			return nil
		})
	})
}
