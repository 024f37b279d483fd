package rounddb

import (
	"context"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for round persistence.
// Every method takes an optional bun.IDB so callers can run it inside a transaction;
// nil uses the repository's own connection.
//
// Error semantics:
//   - ErrNotFound: Record does not exist (GetRound, FindRoundByDate, GetPlayer, GetCourse)
//   - ErrNoRowsAffected: UPDATE matched no rows
//   - Other errors: Infrastructure failures (DB connection, query errors)
type Repository interface {
	ListPlayers(ctx context.Context, db bun.IDB) ([]rounddomain.Player, error)
	GetPlayer(ctx context.Context, db bun.IDB, id rounddomain.PlayerID) (rounddomain.Player, error)
	CreatePlayer(ctx context.Context, db bun.IDB, player *rounddomain.Player) error

	ListCourses(ctx context.Context, db bun.IDB) ([]rounddomain.Course, error)
	GetCourse(ctx context.Context, db bun.IDB, id rounddomain.CourseID) (rounddomain.Course, error)
	CreateCourse(ctx context.Context, db bun.IDB, course *rounddomain.Course) error

	CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) error
	GetRound(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error)
	FindRoundByDate(ctx context.Context, db bun.IDB, day time.Time) (rounddomain.Round, error)
	UpdateRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error
	// ListRoundsBetween returns rounds whose calendar day falls in [start, end], oldest first.
	// A zero start or end leaves that side open.
	ListRoundsBetween(ctx context.Context, db bun.IDB, start, end time.Time) ([]rounddomain.Round, error)

	GetDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
	ListDetailsForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
	// SaveDetails inserts or replaces rows keyed by (round, player).
	SaveDetails(ctx context.Context, db bun.IDB, details []rounddomain.RoundDetail) error
}
