package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new round repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// --- Players ---

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB) ([]rounddomain.Player, error) {
	db = r.resolveDB(db)
	var rows []Player
	if err := db.NewSelect().Model(&rows).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	players := make([]rounddomain.Player, len(rows))
	for i, p := range rows {
		players[i] = p.toDomain()
	}
	return players, nil
}

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id rounddomain.PlayerID) (rounddomain.Player, error) {
	db = r.resolveDB(db)
	row := new(Player)
	err := db.NewSelect().Model(row).Where("id = ?", int64(id)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rounddomain.Player{}, ErrNotFound
		}
		return rounddomain.Player{}, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// CreatePlayer inserts a player and writes the generated id back.
func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, player *rounddomain.Player) error {
	db = r.resolveDB(db)
	row := &Player{Name: player.Name, FullName: player.FullName}
	if err := db.NewInsert().Model(row).ExcludeColumn("id").Returning("id").Scan(ctx); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	player.ID = rounddomain.PlayerID(row.ID)
	return nil
}

// --- Courses ---

func (r *Impl) ListCourses(ctx context.Context, db bun.IDB) ([]rounddomain.Course, error) {
	db = r.resolveDB(db)
	var rows []Course
	if err := db.NewSelect().Model(&rows).OrderExpr("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]rounddomain.Course, len(rows))
	for i, c := range rows {
		courses[i] = c.toDomain()
	}
	return courses, nil
}

func (r *Impl) GetCourse(ctx context.Context, db bun.IDB, id rounddomain.CourseID) (rounddomain.Course, error) {
	db = r.resolveDB(db)
	row := new(Course)
	err := db.NewSelect().Model(row).Where("id = ?", int64(id)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rounddomain.Course{}, ErrNotFound
		}
		return rounddomain.Course{}, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *Impl) CreateCourse(ctx context.Context, db bun.IDB, course *rounddomain.Course) error {
	db = r.resolveDB(db)
	row := &Course{Name: course.Name}
	if err := db.NewInsert().Model(row).ExcludeColumn("id").Returning("id").Scan(ctx); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	course.ID = rounddomain.CourseID(row.ID)
	return nil
}

// --- Rounds ---

// CreateRound inserts the round and writes the generated id back.
func (r *Impl) CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) error {
	db = r.resolveDB(db)
	row := roundFromDomain(*round)
	err := db.NewInsert().
		Model(row).
		ExcludeColumn("id", "created_at", "updated_at").
		Returning("id").
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to create round: %w", err)
	}
	round.ID = rounddomain.RoundID(row.ID)
	round.Date = row.RoundDate
	return nil
}

func (r *Impl) GetRound(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error) {
	db = r.resolveDB(db)
	row := new(Round)
	err := db.NewSelect().Model(row).Where("id = ?", int64(id)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rounddomain.Round{}, ErrNotFound
		}
		return rounddomain.Round{}, fmt.Errorf("failed to fetch round %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// FindRoundByDate returns the round played on the calendar day of day.
func (r *Impl) FindRoundByDate(ctx context.Context, db bun.IDB, day time.Time) (rounddomain.Round, error) {
	db = r.resolveDB(db)
	row := new(Round)
	err := db.NewSelect().
		Model(row).
		Where("round_date = ?", rounddomain.CalendarDay(day)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rounddomain.Round{}, ErrNotFound
		}
		return rounddomain.Round{}, fmt.Errorf("failed to find round by date: %w", err)
	}
	return row.toDomain(), nil
}

// UpdateRound changes a round's course and date.
func (r *Impl) UpdateRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Round)(nil)).
		Set("course_id = ?", int64(round.CourseID)).
		Set("round_date = ?", rounddomain.CalendarDay(round.Date)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", int64(round.ID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update round %d: %w", round.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *Impl) ListRoundsBetween(ctx context.Context, db bun.IDB, start, end time.Time) ([]rounddomain.Round, error) {
	db = r.resolveDB(db)
	var rows []Round
	q := db.NewSelect().Model(&rows).OrderExpr("round_date ASC, id ASC")
	if !start.IsZero() {
		q = q.Where("round_date >= ?", rounddomain.CalendarDay(start))
	}
	if !end.IsZero() {
		q = q.Where("round_date <= ?", rounddomain.CalendarDay(end))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	rounds := make([]rounddomain.Round, len(rows))
	for i, row := range rows {
		rounds[i] = row.toDomain()
	}
	return rounds, nil
}

// --- Details ---

func (r *Impl) GetDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error) {
	db = r.resolveDB(db)
	var rows []RoundDetail
	err := db.NewSelect().
		Model(&rows).
		Where("round_id = ?", int64(roundID)).
		OrderExpr("player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for round %d: %w", roundID, err)
	}
	return detailsToDomain(rows), nil
}

func (r *Impl) ListDetailsForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]rounddomain.RoundDetail, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}
	db = r.resolveDB(db)
	ids := make([]int64, len(roundIDs))
	for i, id := range roundIDs {
		ids[i] = int64(id)
	}
	var rows []RoundDetail
	err := db.NewSelect().
		Model(&rows).
		Where("round_id IN (?)", bun.In(ids)).
		OrderExpr("round_id ASC, player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch round details: %w", err)
	}
	return detailsToDomain(rows), nil
}

func (r *Impl) SaveDetails(ctx context.Context, db bun.IDB, details []rounddomain.RoundDetail) error {
	if len(details) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	rows := make([]RoundDetail, len(details))
	for i, d := range details {
		rows[i] = detailFromDomain(d)
	}
	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (round_id, player_id) DO UPDATE").
		Set("front_raw = EXCLUDED.front_raw").
		Set("back_raw = EXCLUDED.back_raw").
		Set("aces = EXCLUDED.aces").
		Set("eagles = EXCLUDED.eagles").
		Set("ace_eagles = EXCLUDED.ace_eagles").
		Set("front_pts_num = EXCLUDED.front_pts_num").
		Set("front_pts_den = EXCLUDED.front_pts_den").
		Set("back_pts_num = EXCLUDED.back_pts_num").
		Set("back_pts_den = EXCLUDED.back_pts_den").
		Set("overall_pts_num = EXCLUDED.overall_pts_num").
		Set("overall_pts_den = EXCLUDED.overall_pts_den").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save round details: %w", err)
	}
	return nil
}

func detailsToDomain(rows []RoundDetail) []rounddomain.RoundDetail {
	details := make([]rounddomain.RoundDetail, len(rows))
	for i, row := range rows {
		details[i] = row.toDomain()
	}
	return details
}
