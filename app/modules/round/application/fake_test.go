package roundservice

import (
	"context"
	"sync"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	trace []string

	ListPlayersFunc          func(ctx context.Context, db bun.IDB) ([]rounddomain.Player, error)
	GetPlayerFunc            func(ctx context.Context, db bun.IDB, id rounddomain.PlayerID) (rounddomain.Player, error)
	ListCoursesFunc          func(ctx context.Context, db bun.IDB) ([]rounddomain.Course, error)
	GetCourseFunc            func(ctx context.Context, db bun.IDB, id rounddomain.CourseID) (rounddomain.Course, error)
	CreateRoundFunc          func(ctx context.Context, db bun.IDB, round *rounddomain.Round) error
	GetRoundFunc             func(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error)
	FindRoundByDateFunc      func(ctx context.Context, db bun.IDB, day time.Time) (rounddomain.Round, error)
	UpdateRoundFunc          func(ctx context.Context, db bun.IDB, round rounddomain.Round) error
	ListRoundsBetweenFunc    func(ctx context.Context, db bun.IDB, start, end time.Time) ([]rounddomain.Round, error)
	GetDetailsFunc           func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
	ListDetailsForRoundsFunc func(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]rounddomain.RoundDetail, error)
	SaveDetailsFunc          func(ctx context.Context, db bun.IDB, details []rounddomain.RoundDetail) error
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace: []string{},
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeRoundRepo) ListPlayers(ctx context.Context, db bun.IDB) ([]rounddomain.Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRoundRepo) GetPlayer(ctx context.Context, db bun.IDB, id rounddomain.PlayerID) (rounddomain.Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	return rounddomain.Player{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) CreatePlayer(ctx context.Context, db bun.IDB, player *rounddomain.Player) error {
	f.record("CreatePlayer")
	return nil
}

func (f *FakeRoundRepo) ListCourses(ctx context.Context, db bun.IDB) ([]rounddomain.Course, error) {
	f.record("ListCourses")
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRoundRepo) GetCourse(ctx context.Context, db bun.IDB, id rounddomain.CourseID) (rounddomain.Course, error) {
	f.record("GetCourse")
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, db, id)
	}
	return rounddomain.Course{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) CreateCourse(ctx context.Context, db bun.IDB, course *rounddomain.Course) error {
	f.record("CreateCourse")
	return nil
}

func (f *FakeRoundRepo) CreateRound(ctx context.Context, db bun.IDB, round *rounddomain.Round) error {
	f.record("CreateRound")
	if f.CreateRoundFunc != nil {
		return f.CreateRoundFunc(ctx, db, round)
	}
	return nil
}

func (f *FakeRoundRepo) GetRound(ctx context.Context, db bun.IDB, id rounddomain.RoundID) (rounddomain.Round, error) {
	f.record("GetRound")
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, db, id)
	}
	return rounddomain.Round{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) FindRoundByDate(ctx context.Context, db bun.IDB, day time.Time) (rounddomain.Round, error) {
	f.record("FindRoundByDate")
	if f.FindRoundByDateFunc != nil {
		return f.FindRoundByDateFunc(ctx, db, day)
	}
	return rounddomain.Round{}, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) UpdateRound(ctx context.Context, db bun.IDB, round rounddomain.Round) error {
	f.record("UpdateRound")
	if f.UpdateRoundFunc != nil {
		return f.UpdateRoundFunc(ctx, db, round)
	}
	return nil
}

func (f *FakeRoundRepo) ListRoundsBetween(ctx context.Context, db bun.IDB, start, end time.Time) ([]rounddomain.Round, error) {
	f.record("ListRoundsBetween")
	if f.ListRoundsBetweenFunc != nil {
		return f.ListRoundsBetweenFunc(ctx, db, start, end)
	}
	return nil, nil
}

func (f *FakeRoundRepo) GetDetails(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) ([]rounddomain.RoundDetail, error) {
	f.record("GetDetails")
	if f.GetDetailsFunc != nil {
		return f.GetDetailsFunc(ctx, db, roundID)
	}
	return nil, nil
}

func (f *FakeRoundRepo) ListDetailsForRounds(ctx context.Context, db bun.IDB, roundIDs []rounddomain.RoundID) ([]rounddomain.RoundDetail, error) {
	f.record("ListDetailsForRounds")
	if f.ListDetailsForRoundsFunc != nil {
		return f.ListDetailsForRoundsFunc(ctx, db, roundIDs)
	}
	return nil, nil
}

func (f *FakeRoundRepo) SaveDetails(ctx context.Context, db bun.IDB, details []rounddomain.RoundDetail) error {
	f.record("SaveDetails")
	if f.SaveDetailsFunc != nil {
		return f.SaveDetailsFunc(ctx, db, details)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Settlement Checker
// ------------------------

type FakeSettlements struct {
	HasSettlementFunc func(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error)
}

func (f *FakeSettlements) HasSettlement(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID) (bool, error) {
	if f.HasSettlementFunc != nil {
		return f.HasSettlementFunc(ctx, db, roundID)
	}
	return false, nil
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	Err    error
}

func (f *FakePublisher) PublishEvent(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	return f.Err
}

func (f *FakePublisher) Events() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}
