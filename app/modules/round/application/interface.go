package roundservice

import (
	"context"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

// Service defines the round lifecycle operations.
type Service interface {
	CreateRound(ctx context.Context, req CreateRoundRequest) (*RoundView, error)
	RecordScores(ctx context.Context, roundID rounddomain.RoundID, entries []ScoreEntry) (*ScoreResult, error)
	RescheduleRound(ctx context.Context, req RescheduleRequest) (*RoundView, error)
	ImportScorecard(ctx context.Context, roundID rounddomain.RoundID, fileName string, data []byte) (*ScoreResult, error)

	GetRound(ctx context.Context, roundID rounddomain.RoundID) (*RoundView, error)
	ListRounds(ctx context.Context, start, end time.Time) ([]rounddomain.Round, error)
	ListPlayers(ctx context.Context) ([]rounddomain.Player, error)
	ListCourses(ctx context.Context) ([]rounddomain.Course, error)
}

// CreateRoundRequest schedules a round. Date is truncated to its calendar day.
type CreateRoundRequest struct {
	CourseID  rounddomain.CourseID
	Date      time.Time
	PlayerIDs []rounddomain.PlayerID
}

// RescheduleRequest moves a round to another course or day.
type RescheduleRequest struct {
	RoundID  rounddomain.RoundID
	CourseID rounddomain.CourseID
	Date     time.Time
}

// ScoreEntry is one participant's raw result. Front and Back are strokes relative to par.
type ScoreEntry struct {
	PlayerID  rounddomain.PlayerID
	Front     int
	Back      int
	Aces      int
	Eagles    int
	AceEagles int
}

// RoundView is a round with its course, details and the players that appear in them.
type RoundView struct {
	Round   rounddomain.Round
	Course  rounddomain.Course
	Details []rounddomain.RoundDetail
	Players map[rounddomain.PlayerID]rounddomain.Player
}

// PlayerName returns the roster name for id, or a placeholder for unknown ids.
func (v RoundView) PlayerName(id rounddomain.PlayerID) string {
	if p, ok := v.Players[id]; ok {
		return p.Name
	}
	return "#" + itoa(int64(id))
}

// ScoreResult reports what a scoring call did. Scored is false while any
// participant still lacks raw scores; Changed counts rows that were written.
type ScoreResult struct {
	View    RoundView
	Scored  bool
	Changed int
}

var _ Service = (*RoundService)(nil)
