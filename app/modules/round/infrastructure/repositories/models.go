package rounddb

import (
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
	"github.com/uptrace/bun"
)

// Player is a roster entry.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name,notnull,unique"`
	FullName      string `bun:"full_name,notnull"`
}

// Course is a place rounds are played.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`
	ID            int64  `bun:"id,pk,autoincrement"`
	Name          string `bun:"name,notnull,unique"`
}

// Round is one dated event. RoundDate holds the calendar day at midnight UTC.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            int64     `bun:"id,pk,autoincrement"`
	CourseID      int64     `bun:"course_id,notnull"`
	RoundDate     time.Time `bun:"round_date,notnull"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// RoundDetail is one participant's row within a round. Points are stored as
// reduced numerator/denominator pairs so tied shares survive a round trip exactly.
type RoundDetail struct {
	bun.BaseModel `bun:"table:round_details,alias:rd"`
	RoundID       int64 `bun:"round_id,pk"`
	PlayerID      int64 `bun:"player_id,pk"`
	FrontRaw      *int  `bun:"front_raw"`
	BackRaw       *int  `bun:"back_raw"`
	Aces          int   `bun:"aces,notnull,default:0"`
	Eagles        int   `bun:"eagles,notnull,default:0"`
	AceEagles     int   `bun:"ace_eagles,notnull,default:0"`
	FrontPtsNum   int64 `bun:"front_pts_num,notnull,default:0"`
	FrontPtsDen   int64 `bun:"front_pts_den,notnull,default:1"`
	BackPtsNum    int64 `bun:"back_pts_num,notnull,default:0"`
	BackPtsDen    int64 `bun:"back_pts_den,notnull,default:1"`
	OverallPtsNum int64 `bun:"overall_pts_num,notnull,default:0"`
	OverallPtsDen int64 `bun:"overall_pts_den,notnull,default:1"`
}

func (p Player) toDomain() rounddomain.Player {
	return rounddomain.Player{ID: rounddomain.PlayerID(p.ID), Name: p.Name, FullName: p.FullName}
}

func (c Course) toDomain() rounddomain.Course {
	return rounddomain.Course{ID: rounddomain.CourseID(c.ID), Name: c.Name}
}

func (r Round) toDomain() rounddomain.Round {
	return rounddomain.Round{
		ID:       rounddomain.RoundID(r.ID),
		CourseID: rounddomain.CourseID(r.CourseID),
		Date:     rounddomain.CalendarDay(r.RoundDate),
	}
}

func roundFromDomain(r rounddomain.Round) *Round {
	return &Round{
		ID:        int64(r.ID),
		CourseID:  int64(r.CourseID),
		RoundDate: rounddomain.CalendarDay(r.Date),
	}
}

func (d RoundDetail) toDomain() rounddomain.RoundDetail {
	return rounddomain.RoundDetail{
		RoundID:       rounddomain.RoundID(d.RoundID),
		PlayerID:      rounddomain.PlayerID(d.PlayerID),
		FrontRaw:      d.FrontRaw,
		BackRaw:       d.BackRaw,
		Aces:          d.Aces,
		Eagles:        d.Eagles,
		AceEagles:     d.AceEagles,
		FrontPoints:   storedFraction(d.FrontPtsNum, d.FrontPtsDen),
		BackPoints:    storedFraction(d.BackPtsNum, d.BackPtsDen),
		OverallPoints: storedFraction(d.OverallPtsNum, d.OverallPtsDen),
	}
}

func detailFromDomain(d rounddomain.RoundDetail) RoundDetail {
	return RoundDetail{
		RoundID:       int64(d.RoundID),
		PlayerID:      int64(d.PlayerID),
		FrontRaw:      d.FrontRaw,
		BackRaw:       d.BackRaw,
		Aces:          d.Aces,
		Eagles:        d.Eagles,
		AceEagles:     d.AceEagles,
		FrontPtsNum:   d.FrontPoints.Num(),
		FrontPtsDen:   d.FrontPoints.Den(),
		BackPtsNum:    d.BackPoints.Num(),
		BackPtsDen:    d.BackPoints.Den(),
		OverallPtsNum: d.OverallPoints.Num(),
		OverallPtsDen: d.OverallPoints.Den(),
	}
}

// storedFraction tolerates a zero denominator from rows written outside the application.
func storedFraction(num, den int64) fraction.Fraction {
	if den == 0 {
		return fraction.Zero()
	}
	return fraction.New(num, den)
}
