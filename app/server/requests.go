package server

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

var errStageCode = errors.New("stage codes must be between 0 and 7")

type CreateRoundRequest struct {
	CourseID  int64   `json:"course_id"`
	Date      string  `json:"date"`
	PlayerIDs []int64 `json:"player_ids"`
}

func (r CreateRoundRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseID, validation.Required, validation.Min(1)),
		validation.Field(&r.Date, validation.Required, validation.Date(reportdomain.DateLayout)),
		validation.Field(&r.PlayerIDs, validation.Required),
	)
}

func (r CreateRoundRequest) toService() roundservice.CreateRoundRequest {
	date, _ := time.Parse(reportdomain.DateLayout, r.Date)
	ids := make([]rounddomain.PlayerID, len(r.PlayerIDs))
	for i, id := range r.PlayerIDs {
		ids[i] = rounddomain.PlayerID(id)
	}
	return roundservice.CreateRoundRequest{CourseID: rounddomain.CourseID(r.CourseID), Date: date, PlayerIDs: ids}
}

type RescheduleRequest struct {
	CourseID int64  `json:"course_id"`
	Date     string `json:"date"`
}

func (r RescheduleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CourseID, validation.Required, validation.Min(1)),
		validation.Field(&r.Date, validation.Required, validation.Date(reportdomain.DateLayout)),
	)
}

func (r RescheduleRequest) toService(roundID rounddomain.RoundID) roundservice.RescheduleRequest {
	date, _ := time.Parse(reportdomain.DateLayout, r.Date)
	return roundservice.RescheduleRequest{RoundID: roundID, CourseID: rounddomain.CourseID(r.CourseID), Date: date}
}

// ScoreEntry is one participant's strokes relative to par.
type ScoreEntry struct {
	PlayerID  int64 `json:"player_id"`
	Front     int   `json:"front"`
	Back      int   `json:"back"`
	Aces      int   `json:"aces"`
	Eagles    int   `json:"eagles"`
	AceEagles int   `json:"ace_eagles"`
}

func (e ScoreEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.PlayerID, validation.Required, validation.Min(1)),
		validation.Field(&e.Aces, validation.Min(0)),
		validation.Field(&e.Eagles, validation.Min(0)),
		validation.Field(&e.AceEagles, validation.Min(0)),
	)
}

type RecordScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

func (r RecordScoresRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Scores, validation.Required),
	)
}

func (r RecordScoresRequest) toService() []roundservice.ScoreEntry {
	out := make([]roundservice.ScoreEntry, len(r.Scores))
	for i, s := range r.Scores {
		out[i] = roundservice.ScoreEntry{
			PlayerID:  rounddomain.PlayerID(s.PlayerID),
			Front:     s.Front,
			Back:      s.Back,
			Aces:      s.Aces,
			Eagles:    s.Eagles,
			AceEagles: s.AceEagles,
		}
	}
	return out
}

// PlayerWinnings lists what one money participant won per stage, as dollar strings ("1.50").
// Empty strings count as zero.
type PlayerWinnings struct {
	PlayerID int64                          `json:"player_id"`
	Stages   [moneydomain.StageCount]string `json:"stages"`
}

func (p PlayerWinnings) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PlayerID, validation.Required, validation.Min(1)),
		validation.Field(&p.Stages, validation.By(func(value any) error {
			stages, _ := value.([moneydomain.StageCount]string)
			for i, s := range stages {
				if _, err := money.Parse(s); err != nil {
					return fmt.Errorf("stage %d: %w", i+1, err)
				}
			}
			return nil
		})),
	)
}

type SettleRequest struct {
	Stages   [moneydomain.StageCount]int `json:"stages"`
	Winnings []PlayerWinnings            `json:"winnings"`
}

func (r SettleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Stages, validation.By(func(value any) error {
			codes, _ := value.([moneydomain.StageCount]int)
			for _, c := range codes {
				if c < 0 || c > 7 {
					return errStageCode
				}
			}
			return nil
		})),
		validation.Field(&r.Winnings, validation.Required),
	)
}

// toService assumes Validate passed.
func (r SettleRequest) toService(roundID rounddomain.RoundID) moneyservice.SettleRequest {
	req := moneyservice.SettleRequest{RoundID: roundID, Stages: r.Stages}
	for _, w := range r.Winnings {
		pw := moneyservice.PlayerWinnings{PlayerID: rounddomain.PlayerID(w.PlayerID)}
		for i, s := range w.Stages {
			pw.Stages[i], _ = money.Parse(s)
		}
		req.Winnings = append(req.Winnings, pw)
	}
	return req
}
