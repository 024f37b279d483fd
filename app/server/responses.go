package server

import (
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

// Points are rendered as mixed numbers ("7 1/2") so ties stay exact.

type DetailResponse struct {
	PlayerID      int64  `json:"player_id"`
	Player        string `json:"player"`
	Front         *int   `json:"front"`
	Back          *int   `json:"back"`
	Aces          int    `json:"aces"`
	Eagles        int    `json:"eagles"`
	AceEagles     int    `json:"ace_eagles"`
	FrontPoints   string `json:"front_points"`
	BackPoints    string `json:"back_points"`
	OverallPoints string `json:"overall_points"`
	RoundPoints   string `json:"round_points"`
}

type RoundResponse struct {
	ID       int64            `json:"id"`
	CourseID int64            `json:"course_id"`
	Course   string           `json:"course"`
	Date     string           `json:"date"`
	Details  []DetailResponse `json:"details,omitempty"`
}

type ScoreResponse struct {
	Round   RoundResponse `json:"round"`
	Scored  bool          `json:"scored"`
	Changed int           `json:"changed"`
}

func newRoundResponse(v *roundservice.RoundView) RoundResponse {
	resp := RoundResponse{
		ID:       int64(v.Round.ID),
		CourseID: int64(v.Round.CourseID),
		Course:   v.Course.Name,
		Date:     v.Round.Day().Format(reportdomain.DateLayout),
	}
	for _, d := range v.Details {
		resp.Details = append(resp.Details, DetailResponse{
			PlayerID:      int64(d.PlayerID),
			Player:        v.PlayerName(d.PlayerID),
			Front:         d.FrontRaw,
			Back:          d.BackRaw,
			Aces:          d.Aces,
			Eagles:        d.Eagles,
			AceEagles:     d.AceEagles,
			FrontPoints:   d.FrontPoints.String(),
			BackPoints:    d.BackPoints.String(),
			OverallPoints: d.OverallPoints.String(),
			RoundPoints:   d.RoundPoints().String(),
		})
	}
	return resp
}

func newRoundSummary(r rounddomain.Round) RoundResponse {
	return RoundResponse{
		ID:       int64(r.ID),
		CourseID: int64(r.CourseID),
		Date:     r.Day().Format(reportdomain.DateLayout),
	}
}

type MoneyParticipantResponse struct {
	PlayerID int64                          `json:"player_id"`
	Stages   [moneydomain.StageCount]string `json:"stages"`
	Total    string                         `json:"total"`
}

type SettlementResponse struct {
	RoundID      int64                          `json:"round_id"`
	Stages       [moneydomain.StageCount]int    `json:"stages"`
	Outcomes     [moneydomain.StageCount]string `json:"outcomes"`
	State        string                         `json:"state"`
	House        string                         `json:"house"`
	Participants []MoneyParticipantResponse     `json:"participants"`
}

func newSettlementResponse(s *moneydomain.Settlement) SettlementResponse {
	resp := SettlementResponse{
		RoundID: int64(s.Round.RoundID),
		Stages:  s.Round.Codes(),
		State:   s.Round.State().String(),
		House:   s.House.String(),
	}
	for i, o := range s.Round.Stages {
		resp.Outcomes[i] = o.String()
	}
	for _, d := range s.Details {
		p := MoneyParticipantResponse{PlayerID: int64(d.PlayerID), Total: d.Total().String()}
		for i, w := range d.Winnings {
			p.Stages[i] = w.String()
		}
		resp.Participants = append(resp.Participants, p)
	}
	return resp
}

type ReportRowResponse struct {
	PlayerID       int64  `json:"player_id"`
	Name           string `json:"name"`
	Rounds         int    `json:"rounds"`
	FrontPoints    string `json:"front_points"`
	BackPoints     string `json:"back_points"`
	OverallPoints  string `json:"overall_points"`
	TotalPoints    string `json:"total_points"`
	PointsPerRound string `json:"points_per_round"`
	Aces           int    `json:"aces"`
	Eagles         int    `json:"eagles"`
	AceEagles      int    `json:"ace_eagles"`
	Won9           int    `json:"won_9"`
	Won18          int    `json:"won_18"`
	Won33          int    `json:"won_33"`
	BestFront      *int   `json:"best_front"`
	BestBack       *int   `json:"best_back"`
	MoneyWon       string `json:"money_won"`
}

type ReportResponse struct {
	From         string              `json:"from"`
	To           string              `json:"to"`
	Rounds       int                 `json:"rounds"`
	Participants int                 `json:"participants"`
	HouseFund    string              `json:"house_fund"`
	Rows         []ReportRowResponse `json:"rows"`
}

func newReportResponse(v *reportservice.ReportView) ReportResponse {
	resp := ReportResponse{
		From:         v.Report.Range.Start.Format(reportdomain.DateLayout),
		To:           v.Report.Range.End.Format(reportdomain.DateLayout),
		Rounds:       v.Report.RoundCount,
		Participants: v.Report.ParticipantCount,
		HouseFund:    v.Report.HouseFund.String(),
		Rows:         make([]ReportRowResponse, 0, len(v.Rows)),
	}
	for _, r := range v.Rows {
		resp.Rows = append(resp.Rows, ReportRowResponse{
			PlayerID:       int64(r.PlayerID),
			Name:           r.Name,
			Rounds:         r.Rounds,
			FrontPoints:    r.FrontPoints.String(),
			BackPoints:     r.BackPoints.String(),
			OverallPoints:  r.OverallPoints.String(),
			TotalPoints:    r.TotalPoints().String(),
			PointsPerRound: r.PointsPerRound().Decimal(2).StringFixed(2),
			Aces:           r.Aces,
			Eagles:         r.Eagles,
			AceEagles:      r.AceEagles,
			Won9:           r.Won9,
			Won18:          r.Won18,
			Won33:          r.Won33,
			BestFront:      r.BestFront,
			BestBack:       r.BestBack,
			MoneyWon:       r.MoneyWon.String(),
		})
	}
	return resp
}
