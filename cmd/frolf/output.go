package main

import (
	"fmt"
	"strconv"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/pterm/pterm"
)

func optional(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func renderTable(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

func renderPlayers(players []rounddomain.Player) error {
	data := pterm.TableData{{"ID", "Name", "Full name"}}
	for _, p := range players {
		data = append(data, []string{strconv.FormatInt(int64(p.ID), 10), p.Name, p.FullName})
	}
	return renderTable(data)
}

func renderCourses(courses []rounddomain.Course) error {
	data := pterm.TableData{{"ID", "Name"}}
	for _, c := range courses {
		data = append(data, []string{strconv.FormatInt(int64(c.ID), 10), c.Name})
	}
	return renderTable(data)
}

func renderRounds(rounds []rounddomain.Round, courses []rounddomain.Course) error {
	names := make(map[rounddomain.CourseID]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	data := pterm.TableData{{"ID", "Date", "Course"}}
	for _, r := range rounds {
		data = append(data, []string{
			strconv.FormatInt(int64(r.ID), 10),
			r.Day().Format(reportdomain.DateLayout),
			names[r.CourseID],
		})
	}
	return renderTable(data)
}

func renderRound(v *roundservice.RoundView) error {
	pterm.DefaultSection.Printfln("Round %d at %s on %s", v.Round.ID, v.Course.Name, v.Round.Day().Format(reportdomain.DateLayout))
	data := pterm.TableData{{"Player", "Front", "Back", "Aces", "Eagles", "Ace-eagles", "Front pts", "Back pts", "Overall pts", "Round pts"}}
	for _, d := range v.Details {
		data = append(data, []string{
			v.PlayerName(d.PlayerID),
			optional(d.FrontRaw),
			optional(d.BackRaw),
			strconv.Itoa(d.Aces),
			strconv.Itoa(d.Eagles),
			strconv.Itoa(d.AceEagles),
			d.FrontPoints.String(),
			d.BackPoints.String(),
			d.OverallPoints.String(),
			d.RoundPoints().String(),
		})
	}
	return renderTable(data)
}

func renderScoreResult(res *roundservice.ScoreResult) error {
	if err := renderRound(&res.View); err != nil {
		return err
	}
	if res.Scored {
		pterm.Success.Printfln("Round scored, %d rows changed", res.Changed)
	} else {
		pterm.Warning.Println("Scores saved; points are calculated once every participant has a score")
	}
	return nil
}

func renderSettlement(s *moneydomain.Settlement, players []rounddomain.Player) error {
	names := make(map[rounddomain.PlayerID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	pterm.DefaultSection.Printfln("Money round for round %d (%s)", s.Round.RoundID, s.Round.State())
	for i, o := range s.Round.Stages {
		pterm.Info.Printfln("Stage %d: %s", i+1, o)
	}

	data := pterm.TableData{{"Player", "Stage 1", "Stage 2", "Stage 3", "Total"}}
	for _, d := range s.Details {
		name, ok := names[d.PlayerID]
		if !ok {
			name = fmt.Sprintf("#%d", d.PlayerID)
		}
		data = append(data, []string{name, d.Winnings[0].String(), d.Winnings[1].String(), d.Winnings[2].String(), d.Total().String()})
	}
	if err := renderTable(data); err != nil {
		return err
	}
	pterm.Info.Printfln("House takes %s", s.House)
	return nil
}

func renderReport(v *reportservice.ReportView) error {
	r := v.Report
	pterm.DefaultSection.Printfln("Report %s: %d rounds, %d players", r.Range, r.RoundCount, r.ParticipantCount)
	if len(v.Rows) == 0 {
		pterm.Warning.Println("No scored rounds in this range")
		return nil
	}
	data := pterm.TableData{{"Name", "Rnds", "Front", "Back", "Overall", "Total", "Per rnd", "Won 9", "Won 18", "Won 33", "Aces", "Eagles", "Ace-eagles", "Best F", "Best B", "$ Won"}}
	for _, row := range v.Rows {
		data = append(data, []string{
			row.Name,
			strconv.Itoa(row.Rounds),
			row.FrontPoints.String(),
			row.BackPoints.String(),
			row.OverallPoints.String(),
			row.TotalPoints().String(),
			row.PointsPerRound().Decimal(2).StringFixed(2),
			strconv.Itoa(row.Won9),
			strconv.Itoa(row.Won18),
			strconv.Itoa(row.Won33),
			strconv.Itoa(row.Aces),
			strconv.Itoa(row.Eagles),
			strconv.Itoa(row.AceEagles),
			optional(row.BestFront),
			optional(row.BestBack),
			row.MoneyWon.String(),
		})
	}
	if err := renderTable(data); err != nil {
		return err
	}
	pterm.Info.Printfln("Mz Kitty holds %s", r.HouseFund)
	return nil
}
