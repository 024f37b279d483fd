package reportdomain

import (
	"cmp"
	"slices"

	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

// History is everything the aggregator may look at. Records outside the window are ignored.
type History struct {
	Rounds       []rounddomain.Round
	Details      []rounddomain.RoundDetail
	MoneyRounds  []moneydomain.MoneyRound
	MoneyDetails []moneydomain.MoneyRoundDetail
}

// Report is the aggregated view of one window.
type Report struct {
	Range   DateRange
	Results []SearchResult
	// RoundCount is the number of distinct fully scored rounds in range.
	RoundCount int
	// ParticipantCount is the number of distinct participants in range.
	ParticipantCount int
	// HouseFund is what the house accrued from money rounds in range.
	HouseFund money.Amount
}

type winThresholds struct {
	nine    int64
	overall int64
	sweep   int64
}

// Aggregator rolls scored round history into per-participant results.
type Aggregator struct {
	thresholds winThresholds
	unitStake  money.Amount
}

// NewAggregator derives the clean-win thresholds from the scoring tables.
func NewAggregator(scoring rounddomain.Rules, settlement moneydomain.Rules) *Aggregator {
	return &Aggregator{
		thresholds: winThresholds{
			nine:    scoring.NineHole.Best(),
			overall: scoring.Overall.Best(),
			sweep:   scoring.MaxRoundPoints(),
		},
		unitStake: settlement.UnitStake,
	}
}

// Aggregate builds the report for r from fully scored rounds. Results are ordered by total points, highest first,
// then by participant id. An empty window gives an empty report.
func (a *Aggregator) Aggregate(r DateRange, h History) Report {
	inRange := make(map[rounddomain.RoundID]bool, len(h.Rounds))
	for _, round := range h.Rounds {
		if r.Contains(round.Date) {
			inRange[round.ID] = true
		}
	}
	// A round counts only once every card on it has been entered.
	for _, d := range h.Details {
		if !d.HasRawScores() {
			delete(inRange, d.RoundID)
		}
	}

	winnings := make(map[rounddomain.DetailKey]money.Amount, len(h.MoneyDetails))
	moneyParticipants := make(map[rounddomain.RoundID]int)
	for _, md := range h.MoneyDetails {
		if !inRange[md.RoundID] {
			continue
		}
		winnings[md.Key()] = winnings[md.Key()].Add(md.Total())
		moneyParticipants[md.RoundID]++
	}

	byPlayer := make(map[rounddomain.PlayerID]*SearchResult)
	roundsSeen := make(map[rounddomain.RoundID]struct{})
	for _, d := range h.Details {
		if !inRange[d.RoundID] {
			continue
		}
		res, ok := byPlayer[d.PlayerID]
		if !ok {
			res = &SearchResult{PlayerID: d.PlayerID}
			byPlayer[d.PlayerID] = res
		}
		res.addRound(d, a.thresholds)
		res.MoneyWon = res.MoneyWon.Add(winnings[d.Key()])
		roundsSeen[d.RoundID] = struct{}{}
	}

	house := money.Zero()
	for _, mr := range h.MoneyRounds {
		if !inRange[mr.RoundID] {
			continue
		}
		house = house.Add(moneydomain.HouseAccrual(mr, moneyParticipants[mr.RoundID], a.unitStake))
	}

	results := make([]SearchResult, 0, len(byPlayer))
	for _, res := range byPlayer {
		results = append(results, *res)
	}
	slices.SortFunc(results, func(x, y SearchResult) int {
		if c := y.TotalPoints().Cmp(x.TotalPoints()); c != 0 {
			return c
		}
		return cmp.Compare(x.PlayerID, y.PlayerID)
	})

	return Report{
		Range:            r,
		Results:          results,
		RoundCount:       len(roundsSeen),
		ParticipantCount: len(results),
		HouseFund:        house,
	}
}

// Find returns the result for one participant.
func (rep Report) Find(player rounddomain.PlayerID) (SearchResult, bool) {
	for _, r := range rep.Results {
		if r.PlayerID == player {
			return r, true
		}
	}
	return SearchResult{}, false
}
