package reportdomain

import (
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

// SearchResult is one participant's summary over a report window.
type SearchResult struct {
	PlayerID rounddomain.PlayerID
	Rounds   int

	FrontPoints   fraction.Fraction
	BackPoints    fraction.Fraction
	OverallPoints fraction.Fraction

	Aces      int
	Eagles    int
	AceEagles int

	// Won9 counts untied front or back wins, so a round can add two.
	Won9  int
	Won18 int
	Won33 int

	BestFront *int
	BestBack  *int

	MoneyWon money.Amount
}

// TotalPoints sums the three axes.
func (r SearchResult) TotalPoints() fraction.Fraction {
	return fraction.Sum(r.FrontPoints, r.BackPoints, r.OverallPoints)
}

// PointsPerRound is exact; zero when no rounds were counted.
func (r SearchResult) PointsPerRound() fraction.Fraction {
	if r.Rounds == 0 {
		return fraction.Zero()
	}
	return r.TotalPoints().DivInt(int64(r.Rounds))
}

func (r *SearchResult) addRound(d rounddomain.RoundDetail, thresholds winThresholds) {
	r.Rounds++
	r.FrontPoints = r.FrontPoints.Add(d.FrontPoints)
	r.BackPoints = r.BackPoints.Add(d.BackPoints)
	r.OverallPoints = r.OverallPoints.Add(d.OverallPoints)
	r.Aces += d.Aces
	r.Eagles += d.Eagles
	r.AceEagles += d.AceEagles

	if d.FrontPoints.EqualInt(thresholds.nine) {
		r.Won9++
	}
	if d.BackPoints.EqualInt(thresholds.nine) {
		r.Won9++
	}
	if d.OverallPoints.EqualInt(thresholds.overall) {
		r.Won18++
	}
	if d.RoundPoints().EqualInt(thresholds.sweep) {
		r.Won33++
	}

	r.BestFront = minPtr(r.BestFront, d.FrontRaw)
	r.BestBack = minPtr(r.BestBack, d.BackRaw)
}

func minPtr(best, candidate *int) *int {
	if candidate == nil {
		return best
	}
	if best == nil || *candidate < *best {
		v := *candidate
		return &v
	}
	return best
}
