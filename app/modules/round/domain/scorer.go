package rounddomain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
)

// PointTable lists the points for 1st, 2nd, ... place. Places past the end earn nothing.
type PointTable []int64

// Slot returns the points for a zero-based place.
func (t PointTable) Slot(place int) int64 {
	if place < 0 || place >= len(t) {
		return 0
	}
	return t[place]
}

// Best is the first-place value, i.e. what an untied winner receives.
func (t PointTable) Best() int64 {
	return t.Slot(0)
}

// Rules holds the point tables for the two nine-hole axes and the overall axis.
type Rules struct {
	NineHole PointTable
	Overall  PointTable
}

// DefaultRules are the league tables: 9/6/3/2/1 per nine and 15/10/5/3/2 overall.
func DefaultRules() Rules {
	return Rules{
		NineHole: PointTable{9, 6, 3, 2, 1},
		Overall:  PointTable{15, 10, 5, 3, 2},
	}
}

// Validate rejects empty tables and tables that are not strictly decreasing. A
// repeated entry would let a tie average out to a clean win.
func (r Rules) Validate() error {
	for name, table := range map[string]PointTable{"nine_hole": r.NineHole, "overall": r.Overall} {
		if len(table) == 0 {
			return fmt.Errorf("%s point table is empty", name)
		}
		for i := 1; i < len(table); i++ {
			if table[i] >= table[i-1] {
				return fmt.Errorf("%s point table must be strictly decreasing: %v", name, table)
			}
		}
	}
	return nil
}

// MaxRoundPoints is the total a participant takes by winning all three axes untied.
func (r Rules) MaxRoundPoints() int64 {
	return 2*r.NineHole.Best() + r.Overall.Best()
}

// Scorer converts raw round results into competition points.
type Scorer struct {
	rules Rules
}

func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules}
}

func (s *Scorer) Rules() Rules {
	return s.rules
}

// Score ranks the front, back and overall axes independently and writes the points
// back onto each detail. Nothing is written if any detail is missing a raw score.
// Scoring the same input twice yields identical points.
func (s *Scorer) Score(details []RoundDetail) error {
	var missing []error
	for _, d := range details {
		if d.FrontRaw == nil {
			missing = append(missing, &MissingScoreError{RoundID: d.RoundID, PlayerID: d.PlayerID, Field: "front"})
		}
		if d.BackRaw == nil {
			missing = append(missing, &MissingScoreError{RoundID: d.RoundID, PlayerID: d.PlayerID, Field: "back"})
		}
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	front := make([]int, len(details))
	back := make([]int, len(details))
	overall := make([]int, len(details))
	for i, d := range details {
		front[i] = *d.FrontRaw
		back[i] = *d.BackRaw
		overall[i] = *d.FrontRaw + *d.BackRaw
	}

	frontPoints := RankAxis(front, s.rules.NineHole)
	backPoints := RankAxis(back, s.rules.NineHole)
	overallPoints := RankAxis(overall, s.rules.Overall)

	for i := range details {
		details[i].FrontPoints = frontPoints[i]
		details[i].BackPoints = backPoints[i]
		details[i].OverallPoints = overallPoints[i]
	}
	return nil
}

// RankAxis returns the points for each score, index aligned with scores. Lower is better.
//
// Participants sharing a score pool the table slots their group spans and split them
// evenly, so two players tied for first on a 9/6 table each receive 15/2.
func RankAxis(scores []int, table PointTable) []fraction.Fraction {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[a], scores[b])
	})

	points := make([]fraction.Fraction, len(scores))
	place := 0
	for place < len(order) {
		end := place + 1
		for end < len(order) && scores[order[end]] == scores[order[place]] {
			end++
		}

		var pool int64
		for slot := place; slot < end; slot++ {
			pool += table.Slot(slot)
		}
		share := fraction.New(pool, int64(end-place))
		for _, idx := range order[place:end] {
			points[idx] = share
		}
		place = end
	}
	return points
}
