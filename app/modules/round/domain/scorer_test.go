package rounddomain

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
)

func detail(player PlayerID, front, back int) RoundDetail {
	return RoundDetail{RoundID: 1, PlayerID: player, FrontRaw: IntPtr(front), BackRaw: IntPtr(back)}
}

func TestRankAxis(t *testing.T) {
	table := DefaultRules().NineHole

	tests := []struct {
		name   string
		scores []int
		want   []fraction.Fraction
	}{
		{
			name:   "no ties",
			scores: []int{2, -1, 0, 5, 1},
			want:   []fraction.Fraction{fraction.FromInt(2), fraction.FromInt(9), fraction.FromInt(6), fraction.FromInt(1), fraction.FromInt(3)},
		},
		{
			name:   "two tied for first",
			scores: []int{-2, -2, 0},
			want:   []fraction.Fraction{fraction.New(15, 2), fraction.New(15, 2), fraction.FromInt(3)},
		},
		{
			name:   "three tied for second",
			scores: []int{-3, 1, 1, 1, 4},
			want: []fraction.Fraction{
				fraction.FromInt(9),
				fraction.New(11, 3), fraction.New(11, 3), fraction.New(11, 3),
				fraction.FromInt(1),
			},
		},
		{
			name:   "tie spills past the table",
			scores: []int{0, 1, 2, 3, 4, 4, 4},
			want: []fraction.Fraction{
				fraction.FromInt(9), fraction.FromInt(6), fraction.FromInt(3), fraction.FromInt(2),
				fraction.New(1, 3), fraction.New(1, 3), fraction.New(1, 3),
			},
		},
		{
			name:   "sixth place earns nothing",
			scores: []int{1, 2, 3, 4, 5, 6},
			want: []fraction.Fraction{
				fraction.FromInt(9), fraction.FromInt(6), fraction.FromInt(3),
				fraction.FromInt(2), fraction.FromInt(1), fraction.Zero(),
			},
		},
		{
			name:   "lone participant takes first regardless of score",
			scores: []int{12},
			want:   []fraction.Fraction{fraction.FromInt(9)},
		},
		{
			name:   "empty",
			scores: nil,
			want:   []fraction.Fraction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankAxis(tt.scores, table)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("index %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(DefaultRules())

	t.Run("lone participant sweeps", func(t *testing.T) {
		details := []RoundDetail{detail(1, 4, 3)}
		if err := scorer.Score(details); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d := details[0]
		if !d.FrontPoints.EqualInt(9) || !d.BackPoints.EqualInt(9) || !d.OverallPoints.EqualInt(15) {
			t.Fatalf("got %s/%s/%s, want 9/9/15", d.FrontPoints, d.BackPoints, d.OverallPoints)
		}
		if !d.RoundPoints().EqualInt(33) {
			t.Fatalf("round total = %s, want 33", d.RoundPoints())
		}
	})

	t.Run("axes are ranked independently", func(t *testing.T) {
		details := []RoundDetail{
			detail(1, -2, 3), // overall 1
			detail(2, 0, -1), // overall -1
			detail(3, 1, 1),  // overall 2
		}
		if err := scorer.Score(details); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[PlayerID][3]int64{
			1: {9, 3, 10},
			2: {6, 9, 15},
			3: {3, 6, 5},
		}
		for _, d := range details {
			w := want[d.PlayerID]
			if !d.FrontPoints.EqualInt(w[0]) || !d.BackPoints.EqualInt(w[1]) || !d.OverallPoints.EqualInt(w[2]) {
				t.Errorf("player %d: got %s/%s/%s, want %v", d.PlayerID, d.FrontPoints, d.BackPoints, d.OverallPoints, w)
			}
		}
	})

	t.Run("missing raw score is rejected without writing", func(t *testing.T) {
		details := []RoundDetail{
			detail(1, 0, 0),
			{RoundID: 1, PlayerID: 2, FrontRaw: IntPtr(1)},
		}
		err := scorer.Score(details)
		var missing *MissingScoreError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingScoreError, got %v", err)
		}
		if missing.PlayerID != 2 || missing.Field != "back" {
			t.Fatalf("unexpected error detail: %+v", missing)
		}
		if !errors.Is(err, ErrMissingScore) {
			t.Fatal("expected error to match ErrMissingScore")
		}
		if !details[0].FrontPoints.IsZero() {
			t.Fatal("points must not be written when input is incomplete")
		}
	})

	t.Run("empty round", func(t *testing.T) {
		if err := scorer.Score(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

// Randomized rounds check conservation, tie symmetry and idempotence.
func TestScorer_Properties(t *testing.T) {
	faker := gofakeit.New(42)
	rules := DefaultRules()
	scorer := NewScorer(rules)

	for iter := 0; iter < 200; iter++ {
		n := faker.IntRange(1, 12)
		details := make([]RoundDetail, n)
		for i := range details {
			// Narrow range so ties are common.
			details[i] = detail(PlayerID(i+1), faker.IntRange(-3, 3), faker.IntRange(-3, 3))
		}

		if err := scorer.Score(details); err != nil {
			t.Fatalf("iteration %d: %v", iter, err)
		}

		checkConservation(t, details, rules, n)
		checkTieSymmetry(t, details)

		again := make([]RoundDetail, n)
		copy(again, details)
		if err := scorer.Score(again); err != nil {
			t.Fatalf("iteration %d rescoring: %v", iter, err)
		}
		if !DetailsEqual(details, again) {
			t.Fatalf("iteration %d: rescoring changed the result", iter)
		}
	}
}

func checkConservation(t *testing.T, details []RoundDetail, rules Rules, n int) {
	t.Helper()
	expected := func(table PointTable) fraction.Fraction {
		var total int64
		for place := 0; place < n && place < len(table); place++ {
			total += table[place]
		}
		return fraction.FromInt(total)
	}

	var front, back, overall fraction.Fraction
	for _, d := range details {
		front = front.Add(d.FrontPoints)
		back = back.Add(d.BackPoints)
		overall = overall.Add(d.OverallPoints)
	}
	if !front.Equal(expected(rules.NineHole)) || !back.Equal(expected(rules.NineHole)) {
		t.Fatalf("nine-hole points not conserved: front=%s back=%s want %s", front, back, expected(rules.NineHole))
	}
	if !overall.Equal(expected(rules.Overall)) {
		t.Fatalf("overall points not conserved: %s want %s", overall, expected(rules.Overall))
	}
}

func checkTieSymmetry(t *testing.T, details []RoundDetail) {
	t.Helper()
	byFront := map[int]fraction.Fraction{}
	for _, d := range details {
		if prev, ok := byFront[*d.FrontRaw]; ok && !prev.Equal(d.FrontPoints) {
			t.Fatalf("tied front score %d got %s and %s", *d.FrontRaw, prev, d.FrontPoints)
		}
		byFront[*d.FrontRaw] = d.FrontPoints
	}
}

func TestRules_Validate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}
	for name, bad := range map[string]Rules{
		"increasing":    {NineHole: PointTable{1, 9}, Overall: PointTable{15}},
		"repeated best": {NineHole: PointTable{9, 9, 3}, Overall: PointTable{15, 10}},
		"repeated tail": {NineHole: PointTable{9, 6, 3}, Overall: PointTable{15, 10, 10}},
		"empty":         {NineHole: PointTable{9}},
	} {
		if err := bad.Validate(); err == nil {
			t.Fatalf("%s: expected table to be rejected", name)
		}
	}
	if DefaultRules().MaxRoundPoints() != 33 {
		t.Fatalf("max round points = %d, want 33", DefaultRules().MaxRoundPoints())
	}
}
