package rounddomain

import (
	"cmp"
	"slices"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/fraction"
)

type (
	RoundID  int64
	PlayerID int64
	CourseID int64
)

// Player is a roster entry. Name is the short display name used on scorecards.
type Player struct {
	ID       PlayerID
	Name     string
	FullName string
}

type Course struct {
	ID   CourseID
	Name string
}

// Round is one dated event at a course.
type Round struct {
	ID       RoundID
	CourseID CourseID
	Date     time.Time
}

// Day truncates the round date to its calendar day in UTC.
func (r Round) Day() time.Time {
	return CalendarDay(r.Date)
}

// CalendarDay drops the time of day so dates compare by calendar day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DetailKey identifies a RoundDetail row. It is only used for lookup; see Equal for change detection.
type DetailKey struct {
	RoundID  RoundID
	PlayerID PlayerID
}

// RoundDetail is one participant's result within one round.
//
// FrontRaw and BackRaw are strokes relative to par for holes 1-9 and 10-18 and stay nil
// until recorded. The point fields are zero until the round is scored and are stale
// after any raw value changes.
type RoundDetail struct {
	RoundID   RoundID
	PlayerID  PlayerID
	FrontRaw  *int
	BackRaw   *int
	Aces      int
	Eagles    int
	AceEagles int

	FrontPoints   fraction.Fraction
	BackPoints    fraction.Fraction
	OverallPoints fraction.Fraction // overall-axis result only
}

func (d RoundDetail) Key() DetailKey {
	return DetailKey{RoundID: d.RoundID, PlayerID: d.PlayerID}
}

// HasRawScores reports whether both halves have been recorded.
func (d RoundDetail) HasRawScores() bool {
	return d.FrontRaw != nil && d.BackRaw != nil
}

// OverallRaw is FrontRaw + BackRaw; ok is false until both are recorded.
func (d RoundDetail) OverallRaw() (int, bool) {
	if !d.HasRawScores() {
		return 0, false
	}
	return *d.FrontRaw + *d.BackRaw, true
}

// RoundPoints is the reported competition score for the round: all three axes summed.
func (d RoundDetail) RoundPoints() fraction.Fraction {
	return fraction.Sum(d.FrontPoints, d.BackPoints, d.OverallPoints)
}

// SetRawScores records both halves and clears the now stale points.
func (d *RoundDetail) SetRawScores(front, back int) {
	d.FrontRaw = &front
	d.BackRaw = &back
	d.FrontPoints = fraction.Fraction{}
	d.BackPoints = fraction.Fraction{}
	d.OverallPoints = fraction.Fraction{}
}

// Equal compares every recorded and computed field.
func (d RoundDetail) Equal(o RoundDetail) bool {
	return d.Key() == o.Key() &&
		intPtrEqual(d.FrontRaw, o.FrontRaw) &&
		intPtrEqual(d.BackRaw, o.BackRaw) &&
		d.Aces == o.Aces &&
		d.Eagles == o.Eagles &&
		d.AceEagles == o.AceEagles &&
		d.FrontPoints.Equal(o.FrontPoints) &&
		d.BackPoints.Equal(o.BackPoints) &&
		d.OverallPoints.Equal(o.OverallPoints)
}

// DetailsEqual reports whether two detail sets hold the same rows regardless of order.
func DetailsEqual(a, b []RoundDetail) bool {
	if len(a) != len(b) {
		return false
	}
	byKey := make(map[DetailKey]RoundDetail, len(a))
	for _, d := range a {
		byKey[d.Key()] = d
	}
	for _, d := range b {
		other, ok := byKey[d.Key()]
		if !ok || !other.Equal(d) {
			return false
		}
	}
	return true
}

// ChangedDetails returns the rows of after that differ from, or are missing in, before.
func ChangedDetails(before, after []RoundDetail) []RoundDetail {
	byKey := make(map[DetailKey]RoundDetail, len(before))
	for _, d := range before {
		byKey[d.Key()] = d
	}
	var changed []RoundDetail
	for _, d := range after {
		if prev, ok := byKey[d.Key()]; !ok || !prev.Equal(d) {
			changed = append(changed, d)
		}
	}
	return changed
}

// SortByPlayer orders details by participant id in place.
func SortByPlayer(details []RoundDetail) {
	slices.SortFunc(details, func(a, b RoundDetail) int {
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// IntPtr is a small helper for building details in callers and tests.
func IntPtr(v int) *int {
	return &v
}
