package reportdomain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateRange is an inclusive window of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both ends to calendar days.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: rounddomain.CalendarDay(start), End: rounddomain.CalendarDay(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return r, nil
}

// Contains reports whether t falls on or between the start and end days.
func (r DateRange) Contains(t time.Time) bool {
	day := rounddomain.CalendarDay(t)
	return !day.Before(rounddomain.CalendarDay(r.Start)) && !day.After(rounddomain.CalendarDay(r.End))
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

const DateLayout = "2006-01-02"

var (
	ErrInvalidRange   = errors.New("invalid date range")
	ErrUnknownRange   = errors.New("unknown range name")
	ErrUnparsableDate = errors.New("could not recognize date")
)

// Named ranges available from the CLI and API.
const (
	RangeYearToDate  = "ytd"
	RangeMonthToDate = "mtd"
	RangeLastYear    = "last-year"
	RangeLastMonth   = "last-month"
	RangeAllTime     = "all-time"
)

// RangeNames lists the named ranges in display order.
var RangeNames = []string{RangeYearToDate, RangeMonthToDate, RangeLastYear, RangeLastMonth, RangeAllTime}

// NamedRange resolves a named range relative to now.
func NamedRange(name string, now time.Time) (DateRange, error) {
	today := rounddomain.CalendarDay(now)
	y, m, _ := today.Date()

	switch strings.ToLower(strings.TrimSpace(name)) {
	case RangeYearToDate:
		return DateRange{Start: time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case RangeMonthToDate:
		return DateRange{Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case RangeLastYear:
		return DateRange{
			Start: time.Date(y-1, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y-1, 12, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	case RangeLastMonth:
		firstOfThis := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: firstOfThis.AddDate(0, -1, 0), End: firstOfThis.AddDate(0, 0, -1)}, nil
	case RangeAllTime:
		return DateRange{
			Start: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(3000, 12, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownRange, name, strings.Join(RangeNames, ", "))
	}
}

var dateLayouts = []string{DateLayout, "01/02/2006", "1/2/2006", "Jan 2, 2006", "January 2, 2006"}

// ParseDate accepts fixed layouts first, then natural language ("yesterday", "last friday").
func ParseDate(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparsableDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparsableDate, input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableDate, input)
	}
	return rounddomain.CalendarDay(r.Time), nil
}
