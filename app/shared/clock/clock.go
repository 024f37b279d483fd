package clock

import "time"

// Clock abstracts "now" so relative dates ("last month", "ytd") can be resolved deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// AnchorClock always returns the anchor time. If t is the zero value, the current
// UTC time is captured once at construction.
type AnchorClock struct {
	anchor time.Time
}

func NewAnchorClock(t time.Time) AnchorClock {
	if t.IsZero() {
		return AnchorClock{anchor: time.Now().UTC()}
	}
	return AnchorClock{anchor: t}
}

func (c AnchorClock) Now() time.Time { return c.anchor }
