// Package money holds the exact currency value used for money-round wagers.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrSignMismatch is returned when dollars and cents are given with opposite signs.
	ErrSignMismatch  = errors.New("signs of dollars and cents must match")
	ErrInvalidAmount = errors.New("must be a dollar amount with at most two decimals")
)

// Amount is a dollars/cents pair. Both parts always share a sign and |cents| < 100.
type Amount struct {
	dollars int64
	cents   int64
}

// New builds an amount from dollars and cents, carrying whole dollars out of cents.
// New(2, 150) is $3.50 and New(-1, -150) is -$2.50.
func New(dollars, cents int64) (Amount, error) {
	if (dollars > 0 && cents < 0) || (dollars < 0 && cents > 0) {
		return Amount{}, fmt.Errorf("%w: dollars=%d cents=%d", ErrSignMismatch, dollars, cents)
	}
	for cents >= 100 {
		dollars++
		cents -= 100
	}
	for cents <= -100 {
		dollars--
		cents += 100
	}
	return Amount{dollars: dollars, cents: cents}, nil
}

// MustNew panics on a sign mismatch. Intended for constants and tests.
func MustNew(dollars, cents int64) Amount {
	a, err := New(dollars, cents)
	if err != nil {
		panic(err)
	}
	return a
}

// Dollars returns a whole-dollar amount.
func Dollars(n int64) Amount {
	return Amount{dollars: n}
}

// FromCents rebuilds an amount from a flattened total.
func FromCents(total int64) Amount {
	return Amount{dollars: total / 100, cents: total % 100}
}

// Parse reads "3", "$1.50" or "-0.25". An empty string is zero.
func Parse(s string) (Amount, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return Zero(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromCents(cents.IntPart()), nil
}

// Zero is $0.00.
func Zero() Amount {
	return Amount{}
}

func (a Amount) DollarPart() int64 { return a.dollars }
func (a Amount) CentPart() int64   { return a.cents }

// AsCents flattens the amount; this is the persisted and compared form.
func (a Amount) AsCents() int64 {
	return a.dollars*100 + a.cents
}

func (a Amount) Add(o Amount) Amount {
	return FromCents(a.AsCents() + o.AsCents())
}

func (a Amount) Sub(o Amount) Amount {
	return FromCents(a.AsCents() - o.AsCents())
}

func (a Amount) Neg() Amount {
	return Amount{dollars: -a.dollars, cents: -a.cents}
}

// Mul multiplies by a whole count, e.g. a unit stake by the number of participants.
func (a Amount) Mul(n int64) Amount {
	return FromCents(a.AsCents() * n)
}

// Div divides the total cents by n, flooring the result. Panics when n is zero.
func (a Amount) Div(n int64) Amount {
	if n == 0 {
		panic("money: division by zero")
	}
	c := a.AsCents()
	q := c / n
	if c%n != 0 && (c < 0) != (n < 0) {
		q--
	}
	return FromCents(q)
}

func (a Amount) IsZero() bool {
	return a.dollars == 0 && a.cents == 0
}

func (a Amount) IsNegative() bool {
	return a.AsCents() < 0
}

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(o Amount) int {
	l, r := a.AsCents(), o.AsCents()
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func (a Amount) Equal(o Amount) bool {
	return a.AsCents() == o.AsCents()
}

// Decimal returns the amount in dollars as a decimal.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.AsCents(), -2)
}

// String formats as "$3.50" or "-$2.50".
func (a Amount) String() string {
	total := a.AsCents()
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s$%d.%02d", sign, total/100, total%100)
}

// Sum adds amounts.
func Sum(amounts ...Amount) Amount {
	var total int64
	for _, a := range amounts {
		total += a.AsCents()
	}
	return FromCents(total)
}
