// Package fraction provides an exact rational number used for competition points.
//
// Points produced by tie splitting (e.g. 9+6 shared by two players = 15/2) must be
// summed and compared across many rounds without drift, so nothing in this package
// ever goes through floating point. Conversion to decimal happens only for display.
package fraction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fraction is an immutable rational number. The zero value is 0.
type Fraction struct {
	num int64
	den int64
}

// New returns num/den reduced to lowest terms with a positive denominator.
// A zero denominator is a programming error and panics.
func New(num, den int64) Fraction {
	if den == 0 {
		panic("fraction: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs(num), den); g > 1 {
		num /= g
		den /= g
	}
	return Fraction{num: num, den: den}
}

// FromInt returns n/1.
func FromInt(n int64) Fraction {
	return Fraction{num: n, den: 1}
}

// Zero returns 0/1.
func Zero() Fraction {
	return Fraction{num: 0, den: 1}
}

// Num returns the reduced numerator.
func (f Fraction) Num() int64 {
	return f.num
}

// Den returns the reduced denominator, 1 for the zero value.
func (f Fraction) Den() int64 {
	if f.den == 0 {
		return 1
	}
	return f.den
}

func (f Fraction) Add(o Fraction) Fraction {
	return New(f.num*o.Den()+o.num*f.Den(), f.Den()*o.Den())
}

func (f Fraction) Sub(o Fraction) Fraction {
	return f.Add(o.Neg())
}

func (f Fraction) Mul(o Fraction) Fraction {
	return New(f.num*o.num, f.Den()*o.Den())
}

// Div panics when o is zero.
func (f Fraction) Div(o Fraction) Fraction {
	return New(f.num*o.Den(), f.Den()*o.num)
}

// DivInt panics when n is zero.
func (f Fraction) DivInt(n int64) Fraction {
	return New(f.num, f.Den()*n)
}

func (f Fraction) Neg() Fraction {
	return Fraction{num: -f.num, den: f.Den()}
}

// Cmp returns -1, 0 or +1 comparing f with o by cross multiplication.
func (f Fraction) Cmp(o Fraction) int {
	l := f.num * o.Den()
	r := o.num * f.Den()
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// Equal reports value equality, so 9/1 equals 18/2.
func (f Fraction) Equal(o Fraction) bool {
	return f.Cmp(o) == 0
}

// EqualInt reports whether f is exactly the integer n.
func (f Fraction) EqualInt(n int64) bool {
	return f.Equal(FromInt(n))
}

func (f Fraction) IsZero() bool {
	return f.num == 0
}

// IsInt reports whether the denominator is 1.
func (f Fraction) IsInt() bool {
	return f.Den() == 1
}

// String renders a mixed number: "4/3" prints as "1 1/3", "-5/2" as "-2 1/2".
func (f Fraction) String() string {
	num, den := f.num, f.Den()
	if den == 1 {
		return fmt.Sprintf("%d", num)
	}
	sign := ""
	if num < 0 {
		sign = "-"
		num = -num
	}
	whole, rem := num/den, num%den
	if whole == 0 {
		return fmt.Sprintf("%s%d/%d", sign, rem, den)
	}
	return fmt.Sprintf("%s%d %d/%d", sign, whole, rem, den)
}

// Decimal converts to a decimal rounded to places digits. Display only.
func (f Fraction) Decimal(places int32) decimal.Decimal {
	return decimal.NewFromInt(f.num).DivRound(decimal.NewFromInt(f.Den()), places)
}

// Float64 is for charting; never feed the result back into arithmetic.
func (f Fraction) Float64() float64 {
	v, _ := f.Decimal(6).Float64()
	return v
}

// Sum adds all values exactly.
func Sum(values ...Fraction) Fraction {
	total := Zero()
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
