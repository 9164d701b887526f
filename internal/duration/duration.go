// Package duration implements the exact rational arithmetic used
// throughout the pattern compiler. A Duration is never represented in
// floating point: nested subdivision routinely needs thirds, sixths, and
// other values binary floats can't hold exactly, and the compiler's core
// invariant (every pattern's event slots sum exactly to its declared
// length) depends on that.
package duration

import (
	"encoding/json"
	"fmt"
)

// Duration is a non-negative rational Num/Den, always kept in lowest
// terms with Den > 0.
type Duration struct {
	Num int64
	Den int64
}

// New builds a reduced Duration. Den == 0 is a programmer error and panics,
// matching the source's bare assert.
func New(num, den int64) Duration {
	if den == 0 {
		panic("duration: zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	return Duration{Num: num, Den: den}.simplify()
}

var (
	Bar       = New(1, 1)
	Half      = New(1, 2)
	Quarter   = New(1, 4)
	Eighth    = New(1, 8)
	Sixteenth = New(1, 16)
	Zero      = New(0, 1)
)

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func lcm(a, b int64) int64 {
	return a / gcd(a, b) * b
}

func (d Duration) simplify() Duration {
	g := gcd(d.Num, d.Den)
	if g == 1 {
		return d
	}
	return Duration{Num: d.Num / g, Den: d.Den / g}
}

// Add returns d + other.
func (d Duration) Add(other Duration) Duration {
	l := lcm(d.Den, other.Den)
	ln := d.Num * (l / d.Den)
	rn := other.Num * (l / other.Den)
	return New(ln+rn, l)
}

// Sub returns d - other. The result may be negative as an intermediate;
// a well-formed pattern never exposes a negative Duration externally.
func (d Duration) Sub(other Duration) Duration {
	return d.Add(New(-other.Num, other.Den))
}

// Mul returns d * other.
func (d Duration) Mul(other Duration) Duration {
	return New(d.Num*other.Num, d.Den*other.Den)
}

// MulInt returns d * n.
func (d Duration) MulInt(n int64) Duration {
	return d.Mul(New(n, 1))
}

// Div returns d / other. other must be non-zero (guaranteed by New).
func (d Duration) Div(other Duration) Duration {
	return d.Mul(New(other.Den, other.Num))
}

// DivInt returns d / n. n must be > 0.
func (d Duration) DivInt(n int64) Duration {
	if n <= 0 {
		panic("duration: divisor must be positive")
	}
	return d.Mul(New(1, n))
}

// IntOverDuration returns n / d, the dual of DivInt.
func IntOverDuration(n int64, d Duration) Duration {
	return New(d.Den, d.Num).MulInt(n)
}

func cross(a, b Duration) (int64, int64) {
	l := lcm(a.Den, b.Den)
	return a.Num * (l / a.Den), b.Num * (l / b.Den)
}

// Equal reports value equality after reduction (2/4 == 1/2).
func (d Duration) Equal(other Duration) bool {
	ls, rs := d.simplify(), other.simplify()
	return ls.Num == rs.Num && ls.Den == rs.Den
}

// Less reports d < other.
func (d Duration) Less(other Duration) bool {
	l, r := cross(d, other)
	return l < r
}

// LessEqual reports d <= other.
func (d Duration) LessEqual(other Duration) bool {
	l, r := cross(d, other)
	return l <= r
}

// Greater reports d > other.
func (d Duration) Greater(other Duration) bool {
	l, r := cross(d, other)
	return l > r
}

// GreaterEqual reports d >= other.
func (d Duration) GreaterEqual(other Duration) bool {
	l, r := cross(d, other)
	return l >= r
}

func (d Duration) String() string {
	return fmt.Sprintf("%d/%d", d.Num, d.Den)
}

// MarshalJSON renders the canonical {"num":...,"den":...} shape.
func (d Duration) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, `{"num":%d,"den":%d}`, d.Num, d.Den), nil
}

// UnmarshalJSON parses the canonical {"num":...,"den":...} shape.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw struct {
		Num int64 `json:"num"`
		Den int64 `json:"den"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = New(raw.Num, raw.Den)
	return nil
}
