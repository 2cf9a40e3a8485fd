// Package interval implements outward-rounded interval arithmetic over
// numeric.Float, the L0 layer spec'd as a pair (l,u) of rounded floats
// with the invariant that every operation's true mathematical result
// lies within the returned interval.
package interval

import (
	"fmt"

	"ariadne/numeric"
)

// Interval is the closed real interval [Lo, Hi], or the empty set when
// Lo > Hi (canonically represented as Lo=+Inf, Hi=-Inf, per spec.md 3).
type Interval struct {
	Lo, Hi numeric.Float
	Prec   uint
}

// DomainError mirrors numeric.DomainError for interval-level failures
// that have no rounded-float analogue (division by a zero-straddling
// interval, for instance).
type DomainError struct {
	Op     string
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("interval: %s: %s", e.Op, e.Detail)
}

// New builds [lo, hi], validating lo <= hi.
func New(lo, hi numeric.Float) (Interval, error) {
	if lo.Cmp(hi) > 0 {
		return Interval{}, &DomainError{Op: "new", Detail: "lower bound exceeds upper bound"}
	}
	return Interval{Lo: lo, Hi: hi, Prec: lo.Prec()}, nil
}

// MustNew is New but panics on error; for constructing literals in tests
// and presets where the bounds are known-good constants.
func MustNew(lo, hi numeric.Float) Interval {
	iv, err := New(lo, hi)
	if err != nil {
		panic(err)
	}
	return iv
}

// Point returns the degenerate interval [x, x].
func Point(x numeric.Float) Interval {
	return Interval{Lo: x, Hi: x, Prec: x.Prec()}
}

// FromFloat64 builds [lo, hi] from float64 literals at precision prec.
func FromFloat64(lo, hi float64, prec uint) Interval {
	return MustNew(numeric.FromFloat64(lo, prec), numeric.FromFloat64(hi, prec))
}

// Empty returns the canonical empty interval at precision prec.
func Empty(prec uint) Interval {
	return Interval{Lo: numeric.PosInf(prec), Hi: numeric.NegInf(prec), Prec: prec}
}

// IsEmpty reports whether x represents the empty set.
func (x Interval) IsEmpty() bool {
	return x.Lo.Cmp(x.Hi) > 0
}

// Contains reports whether the real value v lies in x.
func (x Interval) Contains(v numeric.Float) bool {
	if x.IsEmpty() {
		return false
	}
	return x.Lo.Cmp(v) <= 0 && v.Cmp(x.Hi) <= 0
}

// Width returns Hi-Lo rounded up (an over-approximation of the true
// width is always safe; never under-report how wide an interval is).
func (x Interval) Width() numeric.Float {
	if x.IsEmpty() {
		return numeric.FromFloat64(0, x.Prec)
	}
	return numeric.Sub(x.Hi, x.Lo, x.Prec, numeric.Up)
}

// Midpoint returns an approximate centre point (Near rounding; used only
// for splitting heuristics, never as a soundness-critical bound).
func (x Interval) Midpoint() numeric.Float {
	sum := numeric.Add(x.Lo, x.Hi, x.Prec, numeric.Near)
	return numeric.Div2(sum, x.Prec)
}

// Radius returns an outward-rounded half-width.
func (x Interval) Radius() numeric.Float {
	w := x.Width()
	return numeric.Div2(w, x.Prec)
}

func (x Interval) String() string {
	if x.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%s, %s]", x.Lo, x.Hi)
}

// Neg returns -x.
func Neg(x Interval) Interval {
	if x.IsEmpty() {
		return x
	}
	return Interval{Lo: x.Hi.Neg(), Hi: x.Lo.Neg(), Prec: x.Prec}
}

// Add returns x+y, outward rounded: [down(lo_x+lo_y), up(hi_x+hi_y)].
func Add(x, y Interval, prec uint) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(prec)
	}
	return Interval{
		Lo:   numeric.Add(x.Lo, y.Lo, prec, numeric.Down),
		Hi:   numeric.Add(x.Hi, y.Hi, prec, numeric.Up),
		Prec: prec,
	}
}

// Sub returns x-y, outward rounded.
func Sub(x, y Interval, prec uint) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(prec)
	}
	return Interval{
		Lo:   numeric.Sub(x.Lo, y.Hi, prec, numeric.Down),
		Hi:   numeric.Sub(x.Hi, y.Lo, prec, numeric.Up),
		Prec: prec,
	}
}

// Mul returns x*y, outward rounded: all four endpoint products are
// formed twice, rounded down and rounded up, and the lower bound is the
// minimum of the rounded-down ones, the upper bound the maximum of the
// rounded-up ones. No branch on endpoint signs is taken; the result is
// the same enclosure a sign-case split would pick.
func Mul(x, y Interval, prec uint) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(prec)
	}
	candidates := [4]numeric.Float{
		numeric.Mul(x.Lo, y.Lo, prec, numeric.Down),
		numeric.Mul(x.Lo, y.Hi, prec, numeric.Down),
		numeric.Mul(x.Hi, y.Lo, prec, numeric.Down),
		numeric.Mul(x.Hi, y.Hi, prec, numeric.Down),
	}
	lo := candidates[0]
	for _, c := range candidates[1:] {
		lo = numeric.Min(lo, c)
	}
	candidatesUp := [4]numeric.Float{
		numeric.Mul(x.Lo, y.Lo, prec, numeric.Up),
		numeric.Mul(x.Lo, y.Hi, prec, numeric.Up),
		numeric.Mul(x.Hi, y.Lo, prec, numeric.Up),
		numeric.Mul(x.Hi, y.Hi, prec, numeric.Up),
	}
	hi := candidatesUp[0]
	for _, c := range candidatesUp[1:] {
		hi = numeric.Max(hi, c)
	}
	return Interval{Lo: lo, Hi: hi, Prec: prec}
}

// ContainsZero reports whether 0 in [Lo, Hi].
func (x Interval) ContainsZero() bool {
	zero := numeric.FromFloat64(0, x.Prec)
	return x.Contains(zero)
}

// Div returns x/y. An interval straddling (or touching) zero has no
// sound reciprocal and is a DomainError, per spec.md 4.1.
func Div(x, y Interval, prec uint) (Interval, error) {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(prec), nil
	}
	if y.ContainsZero() {
		return Interval{}, &DomainError{Op: "div", Detail: "divisor interval contains zero"}
	}
	recipLo, err := numeric.Div(numeric.FromFloat64(1, prec), y.Hi, prec, numeric.Down)
	if err != nil {
		return Interval{}, err
	}
	recipHi, err := numeric.Div(numeric.FromFloat64(1, prec), y.Lo, prec, numeric.Up)
	if err != nil {
		return Interval{}, err
	}
	recip := Interval{Lo: recipLo, Hi: recipHi, Prec: prec}
	return Mul(x, recip, prec), nil
}

// Sqrt returns an enclosure of {sqrt(v) : v in x}. A lower bound below
// zero is clamped to zero (only the non-negative part of x can have a
// real square root); an interval that is entirely negative is a
// DomainError.
func Sqrt(x Interval, prec uint) (Interval, error) {
	if x.IsEmpty() {
		return Empty(prec), nil
	}
	zero := numeric.FromFloat64(0, prec)
	if x.Hi.Sign() < 0 {
		return Interval{}, &DomainError{Op: "sqrt", Detail: "interval entirely negative"}
	}
	lo := x.Lo
	if lo.Sign() < 0 {
		lo = zero
	}
	loR, err := numeric.Sqrt(lo, prec, numeric.Down)
	if err != nil {
		return Interval{}, err
	}
	hiR, err := numeric.Sqrt(x.Hi, prec, numeric.Up)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Lo: loR, Hi: hiR, Prec: prec}, nil
}

// Exp returns an enclosure of {exp(v) : v in x}, exact (up to rounding)
// by monotonicity.
func Exp(x Interval, prec uint) Interval {
	if x.IsEmpty() {
		return Empty(prec)
	}
	return Interval{Lo: numeric.Exp(x.Lo, prec, numeric.Down), Hi: numeric.Exp(x.Hi, prec, numeric.Up), Prec: prec}
}

// Log returns an enclosure of {log(v) : v in x}. x.Lo <= 0 is a
// DomainError.
func Log(x Interval, prec uint) (Interval, error) {
	if x.IsEmpty() {
		return Empty(prec), nil
	}
	loR, err := numeric.Log(x.Lo, prec, numeric.Down)
	if err != nil {
		return Interval{}, err
	}
	hiR, err := numeric.Log(x.Hi, prec, numeric.Up)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Lo: loR, Hi: hiR, Prec: prec}, nil
}

// Atan returns an enclosure of {atan(v) : v in x}, exact by monotonicity.
func Atan(x Interval, prec uint) Interval {
	if x.IsEmpty() {
		return Empty(prec)
	}
	return Interval{Lo: numeric.Atan(x.Lo, prec, numeric.Down), Hi: numeric.Atan(x.Hi, prec, numeric.Up), Prec: prec}
}

// Hull returns the tightest interval containing both x and y (their
// union is not generally an interval, but the hull always is and it
// is what set operations on boxes need).
func Hull(x, y Interval) Interval {
	if x.IsEmpty() {
		return y
	}
	if y.IsEmpty() {
		return x
	}
	return Interval{Lo: numeric.Min(x.Lo, y.Lo), Hi: numeric.Max(x.Hi, y.Hi), Prec: x.Prec}
}

// Intersect returns x ∩ y, or Empty if disjoint.
func Intersect(x, y Interval) Interval {
	if x.IsEmpty() || y.IsEmpty() {
		return Empty(x.Prec)
	}
	lo := numeric.Max(x.Lo, y.Lo)
	hi := numeric.Min(x.Hi, y.Hi)
	if lo.Cmp(hi) > 0 {
		return Empty(x.Prec)
	}
	return Interval{Lo: lo, Hi: hi, Prec: x.Prec}
}

// Subset reports whether x is contained in y.
func Subset(x, y Interval) bool {
	if x.IsEmpty() {
		return true
	}
	if y.IsEmpty() {
		return false
	}
	return y.Lo.Cmp(x.Lo) <= 0 && x.Hi.Cmp(y.Hi) <= 0
}

// WidenBy outward-pads x by radius delta on each side (delta >= 0), used
// by the Bounder's widening step (spec.md 4.5).
func WidenBy(x Interval, delta numeric.Float) Interval {
	if x.IsEmpty() {
		return x
	}
	return Interval{
		Lo:   numeric.Sub(x.Lo, delta, x.Prec, numeric.Down),
		Hi:   numeric.Add(x.Hi, delta, x.Prec, numeric.Up),
		Prec: x.Prec,
	}
}
