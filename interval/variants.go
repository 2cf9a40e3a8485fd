package interval

import "ariadne/numeric"

// Midradius is the midpoint+radius representation of an interval,
// convenient for Taylor-model scalar-multiplication (spec.md 4.3's
// "scalar mul by interval c" uses midpoint(c) and rad(c) directly).
type Midradius struct {
	Mid, Rad numeric.Float
	Prec     uint
}

// ToMidradius converts x to its midpoint+radius form. The conversion is
// itself outward rounded: Rad is rounded up so that Mid +/- Rad still
// contains x.
func (x Interval) ToMidradius() Midradius {
	if x.IsEmpty() {
		return Midradius{Prec: x.Prec}
	}
	return Midradius{Mid: x.Midpoint(), Rad: x.Radius(), Prec: x.Prec}
}

// ToInterval reconstructs a (possibly slightly wider) bounded interval
// from a midpoint+radius pair.
func (m Midradius) ToInterval() Interval {
	return Interval{
		Lo:   numeric.Sub(m.Mid, m.Rad, m.Prec, numeric.Down),
		Hi:   numeric.Add(m.Mid, m.Rad, m.Prec, numeric.Up),
		Prec: m.Prec,
	}
}

// UpperBound is a one-sided enclosure (x <= Hi with no known lower
// bound), used when only an upper tail of the error is meaningful (a
// Taylor-model remainder bound expressed as a pure upper limit, for
// instance).
type UpperBound struct {
	Hi   numeric.Float
	Prec uint
}

// ToInterval widens an UpperBound into a full interval with Lo = -Inf.
func (u UpperBound) ToInterval() Interval {
	return Interval{Lo: numeric.NegInf(u.Prec), Hi: u.Hi, Prec: u.Prec}
}

// LowerBound is the symmetric one-sided enclosure (x >= Lo).
type LowerBound struct {
	Lo   numeric.Float
	Prec uint
}

// ToInterval widens a LowerBound into a full interval with Hi = +Inf.
func (l LowerBound) ToInterval() Interval {
	return Interval{Lo: l.Lo, Hi: numeric.PosInf(l.Prec), Prec: l.Prec}
}

// Approximate is a plain, non-rigorous float64 pair carried only for
// display, heuristic step-size selection, or plotting — it carries NO
// soundness guarantee and must never be used as an enclosure bound.
type Approximate struct {
	Lo, Hi float64
}

// ToApproximate discards rigor and keeps only float64 display bounds.
func (x Interval) ToApproximate() Approximate {
	return Approximate{Lo: x.Lo.Float64(), Hi: x.Hi.Float64()}
}
