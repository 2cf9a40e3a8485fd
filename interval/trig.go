package interval

import (
	"math"

	"ariadne/numeric"
)

// powMinus1 returns (-1)^k without float exponentiation.
func powMinus1(k int) int64 {
	if ((k % 2) + 2) % 2 == 0 {
		return 1
	}
	return -1
}

// piInterval returns a rigorous enclosure of pi at precision prec.
func piInterval(prec uint) Interval {
	return Interval{Lo: numeric.Pi(prec, numeric.Down), Hi: numeric.Pi(prec, numeric.Up), Prec: prec}
}

// disjoint reports whether a and b are PROVABLY disjoint using only
// their already-conservative stored bounds; anything not provably
// disjoint is treated as possibly overlapping, which is the safe
// (over-inclusive, never under-inclusive) direction for a case-split.
func disjoint(a, b Interval) bool {
	return a.Hi.Cmp(b.Lo) < 0 || b.Hi.Cmp(a.Lo) < 0
}

// locationOfKPiOver2 returns a rigorous enclosure of pi/2 + k*pi.
func locationOfKPiOver2(k int, prec uint) Interval {
	pi := piInterval(prec)
	half := Interval{Lo: numeric.Div2(pi.Lo, prec), Hi: numeric.Div2(pi.Hi, prec), Prec: prec}
	kf := numeric.FromInt64(int64(k), prec)
	kpi := Mul(Point(kf), pi, prec)
	return Add(half, kpi, prec)
}

// locationOfKPi returns a rigorous enclosure of k*pi.
func locationOfKPi(k int, prec uint) Interval {
	pi := piInterval(prec)
	kf := numeric.FromInt64(int64(k), prec)
	return Mul(Point(kf), pi, prec)
}

// candidateKRange returns an approximate (possibly over-wide, never
// too-narrow) range of k to test for an interval [lo,hi] and a phase
// (0 for cos's k*pi extrema, pi/2 for sin's pi/2+k*pi extrema).
func candidateKRange(lo, hi, phase float64) (int, int) {
	kLo := int(math.Floor((lo-phase)/math.Pi)) - 2
	kHi := int(math.Ceil((hi-phase)/math.Pi)) + 2
	return kLo, kHi
}

// Sin returns a rigorous enclosure of {sin(v) : v in x}, reducing modulo
// 2*pi by case-splitting on where the interval may contain an extremum
// (spec.md 4.1).
func Sin(x Interval, prec uint) Interval {
	if x.IsEmpty() {
		return Empty(prec)
	}
	twoPi := Add(piInterval(prec), piInterval(prec), prec)
	if x.Width().Cmp(twoPi.Lo) >= 0 {
		return FromFloat64(-1, 1, prec)
	}
	lo := numeric.Sin(x.Lo, prec, numeric.Down)
	hi := numeric.Sin(x.Lo, prec, numeric.Up)
	lo = numeric.Min(lo, numeric.Sin(x.Hi, prec, numeric.Down))
	hi = numeric.Max(hi, numeric.Sin(x.Hi, prec, numeric.Up))

	kLo, kHi := candidateKRange(x.Lo.Float64(), x.Hi.Float64(), math.Pi/2)
	for k := kLo; k <= kHi; k++ {
		loc := locationOfKPiOver2(k, prec)
		if disjoint(loc, x) {
			continue
		}
		v := numeric.FromInt64(powMinus1(k), prec)
		lo = numeric.Min(lo, v)
		hi = numeric.Max(hi, v)
	}
	return Interval{Lo: lo, Hi: hi, Prec: prec}
}

// Cos returns a rigorous enclosure of {cos(v) : v in x}.
func Cos(x Interval, prec uint) Interval {
	if x.IsEmpty() {
		return Empty(prec)
	}
	twoPi := Add(piInterval(prec), piInterval(prec), prec)
	if x.Width().Cmp(twoPi.Lo) >= 0 {
		return FromFloat64(-1, 1, prec)
	}
	lo := numeric.Cos(x.Lo, prec, numeric.Down)
	hi := numeric.Cos(x.Lo, prec, numeric.Up)
	lo = numeric.Min(lo, numeric.Cos(x.Hi, prec, numeric.Down))
	hi = numeric.Max(hi, numeric.Cos(x.Hi, prec, numeric.Up))

	kLo, kHi := candidateKRange(x.Lo.Float64(), x.Hi.Float64(), 0)
	for k := kLo; k <= kHi; k++ {
		loc := locationOfKPi(k, prec)
		if disjoint(loc, x) {
			continue
		}
		v := numeric.FromInt64(powMinus1(k), prec)
		lo = numeric.Min(lo, v)
		hi = numeric.Max(hi, v)
	}
	return Interval{Lo: lo, Hi: hi, Prec: prec}
}
