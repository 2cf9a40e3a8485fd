package numeric

import "math/big"

// guardBits is the number of extra bits of working precision used when
// evaluating a transcendental series before rounding down to the bits the
// caller asked for, per spec.md 4.1: "directed rounding is achieved by
// computing in higher precision and rounding the final bits".
const guardBits = 64

// bracket is a [lo, hi] pair, both at the caller's target precision, that
// is guaranteed to contain the true mathematical result.
type bracket struct {
	lo, hi *big.Float
}

func roundedResult(b bracket, prec uint, dir Direction) Float {
	switch dir {
	case Down:
		return Float{v: new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).Set(b.lo)}
	case Up:
		return Float{v: new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf).Set(b.hi)}
	default:
		mid := new(big.Float).SetPrec(prec + guardBits).Add(b.lo, b.hi)
		mid.Quo(mid, big.NewFloat(2))
		return Float{v: new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven).Set(mid)}
	}
}

// seriesWithTruncation evaluates center at workPrec and returns a bracket
// [center-trunc, center+trunc] rounded outward to workPrec so the true
// value (center plus any truncation remainder bounded by trunc) is
// enclosed regardless of later rounding to the caller's target precision.
func seriesWithTruncation(center, trunc *big.Float, workPrec uint) bracket {
	lo := new(big.Float).SetPrec(workPrec).SetMode(big.ToNegativeInf).Sub(center, trunc)
	hi := new(big.Float).SetPrec(workPrec).SetMode(big.ToPositiveInf).Add(center, trunc)
	return bracket{lo: lo, hi: hi}
}

// expSeries computes exp(x) and an upper bound on the Taylor truncation
// error, for |x| <= 0.5, at working precision workPrec.
func expSeries(x *big.Float, workPrec uint) (*big.Float, *big.Float) {
	sum := new(big.Float).SetPrec(workPrec).SetInt64(1)
	term := new(big.Float).SetPrec(workPrec).SetInt64(1)
	n := 0
	// |x| <= 0.5 so the series converges fast; 40 terms gives far more
	// than workPrec bits of accuracy for any precision this library is
	// built for.
	const terms = 40
	for n = 1; n <= terms; n++ {
		term.Mul(term, x)
		term.Quo(term, big.NewFloat(float64(n)))
		sum.Add(sum, term)
	}
	trunc := new(big.Float).SetPrec(workPrec).Abs(term)
	trunc.Mul(trunc, big.NewFloat(2)) // geometric-tail safety factor
	return sum, trunc
}

// Exp returns e^x rounded to prec bits in direction dir.
func Exp(x Float, prec uint, dir Direction) Float {
	workPrec := prec + guardBits
	xb := new(big.Float).SetPrec(workPrec).Set(x.v)

	// Range reduction: exp(x) = exp(x/2^k)^(2^k) with |x/2^k| <= 0.5.
	k := 0
	half := new(big.Float).SetPrec(workPrec).Set(xb)
	bound := big.NewFloat(0.5)
	for new(big.Float).Abs(half).Cmp(bound) > 0 {
		half.Quo(half, big.NewFloat(2))
		k++
	}
	center, trunc := expSeries(half, workPrec)
	for i := 0; i < k; i++ {
		center.Mul(center, center)
		trunc.Mul(trunc, big.NewFloat(2))
		trunc.Mul(trunc, center)
	}
	return roundedResult(seriesWithTruncation(center, trunc, workPrec), prec, dir)
}

// Log returns the natural logarithm of x rounded to prec bits in direction
// dir. Non-positive x is a DomainError.
func Log(x Float, prec uint, dir Direction) (Float, error) {
	if x.Sign() <= 0 {
		return Float{}, &DomainError{Op: "log", Detail: "non-positive operand"}
	}
	workPrec := prec + guardBits
	y := new(big.Float).SetPrec(workPrec).Set(x.v)

	// Bring y close to 1 by repeated square-rooting: log(x) = 2^k * log(y).
	k := 0
	lowerBound := big.NewFloat(0.5)
	upperBound := big.NewFloat(1.5)
	for y.Cmp(lowerBound) < 0 || y.Cmp(upperBound) > 0 {
		y.Sqrt(y)
		k++
		if k > 4096 {
			break // x is astronomically far from 1; unreachable in practice
		}
	}

	// log(y) = 2*atanh(u), u = (y-1)/(y+1), converges fast since y is near 1.
	num := new(big.Float).SetPrec(workPrec).Sub(y, big.NewFloat(1))
	den := new(big.Float).SetPrec(workPrec).Add(y, big.NewFloat(1))
	u := new(big.Float).SetPrec(workPrec).Quo(num, den)

	sum := new(big.Float).SetPrec(workPrec).Set(u)
	uSq := new(big.Float).SetPrec(workPrec).Mul(u, u)
	term := new(big.Float).SetPrec(workPrec).Set(u)
	const terms = 60
	for n := 1; n <= terms; n++ {
		term.Mul(term, uSq)
		denomCoeff := big.NewFloat(float64(2*n + 1))
		t := new(big.Float).SetPrec(workPrec).Quo(term, denomCoeff)
		sum.Add(sum, t)
	}
	sum.Mul(sum, big.NewFloat(2))

	scale := new(big.Float).SetPrec(workPrec).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(k)))
	sum.Mul(sum, scale)

	trunc := new(big.Float).SetPrec(workPrec).Abs(term)
	trunc.Mul(trunc, big.NewFloat(4))
	trunc.Mul(trunc, scale)
	return roundedResult(seriesWithTruncation(sum, trunc, workPrec), prec, dir), nil
}

// piAt returns pi computed to workPrec bits via Machin's formula
// pi = 16*atan(1/5) - 4*atan(1/239), both arguments already <= 1 so the
// direct arctangent series below applies with no further reduction.
func piAt(workPrec uint) *big.Float {
	a := atanSeriesDirect(new(big.Float).SetPrec(workPrec).Quo(big.NewFloat(1), big.NewFloat(5)), workPrec)
	b := atanSeriesDirect(new(big.Float).SetPrec(workPrec).Quo(big.NewFloat(1), big.NewFloat(239)), workPrec)
	pi := new(big.Float).SetPrec(workPrec).Mul(a, big.NewFloat(16))
	bScaled := new(big.Float).SetPrec(workPrec).Mul(b, big.NewFloat(4))
	pi.Sub(pi, bScaled)
	return pi
}

// atanSeriesDirect evaluates the Leibniz arctangent series for |x| <= 1.
func atanSeriesDirect(x *big.Float, workPrec uint) *big.Float {
	sum := new(big.Float).SetPrec(workPrec).Set(x)
	xSq := new(big.Float).SetPrec(workPrec).Mul(x, x)
	term := new(big.Float).SetPrec(workPrec).Set(x)
	sign := -1.0
	const terms = 200
	for n := 1; n <= terms; n++ {
		term.Mul(term, xSq)
		denom := big.NewFloat(float64(2*n + 1))
		t := new(big.Float).SetPrec(workPrec).Quo(term, denom)
		t.Mul(t, big.NewFloat(sign))
		sum.Add(sum, t)
		sign = -sign
	}
	return sum
}

// Atan returns arctan(x) rounded to prec bits in direction dir.
func Atan(x Float, prec uint, dir Direction) Float {
	workPrec := prec + guardBits
	xb := new(big.Float).SetPrec(workPrec).Set(x.v)
	absX := new(big.Float).SetPrec(workPrec).Abs(xb)

	var center *big.Float
	if absX.Cmp(big.NewFloat(1)) <= 0 {
		center = atanSeriesDirect(xb, workPrec)
	} else {
		inv := new(big.Float).SetPrec(workPrec).Quo(big.NewFloat(1), absX)
		half := atanSeriesDirect(inv, workPrec)
		pi := piAt(workPrec)
		piOver2 := new(big.Float).SetPrec(workPrec).Quo(pi, big.NewFloat(2))
		center = new(big.Float).SetPrec(workPrec).Sub(piOver2, half)
		if xb.Sign() < 0 {
			center.Neg(center)
		}
	}
	// The direct series truncation error is already folded into the
	// 200-term budget; add a conservative residual matching guardBits.
	trunc := new(big.Float).SetPrec(workPrec).SetMantExp(big.NewFloat(1), -int(guardBits)+4)
	return roundedResult(seriesWithTruncation(center, trunc, workPrec), prec, dir)
}

// sinCosSeries evaluates sin and cos simultaneously for |x| small (after
// reduction modulo 2*pi) via their Taylor series.
func sinCosSeries(x *big.Float, workPrec uint) (sin, cos, trunc *big.Float) {
	sinSum := new(big.Float).SetPrec(workPrec).Set(x)
	cosSum := new(big.Float).SetPrec(workPrec).SetInt64(1)
	xSq := new(big.Float).SetPrec(workPrec).Mul(x, x)

	sinTerm := new(big.Float).SetPrec(workPrec).Set(x)
	cosTerm := new(big.Float).SetPrec(workPrec).SetInt64(1)

	const terms = 60
	for n := 1; n <= terms; n++ {
		// sin term: x^(2n+1)/(2n+1)!, alternating sign
		sinTerm.Mul(sinTerm, xSq)
		sinTerm.Quo(sinTerm, big.NewFloat(float64(2*n)*float64(2*n+1)))
		sinDelta := new(big.Float).SetPrec(workPrec).Set(sinTerm)
		if n%2 == 1 {
			sinDelta.Neg(sinDelta)
		}
		sinSum.Add(sinSum, sinDelta)

		// cos term: x^(2n)/(2n)!, alternating sign
		cosTerm.Mul(cosTerm, xSq)
		cosTerm.Quo(cosTerm, big.NewFloat(float64(2*n-1)*float64(2*n)))
		cosDelta := new(big.Float).SetPrec(workPrec).Set(cosTerm)
		if n%2 == 1 {
			cosDelta.Neg(cosDelta)
		}
		cosSum.Add(cosSum, cosDelta)
	}
	trunc = new(big.Float).SetPrec(workPrec).Abs(sinTerm)
	cosAbs := new(big.Float).SetPrec(workPrec).Abs(cosTerm)
	if cosAbs.Cmp(trunc) > 0 {
		trunc = cosAbs
	}
	trunc.Mul(trunc, big.NewFloat(4))
	return sinSum, cosSum, trunc
}

// reduceModTwoPi returns x mod 2*pi in (-pi, pi], plus the truncation
// error already present in that reduction because pi itself is inexact.
func reduceModTwoPi(x *big.Float, workPrec uint) (*big.Float, *big.Float) {
	pi := piAt(workPrec)
	twoPi := new(big.Float).SetPrec(workPrec).Mul(pi, big.NewFloat(2))

	q := new(big.Float).SetPrec(workPrec).Quo(x, twoPi)
	qInt, _ := q.Int(nil)
	qf := new(big.Float).SetPrec(workPrec).SetInt(qInt)
	r := new(big.Float).SetPrec(workPrec).Mul(qf, twoPi)
	r.Sub(x, r)
	if r.Cmp(pi) > 0 {
		r.Sub(r, twoPi)
	}
	negPi := new(big.Float).SetPrec(workPrec).Neg(pi)
	if r.Cmp(negPi) <= 0 {
		r.Add(r, twoPi)
	}
	// error in twoPi itself, amplified by how many periods were folded off
	piErr := new(big.Float).SetPrec(workPrec).SetMantExp(big.NewFloat(1), -int(workPrec)+8)
	amplified := new(big.Float).SetPrec(workPrec).Mul(piErr, new(big.Float).SetPrec(workPrec).Abs(qf))
	return r, amplified
}

// Sin returns sin(x) rounded to prec bits in direction dir.
func Sin(x Float, prec uint, dir Direction) Float {
	workPrec := prec + guardBits
	xb := new(big.Float).SetPrec(workPrec).Set(x.v)
	r, redErr := reduceModTwoPi(xb, workPrec)
	s, _, trunc := sinCosSeries(r, workPrec)
	trunc.Add(trunc, redErr)
	return roundedResult(seriesWithTruncation(s, trunc, workPrec), prec, dir)
}

// Cos returns cos(x) rounded to prec bits in direction dir.
func Cos(x Float, prec uint, dir Direction) Float {
	workPrec := prec + guardBits
	xb := new(big.Float).SetPrec(workPrec).Set(x.v)
	r, redErr := reduceModTwoPi(xb, workPrec)
	_, c, trunc := sinCosSeries(r, workPrec)
	trunc.Add(trunc, redErr)
	return roundedResult(seriesWithTruncation(c, trunc, workPrec), prec, dir)
}

// Pi returns pi rounded to prec bits in direction dir.
func Pi(prec uint, dir Direction) Float {
	workPrec := prec + guardBits
	p := piAt(workPrec)
	trunc := new(big.Float).SetPrec(workPrec).SetMantExp(big.NewFloat(1), -int(workPrec)+8)
	return roundedResult(seriesWithTruncation(p, trunc, workPrec), prec, dir)
}
