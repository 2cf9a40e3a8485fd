package differential

import "ariadne/numeric"

// The symbolic Function variant needs to push sin/cos/exp/log/atan
// through a multivariate Taylor series the same way +,-,x already do.
// None of these are polynomial, so each is expressed as a univariate
// power series centred at the operand's constant term and composed in
// via Compose, which is exactly Horner evaluation of that series.

func factorialFloat(n int, prec uint) numeric.Float {
	f := numeric.FromInt64(1, prec)
	for k := int64(2); k <= int64(n); k++ {
		f = numeric.Mul(f, numeric.FromInt64(k, prec), prec, numeric.Near)
	}
	return f
}

func expCoeffsAt0(degree int, prec uint) []numeric.Float {
	c := make([]numeric.Float, degree+1)
	for k := 0; k <= degree; k++ {
		c[k], _ = numeric.Div(numeric.FromInt64(1, prec), factorialFloat(k, prec), prec, numeric.Near)
	}
	return c
}

func sinCoeffsAt0(degree int, prec uint) []numeric.Float {
	c := make([]numeric.Float, degree+1)
	for k := 0; k <= degree; k++ {
		if k%2 == 0 {
			c[k] = numeric.FromInt64(0, prec)
			continue
		}
		m := k / 2
		v, _ := numeric.Div(numeric.FromInt64(1, prec), factorialFloat(k, prec), prec, numeric.Near)
		if m%2 == 1 {
			v = v.Neg()
		}
		c[k] = v
	}
	return c
}

func cosCoeffsAt0(degree int, prec uint) []numeric.Float {
	c := make([]numeric.Float, degree+1)
	for k := 0; k <= degree; k++ {
		if k%2 == 1 {
			c[k] = numeric.FromInt64(0, prec)
			continue
		}
		m := k / 2
		v, _ := numeric.Div(numeric.FromInt64(1, prec), factorialFloat(k, prec), prec, numeric.Near)
		if m%2 == 1 {
			v = v.Neg()
		}
		c[k] = v
	}
	return c
}

func logOnePlusUCoeffs(degree int, prec uint) []numeric.Float {
	c := make([]numeric.Float, degree+1)
	c[0] = numeric.FromInt64(0, prec)
	for k := 1; k <= degree; k++ {
		v, _ := numeric.Div(numeric.FromInt64(1, prec), numeric.FromInt64(int64(k), prec), prec, numeric.Near)
		if k%2 == 0 {
			v = v.Neg()
		}
		c[k] = v
	}
	return c
}

// atanCoeffsAt returns the Taylor coefficients of atan(c+t) in t, up to
// `degree`, via the reciprocal power series of 1+(c+t)^2 (atan's
// derivative is 1/(1+x^2), a ratio of a constant by a degree-2
// polynomial, which admits the standard recursive reciprocal formula
// b_0 = 1/a_0, b_k = -(1/a_0) * sum_i a_i*b_{k-i}) followed by one
// term-by-term antidifferentiation with the integration constant fixed
// by atan(c) itself.
func atanCoeffsAt(c numeric.Float, degree int, prec uint) []numeric.Float {
	one := numeric.FromInt64(1, prec)
	a0 := numeric.Add(one, numeric.Mul(c, c, prec, numeric.Near), prec, numeric.Near)
	a1 := numeric.Mul(numeric.FromInt64(2, prec), c, prec, numeric.Near)
	a2 := one

	b := make([]numeric.Float, degree+1)
	b[0], _ = numeric.Div(one, a0, prec, numeric.Near)
	for k := 1; k <= degree; k++ {
		sum := numeric.FromInt64(0, prec)
		if k-1 >= 0 {
			sum = numeric.Add(sum, numeric.Mul(a1, b[k-1], prec, numeric.Near), prec, numeric.Near)
		}
		if k-2 >= 0 {
			sum = numeric.Add(sum, numeric.Mul(a2, b[k-2], prec, numeric.Near), prec, numeric.Near)
		}
		q, _ := numeric.Div(sum, a0, prec, numeric.Near)
		b[k] = q.Neg()
	}

	g := make([]numeric.Float, degree+2)
	g[0] = numeric.Atan(c, prec, numeric.Near)
	for k := 1; k <= degree+1; k++ {
		g[k], _ = numeric.Div(b[k-1], numeric.FromInt64(int64(k), prec), prec, numeric.Near)
	}
	if len(g) > degree+1 {
		g = g[:degree+1]
	}
	return g
}

func centered(d *Differential[numeric.Float]) (numeric.Float, *Differential[numeric.Float]) {
	c := d.ConstantTerm()
	return c, d.AddScalar(c.Neg())
}

// SinOf returns sin(d) via the angle-addition identity
// sin(c+delta) = sin(c)*cos(delta) + cos(c)*sin(delta), with cos(delta)
// and sin(delta) composed from their power series at 0 since delta is
// centred (constant term exactly zero).
func SinOf(d *Differential[numeric.Float], prec uint) *Differential[numeric.Float] {
	c, delta := centered(d)
	sc, cc := numeric.Sin(c, prec, numeric.Near), numeric.Cos(c, prec, numeric.Near)
	cosDelta := Compose(cosCoeffsAt0(d.Degree(), prec), delta)
	sinDelta := Compose(sinCoeffsAt0(d.Degree(), prec), delta)
	return Add(ScalarMul(cosDelta, sc), ScalarMul(sinDelta, cc))
}

// CosOf returns cos(d) = cos(c)*cos(delta) - sin(c)*sin(delta).
func CosOf(d *Differential[numeric.Float], prec uint) *Differential[numeric.Float] {
	c, delta := centered(d)
	sc, cc := numeric.Sin(c, prec, numeric.Near), numeric.Cos(c, prec, numeric.Near)
	cosDelta := Compose(cosCoeffsAt0(d.Degree(), prec), delta)
	sinDelta := Compose(sinCoeffsAt0(d.Degree(), prec), delta)
	return Sub(ScalarMul(cosDelta, cc), ScalarMul(sinDelta, sc))
}

// ExpOf returns exp(d) = exp(c)*exp(delta).
func ExpOf(d *Differential[numeric.Float], prec uint) *Differential[numeric.Float] {
	c, delta := centered(d)
	expDelta := Compose(expCoeffsAt0(d.Degree(), prec), delta)
	return ScalarMul(expDelta, numeric.Exp(c, prec, numeric.Near))
}

// LogOf returns log(d) = log(c) + log(1+delta/c), requiring c > 0.
func LogOf(d *Differential[numeric.Float], prec uint) (*Differential[numeric.Float], error) {
	c, delta := centered(d)
	logC, err := numeric.Log(c, prec, numeric.Near)
	if err != nil {
		return nil, err
	}
	invC, err := numeric.Div(numeric.FromInt64(1, prec), c, prec, numeric.Near)
	if err != nil {
		return nil, err
	}
	u := ScalarMul(delta, invC)
	series := Compose(logOnePlusUCoeffs(d.Degree(), prec), u)
	return series.AddScalar(logC), nil
}

// AtanOf returns atan(d), composing the Taylor series of atan centred
// at d's constant term.
func AtanOf(d *Differential[numeric.Float], prec uint) *Differential[numeric.Float] {
	c, delta := centered(d)
	coeffs := atanCoeffsAt(c, d.Degree(), prec)
	return Compose(coeffs, delta)
}
