package taylormodel

import (
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/polynomial"
)

func requireSameShape(a, b *Model) {
	if a.Vars != b.Vars {
		panic("taylormodel: operand variable counts differ")
	}
}

// Neg returns -m; the error bound is unaffected (negation is exact).
func Neg(m *Model) *Model {
	out := Zero(m.Vars, m.MaxDegree, m.Prec)
	for _, t := range m.Poly.Terms() {
		out.Poly.Append(t.Index, t.Coeff.Neg())
	}
	out.Err = m.Err
	out.canonicalize()
	return out
}

// Add returns t1+t2 with error e1+e2 plus an outward round-off margin,
// per spec.md 4.3's add row.
func Add(t1, t2 *Model) *Model {
	requireSameShape(t1, t2)
	prec := t1.Prec
	out := Zero(t1.Vars, maxInt(t1.MaxDegree, t2.MaxDegree), prec)
	out.Poly = polynomial.NewExpansion[numeric.Float](t1.Poly.Len() + t2.Poly.Len())
	for _, t := range t1.Poly.Terms() {
		out.Poly.Append(t.Index, t.Coeff)
	}
	for _, t := range t2.Poly.Terms() {
		out.Poly.Append(t.Index, t.Coeff)
	}
	out.canonicalize()

	e := numeric.Add(t1.Err, t2.Err, prec, numeric.Up)
	roundoff := numeric.Mul(epsUlp(prec), out.Norm(), prec, numeric.Up)
	out.Err = numeric.Add(e, roundoff, prec, numeric.Up)
	return out
}

// Sub returns t1-t2.
func Sub(t1, t2 *Model) *Model {
	return Add(t1, Neg(t2))
}

// Mul returns t1*t2: polynomials convolve and are truncated at
// min(t1.MaxDegree, t2.MaxDegree); the dropped terms' magnitude becomes
// the "truncation tail" term of spec.md 4.3's mul row, alongside the
// cross-error terms e1*||p2|| + e2*||p1|| + e1*e2.
func Mul(t1, t2 *Model) *Model {
	requireSameShape(t1, t2)
	prec := t1.Prec
	deg := minInt(t1.MaxDegree, t2.MaxDegree)
	out := Zero(t1.Vars, deg, prec)
	d1, d2 := t1.Poly.Terms(), t2.Poly.Terms()
	out.Poly = polynomial.NewExpansion[numeric.Float](len(d1) * len(d2))

	tail := numeric.FromFloat64(0, prec)
	for _, a := range d1 {
		for _, b := range d2 {
			idx := polynomial.Add(a.Index, b.Index)
			c := numeric.Mul(a.Coeff, b.Coeff, prec, numeric.Near)
			if idx.Degree() > deg {
				tail = numeric.Add(tail, c.Abs(), prec, numeric.Up)
				continue
			}
			out.Poly.Append(idx, c)
		}
	}
	out.canonicalize()

	norm1, norm2 := t1.Norm(), t2.Norm()
	e := numeric.Mul(t1.Err, norm2, prec, numeric.Up)
	e = numeric.Add(e, numeric.Mul(t2.Err, norm1, prec, numeric.Up), prec, numeric.Up)
	e = numeric.Add(e, numeric.Mul(t1.Err, t2.Err, prec, numeric.Up), prec, numeric.Up)
	e = numeric.Add(e, tail, prec, numeric.Up)
	roundoff := numeric.Mul(epsUlp(prec), out.Norm(), prec, numeric.Up)
	out.Err = numeric.Add(e, roundoff, prec, numeric.Up)
	return out
}

// ScalarMulInterval returns c*t where c is an interval coefficient
// (spec.md 4.3: midpoint(c)*p with error rad(c)*||p|| + |midpoint(c)|*e).
func ScalarMulInterval(c interval.Interval, t *Model) *Model {
	prec := t.Prec
	mr := c.ToMidradius()
	out := Zero(t.Vars, t.MaxDegree, prec)
	for _, term := range t.Poly.Terms() {
		out.Poly.Append(term.Index, numeric.Mul(mr.Mid, term.Coeff, prec, numeric.Near))
	}
	out.canonicalize()

	norm := t.Norm()
	e := numeric.Mul(mr.Rad, norm, prec, numeric.Up)
	e = numeric.Add(e, numeric.Mul(mr.Mid.Abs(), t.Err, prec, numeric.Up), prec, numeric.Up)
	out.Err = e
	return out
}

// Sweep moves every coefficient whose absolute value is below tau
// (except the constant term, per spec.md 3's invariant) into the error
// bound.
func Sweep(t *Model, tau numeric.Float) *Model {
	prec := t.Prec
	out := Zero(t.Vars, t.MaxDegree, prec)
	dropped := numeric.FromFloat64(0, prec)
	zeroIdx := polynomial.Zero(t.Vars)
	for _, term := range t.Poly.Terms() {
		if !term.Index.Equal(zeroIdx) && term.Coeff.Abs().Cmp(tau) < 0 {
			dropped = numeric.Add(dropped, term.Coeff.Abs(), prec, numeric.Up)
			continue
		}
		out.Poly.Append(term.Index, term.Coeff)
	}
	out.canonicalize()
	out.Err = numeric.Add(t.Err, dropped, prec, numeric.Up)
	return out
}

// AntiderivativeVar returns the formal antiderivative with respect to
// variable j, bounding the new error by e*width(D_j) = e*2 (the unit
// box's side width), a box-rule bound per spec.md 4.3.
func AntiderivativeVar(t *Model, j int) *Model {
	prec := t.Prec
	out := Zero(t.Vars, t.MaxDegree+1, prec)
	for _, term := range t.Poly.Terms() {
		newIdx := term.Index.Increment(j)
		c, err := numeric.Div(term.Coeff, numeric.FromInt64(int64(newIdx.At(j)), prec), prec, numeric.Near)
		if err != nil {
			continue
		}
		out.Poly.Append(newIdx, c)
	}
	out.canonicalize()
	out.Err = numeric.Mul(t.Err, numeric.FromFloat64(2, prec), prec, numeric.Up)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
