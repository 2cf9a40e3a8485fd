package differential

import "ariadne/numeric"

// FloatAlgebra implements Algebra[numeric.Float] at a fixed working
// precision. Differential is a *formal* series operator (spec.md 4.2:
// "this is sound truncation, not rounding") so its internal coefficient
// arithmetic rounds Near — any outward/error-tracking rigor belongs to
// the caller (taylormodel wraps a Differential-shaped computation with
// an explicit error bound).
type FloatAlgebra struct {
	Prec uint
}

func (a FloatAlgebra) Add(x, y numeric.Float) numeric.Float {
	return numeric.Add(x, y, a.Prec, numeric.Near)
}

func (a FloatAlgebra) Sub(x, y numeric.Float) numeric.Float {
	return numeric.Sub(x, y, a.Prec, numeric.Near)
}

func (a FloatAlgebra) Mul(x, y numeric.Float) numeric.Float {
	return numeric.Mul(x, y, a.Prec, numeric.Near)
}

func (a FloatAlgebra) Neg(x numeric.Float) numeric.Float {
	return x.Neg()
}

func (a FloatAlgebra) Zero() numeric.Float {
	return numeric.FromFloat64(0, a.Prec)
}

func (a FloatAlgebra) One() numeric.Float {
	return numeric.FromFloat64(1, a.Prec)
}

func (a FloatAlgebra) IsZero(x numeric.Float) bool {
	return x.IsZero()
}

func (a FloatAlgebra) DivInt(x numeric.Float, n int) numeric.Float {
	d, err := numeric.Div(x, numeric.FromInt64(int64(n), a.Prec), a.Prec, numeric.Near)
	if err != nil {
		// n is always a caller-supplied positive antiderivative exponent,
		// never zero; this branch is unreachable in practice.
		return x
	}
	return d
}
