package taylormodel

import (
	"ariadne/interval"
	"ariadne/numeric"
)

// UnitBox returns [-1,1]^n at the given precision — the implicit domain
// D every Model is defined over (spec.md 3).
func UnitBox(n int, prec uint) interval.Box {
	b := make(interval.Box, n)
	unit := interval.FromFloat64(-1, 1, prec)
	for i := range b {
		b[i] = unit
	}
	return b
}

// Range returns a rigorous enclosure of {m(x) : x in dom}, dom defaulting
// to the unit box when nil. Every monomial x^a is bounded via repeated
// interval multiplication (each factor known to lie in dom[j]), so the
// evaluation itself never leaves the outward-rounded regime, and the
// model's own error bound e is folded in symmetrically at the end.
func (m *Model) Range(dom interval.Box) interval.Interval {
	if dom == nil {
		dom = UnitBox(m.Vars, m.Prec)
	}
	prec := m.Prec
	sum := interval.FromFloat64(0, 0, prec)
	for _, term := range m.Poly.Terms() {
		monomial := interval.Point(numeric.FromFloat64(1, prec))
		for j := 0; j < m.Vars; j++ {
			e := term.Index.At(j)
			for k := 0; k < e; k++ {
				monomial = interval.Mul(monomial, dom[j], prec)
			}
		}
		scaled := interval.Mul(interval.Point(term.Coeff), monomial, prec)
		sum = interval.Add(sum, scaled, prec)
	}
	errIv := interval.MustNew(m.Err.Neg(), m.Err)
	return interval.Add(sum, errIv, prec)
}

// BoundingBox is Range with the default unit-box domain, the operation
// Enclosure.bounding_box() delegates to (spec.md 4.7).
func (m *Model) BoundingBox() interval.Interval {
	return m.Range(nil)
}

// Evaluate returns the point estimate m(x) ignoring the error bound —
// useful for plotting/heuristics, never for a soundness-critical bound.
func (m *Model) Evaluate(x []numeric.Float) numeric.Float {
	prec := m.Prec
	sum := numeric.FromFloat64(0, prec)
	for _, term := range m.Poly.Terms() {
		val := numeric.FromFloat64(1, prec)
		for j := 0; j < m.Vars; j++ {
			for k := 0; k < term.Index.At(j); k++ {
				val = numeric.Mul(val, x[j], prec, numeric.Near)
			}
		}
		sum = numeric.Add(sum, numeric.Mul(term.Coeff, val, prec, numeric.Near), prec, numeric.Near)
	}
	return sum
}
