package taylormodel

import "ariadne/numeric"

// Compose returns t(g_1,...,g_n), substituting g[j] for t's j-th
// variable. Each monomial's power is built by repeated multiplication
// with per-variable memoization (the Horner-flavoured evaluation of
// spec.md 4.3's compose row: "error accumulates by chain rule over
// ||g||" falls directly out of repeated Mul's own error propagation).
func Compose(t *Model, g []*Model) *Model {
	if len(g) != t.Vars {
		panic("taylormodel: Compose argument count mismatch")
	}
	outVars := g[0].Vars
	outDeg := g[0].MaxDegree
	for _, gi := range g {
		if gi.MaxDegree < outDeg {
			outDeg = gi.MaxDegree
		}
	}

	// powers[j][k] = g[j]^k, memoized up to the exponent actually used.
	powers := make([]map[int]*Model, len(g))
	for j := range g {
		powers[j] = map[int]*Model{0: FromConstant(outVars, outDeg, numeric.FromFloat64(1, t.Prec), t.Prec)}
	}
	var powerOf func(j, k int) *Model
	powerOf = func(j, k int) *Model {
		if m, ok := powers[j][k]; ok {
			return m
		}
		prev := powerOf(j, k-1)
		m := Mul(prev, g[j])
		powers[j][k] = m
		return m
	}

	result := Zero(outVars, outDeg, t.Prec)
	for _, term := range t.Poly.Terms() {
		monomial := FromConstant(outVars, outDeg, numeric.FromFloat64(1, t.Prec), t.Prec)
		for j := 0; j < t.Vars; j++ {
			e := term.Index.At(j)
			if e == 0 {
				continue
			}
			monomial = Mul(monomial, powerOf(j, e))
		}
		scaled := scaleExact(monomial, term.Coeff)
		result = Add(result, scaled)
	}
	// t(y) = p_t(y) + eta with |eta| <= t.Err, so t(g(s)) encloses
	// p_t(g(s)) + eta regardless of g: the substituted-into model's own
	// error carries through unconditionally.
	result.Err = numeric.Add(result.Err, t.Err, t.Prec, numeric.Up)
	return result
}

// scaleExact multiplies a model by an exact (non-interval) scalar
// coefficient, with no additional uncertainty beyond the usual
// round-off margin — it is Mul against a zero-error constant model.
func scaleExact(m *Model, c numeric.Float) *Model {
	constant := FromConstant(m.Vars, m.MaxDegree, c, m.Prec)
	return Mul(m, constant)
}
