package taylormodel

import "ariadne/numeric"

// Split bisects m along variable k, returning two models over the same
// implicit [-1,1]^n domain whose union over-approximates m: each half
// reparametrizes variable k by an affine map from the full range onto
// one half, via Compose, so the construction inherits Compose's own
// error-propagation bound rather than introducing a new one.
func Split(m *Model, k int) (lower, upper *Model) {
	half := numeric.FromFloat64(0.5, m.Prec)
	negHalf := numeric.FromFloat64(-0.5, m.Prec)

	g := make([]*Model, m.Vars)
	for j := 0; j < m.Vars; j++ {
		g[j] = Identity(m.Vars, m.MaxDegree, j, m.Prec)
	}

	gLower := append([]*Model(nil), g...)
	gLower[k] = affineOf(half, negHalf, m, k)
	lower = Compose(m, gLower)

	gUpper := append([]*Model(nil), g...)
	gUpper[k] = affineOf(half, half, m, k)
	upper = Compose(m, gUpper)
	return lower, upper
}

// affineOf builds the model 0.5*x_k + offset, over the same space as m,
// used as the k-th substitution in Split.
func affineOf(scale, offset numeric.Float, m *Model, k int) *Model {
	out := FromConstant(m.Vars, m.MaxDegree, offset, m.Prec)
	scaled := scaleExact(Identity(m.Vars, m.MaxDegree, k, m.Prec), scale)
	return Add(out, scaled)
}
