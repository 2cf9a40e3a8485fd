package differential

import "ariadne/polynomial"

// Differential is an Expansion[X] truncated at a fixed total degree,
// equipped with algebra closed under +,-,x,composition,antiderivative
// (spec.md 3/4.2). Keys beyond Degree are discarded by every op that
// produces a new Differential — this is sound truncation, not rounding.
type Differential[X any] struct {
	vars   int
	degree int
	exp    *polynomial.Expansion[X]
	alg    Algebra[X]
}

// New returns the zero Differential in `vars` variables truncated at
// total degree `degree`.
func New[X any](vars, degree int, alg Algebra[X]) *Differential[X] {
	return &Differential[X]{vars: vars, degree: degree, exp: polynomial.NewExpansion[X](4), alg: alg}
}

// Constant returns the Differential representing the constant c.
func Constant[X any](vars, degree int, c X, alg Algebra[X]) *Differential[X] {
	d := New(vars, degree, alg)
	if !alg.IsZero(c) {
		d.exp.Append(polynomial.Zero(vars), c)
	}
	return d
}

// Variable returns the Differential representing the coordinate
// projection x_j (coefficient 1 on the multi-index e_j).
func Variable[X any](vars, degree, j int, alg Algebra[X]) *Differential[X] {
	d := New(vars, degree, alg)
	d.exp.Append(polynomial.Zero(vars).Increment(j), alg.One())
	return d
}

// Vars returns the number of formal variables.
func (d *Differential[X]) Vars() int { return d.vars }

// Degree returns the truncation degree.
func (d *Differential[X]) Degree() int { return d.degree }

// Coeff returns the coefficient at idx, or the algebra's zero if absent.
// The lookup is a linear scan and does not canonicalize first; if
// duplicate keys are present, the first matching term's coefficient is
// returned.
func (d *Differential[X]) coeff(idx polynomial.MultiIndex) X {
	if v, ok := d.exp.Find(idx); ok {
		return v
	}
	return d.alg.Zero()
}

// ConstantTerm returns the coefficient of the zero multi-index.
func (d *Differential[X]) ConstantTerm() X {
	return d.coeff(polynomial.Zero(d.vars))
}

// Canonicalize merges duplicate keys and drops zero coefficients, the
// invariant every returned Differential maintains.
func (d *Differential[X]) canonicalize() {
	d.exp.Canonicalize(d.alg.Add, d.alg.IsZero)
}

// Clone returns an independent copy.
func (d *Differential[X]) Clone() *Differential[X] {
	return &Differential[X]{vars: d.vars, degree: d.degree, exp: d.exp.Clone(), alg: d.alg}
}

// Terms exposes the canonical term list (call after an operation, which
// always canonicalizes its result).
func (d *Differential[X]) Terms() []polynomial.Term[X] {
	return d.exp.Terms()
}

// Add returns d+e.
func Add[X any](d, e *Differential[X]) *Differential[X] {
	out := New(d.vars, minInt(d.degree, e.degree), d.alg)
	out.exp = polynomial.NewExpansion[X](d.exp.Len() + e.exp.Len())
	for _, t := range d.exp.Terms() {
		if t.Index.Degree() <= out.degree {
			out.exp.Append(t.Index, t.Coeff)
		}
	}
	for _, t := range e.exp.Terms() {
		if t.Index.Degree() <= out.degree {
			out.exp.Append(t.Index, t.Coeff)
		}
	}
	out.canonicalize()
	return out
}

// Sub returns d-e.
func Sub[X any](d, e *Differential[X]) *Differential[X] {
	return Add(d, e.Neg())
}

// Neg returns -d.
func (d *Differential[X]) Neg() *Differential[X] {
	out := New(d.vars, d.degree, d.alg)
	for _, t := range d.exp.Terms() {
		out.exp.Append(t.Index, d.alg.Neg(t.Coeff))
	}
	out.canonicalize()
	return out
}

// AddScalar returns d with c added to its constant term.
func (d *Differential[X]) AddScalar(c X) *Differential[X] {
	out := d.Clone()
	out.exp.Append(polynomial.Zero(d.vars), c)
	out.canonicalize()
	return out
}

// Mul returns d*e, convolving terms and discarding any product whose
// combined degree exceeds min(d.degree, e.degree) (spec.md 4.2).
func Mul[X any](d, e *Differential[X]) *Differential[X] {
	deg := minInt(d.degree, e.degree)
	out := New(d.vars, deg, d.alg)
	dTerms, eTerms := d.exp.Terms(), e.exp.Terms()
	out.exp = polynomial.NewExpansion[X](len(dTerms) * len(eTerms))
	for _, a := range dTerms {
		for _, b := range eTerms {
			combinedDeg := a.Index.Degree() + b.Index.Degree()
			if combinedDeg > deg {
				continue
			}
			idx := polynomial.Add(a.Index, b.Index)
			out.exp.Append(idx, d.alg.Mul(a.Coeff, b.Coeff))
		}
	}
	out.canonicalize()
	return out
}

// AntiderivativeVar returns the formal antiderivative of d with respect
// to variable j: each index's j-th position is incremented and the
// coefficient divided by the new exponent. The truncation degree grows
// by one, since integrating the top-degree terms genuinely produces new
// degree-(d+1) content (spec.md 4.2) — a subsequent Mul against a
// degree-d operand truncates it back down.
func (d *Differential[X]) AntiderivativeVar(j int) *Differential[X] {
	out := &Differential[X]{vars: d.vars, degree: d.degree + 1, exp: polynomial.NewExpansion[X](d.exp.Len()), alg: d.alg}
	for _, t := range d.exp.Terms() {
		newIdx := t.Index.Increment(j)
		coeff := d.alg.DivInt(t.Coeff, newIdx.At(j))
		out.exp.Append(newIdx, coeff)
	}
	out.canonicalize()
	return out
}

// Compose evaluates the univariate power series with coefficients
// gCoeffs (gCoeffs[k] multiplies u^k) at u = f, via Horner's method:
// requires f's constant term to be (approximately) the algebra's zero,
// i.e. a centred differential, since otherwise the truncated result is
// not a sound enclosure of the true composition (spec.md 4.2).
func Compose[X any](gCoeffs []X, f *Differential[X]) *Differential[X] {
	alg := f.alg
	if len(gCoeffs) == 0 {
		return New(f.vars, f.degree, alg)
	}
	result := Constant(f.vars, f.degree, gCoeffs[len(gCoeffs)-1], alg)
	for k := len(gCoeffs) - 2; k >= 0; k-- {
		result = Mul(result, f)
		result = result.AddScalar(gCoeffs[k])
	}
	return result
}

// ScalarMul returns d with every coefficient multiplied by k.
func ScalarMul[X any](d *Differential[X], k X) *Differential[X] {
	out := New(d.vars, d.degree, d.alg)
	for _, t := range d.exp.Terms() {
		out.exp.Append(t.Index, d.alg.Mul(t.Coeff, k))
	}
	out.canonicalize()
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
