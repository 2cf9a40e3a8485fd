// Package taylormodel implements the L2 Taylor Model: a polynomial over
// the normalized box [-1,1]^n plus a scalar error bound, closed under
// the algebra of spec.md 3/4.3.
package taylormodel

import (
	"fmt"

	"ariadne/numeric"
	"ariadne/polynomial"
)

// Model is the triple (p, e, D) of spec.md 3, with D left implicit as
// [-1,1]^n (see SPEC_FULL.md's "unit box vs shifted domain" decision:
// any real-world box is reached through an affine function.Patch
// composed in front, never by storing a different D here).
type Model struct {
	Vars      int
	MaxDegree int // convolution/expansion cap; excess terms move into Err
	Prec      uint
	Poly      *polynomial.Expansion[numeric.Float]
	Err       numeric.Float // >= 0 always
}

// InvariantError reports a broken Taylor-model invariant (negative error
// bound, or similar), surfaced as a DomainError-shaped failure.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("taylormodel: invariant violated: %s", e.Detail)
}

// Zero returns the zero model in `vars` variables.
func Zero(vars, maxDegree int, prec uint) *Model {
	return &Model{
		Vars:      vars,
		MaxDegree: maxDegree,
		Prec:      prec,
		Poly:      polynomial.NewExpansion[numeric.Float](4),
		Err:       numeric.FromFloat64(0, prec),
	}
}

// FromConstant returns the model representing the constant c exactly
// (zero error).
func FromConstant(vars, maxDegree int, c numeric.Float, prec uint) *Model {
	m := Zero(vars, maxDegree, prec)
	if !c.IsZero() {
		m.Poly.Append(polynomial.Zero(vars), c)
	}
	return m
}

// Identity returns the model representing the coordinate projection x_j
// exactly (zero error) — the seed for Picard iteration's phi^(0).
func Identity(vars, maxDegree int, j int, prec uint) *Model {
	m := Zero(vars, maxDegree, prec)
	m.Poly.Append(polynomial.Zero(vars).Increment(j), numeric.FromFloat64(1, prec))
	return m
}

// WithError returns a copy of m with error bound set to e. e < 0 is
// rejected: the error bound invariant (e >= 0 always) is load-bearing
// for every downstream soundness argument.
func (m *Model) WithError(e numeric.Float) (*Model, error) {
	if e.Sign() < 0 {
		return nil, &InvariantError{Detail: "negative error bound"}
	}
	cp := m.Clone()
	cp.Err = e
	return cp, nil
}

// Clone returns an independent copy.
func (m *Model) Clone() *Model {
	return &Model{Vars: m.Vars, MaxDegree: m.MaxDegree, Prec: m.Prec, Poly: m.Poly.Clone(), Err: m.Err}
}

func (m *Model) canonicalize() {
	m.Poly.Canonicalize(
		func(a, b numeric.Float) numeric.Float { return numeric.Add(a, b, m.Prec, numeric.Near) },
		func(x numeric.Float) bool { return x.IsZero() },
	)
}

// epsUlp is the working-precision unit in the last place, used as a
// uniform per-operation round-off bound (the "+ round-off" entries of
// spec.md 4.3's error-propagation table).
func epsUlp(prec uint) numeric.Float {
	one := numeric.FromFloat64(1, prec+8)
	two := numeric.FromFloat64(2, prec+8)
	eps := one
	for i := uint(0); i < prec; i++ {
		var err error
		eps, err = numeric.Div(eps, two, prec+8, numeric.Down)
		if err != nil {
			break
		}
	}
	return eps
}

// Norm returns an outward-rounded upper bound on sup_{x in [-1,1]^n}
// |p(x)|, using sum(|coeff|) since every monomial is bounded by 1 in
// absolute value on the unit box.
func (m *Model) Norm() numeric.Float {
	sum := numeric.FromFloat64(0, m.Prec)
	for _, t := range m.Poly.Terms() {
		sum = numeric.Add(sum, t.Coeff.Abs(), m.Prec, numeric.Up)
	}
	return sum
}

func (m *Model) String() string {
	return fmt.Sprintf("TaylorModel{vars=%d terms=%d err=%s}", m.Vars, m.Poly.Len(), m.Err)
}
