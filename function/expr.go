package function

import (
	"ariadne/differential"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// ExprKind tags the closed set of symbolic-expression node variants
// (spec.md 9: "Internal polymorphism that is really a closed set of
// cases ... becomes a tagged union").
type ExprKind int

const (
	ExprConst ExprKind = iota
	ExprVar
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprNeg
	ExprSin
	ExprCos
	ExprExp
	ExprLog
	ExprAtan
)

// Expr is a node in a scalar symbolic-expression tree: one output
// component of a Symbolic Function variant. Children are owned
// (never shared across trees), so composition is a DAG only at the
// Function level, never a cycle, per spec.md's "cyclic references"
// note.
type Expr struct {
	kind     ExprKind
	constVal numeric.Float
	varIndex int
	a, b     *Expr
}

func Const(v numeric.Float) *Expr { return &Expr{kind: ExprConst, constVal: v} }
func Var(i int) *Expr             { return &Expr{kind: ExprVar, varIndex: i} }
func Add(a, b *Expr) *Expr        { return &Expr{kind: ExprAdd, a: a, b: b} }
func Sub(a, b *Expr) *Expr        { return &Expr{kind: ExprSub, a: a, b: b} }
func Mul(a, b *Expr) *Expr        { return &Expr{kind: ExprMul, a: a, b: b} }
func Div(a, b *Expr) *Expr        { return &Expr{kind: ExprDiv, a: a, b: b} }
func NegExpr(a *Expr) *Expr       { return &Expr{kind: ExprNeg, a: a} }
func Sin(a *Expr) *Expr           { return &Expr{kind: ExprSin, a: a} }
func Cos(a *Expr) *Expr           { return &Expr{kind: ExprCos, a: a} }
func Exp(a *Expr) *Expr           { return &Expr{kind: ExprExp, a: a} }
func Log(a *Expr) *Expr           { return &Expr{kind: ExprLog, a: a} }
func Atan(a *Expr) *Expr          { return &Expr{kind: ExprAtan, a: a} }

// EvaluateInterval walks the tree with outward-rounded interval
// arithmetic, the representation the bounder and integrator consume.
func (e *Expr) EvaluateInterval(env interval.Box, prec uint) (interval.Interval, error) {
	switch e.kind {
	case ExprConst:
		return interval.Point(e.constVal), nil
	case ExprVar:
		return env[e.varIndex], nil
	case ExprAdd, ExprSub, ExprMul, ExprDiv:
		av, err := e.a.EvaluateInterval(env, prec)
		if err != nil {
			return interval.Interval{}, err
		}
		bv, err := e.b.EvaluateInterval(env, prec)
		if err != nil {
			return interval.Interval{}, err
		}
		switch e.kind {
		case ExprAdd:
			return interval.Add(av, bv, prec), nil
		case ExprSub:
			return interval.Sub(av, bv, prec), nil
		case ExprMul:
			return interval.Mul(av, bv, prec), nil
		default:
			return interval.Div(av, bv, prec)
		}
	case ExprNeg:
		av, err := e.a.EvaluateInterval(env, prec)
		if err != nil {
			return interval.Interval{}, err
		}
		return interval.Neg(av), nil
	case ExprSin, ExprCos, ExprExp, ExprLog, ExprAtan:
		av, err := e.a.EvaluateInterval(env, prec)
		if err != nil {
			return interval.Interval{}, err
		}
		switch e.kind {
		case ExprSin:
			return interval.Sin(av, prec), nil
		case ExprCos:
			return interval.Cos(av, prec), nil
		case ExprExp:
			return interval.Exp(av, prec), nil
		case ExprLog:
			return interval.Log(av, prec)
		default:
			return interval.Atan(av, prec), nil
		}
	}
	panic("function: unknown expr kind")
}

// EvaluateDifferential walks the tree with Differential[numeric.Float]
// arithmetic, for the series integrator's automatic differentiation
// of f(y(t)) (spec.md 4.6's series method).
func (e *Expr) EvaluateDifferential(env []*differential.Differential[numeric.Float], prec uint) (*differential.Differential[numeric.Float], error) {
	switch e.kind {
	case ExprConst:
		vars, degree := env[0].Vars(), env[0].Degree()
		return differential.Constant(vars, degree, e.constVal, differential.FloatAlgebra{Prec: prec}), nil
	case ExprVar:
		return env[e.varIndex], nil
	case ExprAdd, ExprSub, ExprMul, ExprDiv:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		bv, err := e.b.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		switch e.kind {
		case ExprAdd:
			return differential.Add(av, bv), nil
		case ExprSub:
			return differential.Sub(av, bv), nil
		case ExprMul:
			return differential.Mul(av, bv), nil
		default:
			return divideDifferential(av, bv, prec)
		}
	case ExprNeg:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return av.Neg(), nil
	case ExprSin:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return differential.SinOf(av, prec), nil
	case ExprCos:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return differential.CosOf(av, prec), nil
	case ExprExp:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return differential.ExpOf(av, prec), nil
	case ExprLog:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return differential.LogOf(av, prec)
	case ExprAtan:
		av, err := e.a.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return differential.AtanOf(av, prec), nil
	}
	panic("function: unknown expr kind")
}

// EvaluateModel pushes a vector of Taylor models through the
// expression tree, the operation the Picard integrator needs to form
// f(phi^(k)) at each iteration (spec.md 4.6). +,-,x,neg compose exactly
// through the Model algebra already implemented in taylormodel; the
// non-polynomial ops (div by a non-constant, sin, cos, exp, log, atan)
// have no generic multivariate-power-series composition available here,
// so they fall back to a sound but low-fidelity degree-0 enclosure
// built from the operand's own range (softEvalUnary), which is enough
// for the worked examples (linear and Van der Pol fields never need a
// transcendental model) while still being usable, if coarsely, on
// fields that do.
func (e *Expr) EvaluateModel(env []*taylormodel.Model) (*taylormodel.Model, error) {
	switch e.kind {
	case ExprConst:
		vars, deg, prec := env[0].Vars, env[0].MaxDegree, env[0].Prec
		return taylormodel.FromConstant(vars, deg, e.constVal, prec), nil
	case ExprVar:
		return env[e.varIndex], nil
	case ExprAdd, ExprSub, ExprMul, ExprDiv:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		b, err := e.b.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		switch e.kind {
		case ExprAdd:
			return taylormodel.Add(a, b), nil
		case ExprSub:
			return taylormodel.Sub(a, b), nil
		case ExprMul:
			return taylormodel.Mul(a, b), nil
		default:
			return divideModel(a, b)
		}
	case ExprNeg:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return taylormodel.Neg(a), nil
	case ExprSin:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return softEvalUnary(a, func(x interval.Interval, prec uint) (interval.Interval, error) {
			return interval.Sin(x, prec), nil
		})
	case ExprCos:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return softEvalUnary(a, func(x interval.Interval, prec uint) (interval.Interval, error) {
			return interval.Cos(x, prec), nil
		})
	case ExprExp:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return softEvalUnary(a, func(x interval.Interval, prec uint) (interval.Interval, error) {
			return interval.Exp(x, prec), nil
		})
	case ExprLog:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return softEvalUnary(a, interval.Log)
	case ExprAtan:
		a, err := e.a.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return softEvalUnary(a, func(x interval.Interval, prec uint) (interval.Interval, error) {
			return interval.Atan(x, prec), nil
		})
	}
	panic("function: unknown expr kind")
}

// softEvalUnary bounds op(m) by a degree-0 model centred at the
// midpoint of op applied to m's own range, with error equal to the
// resulting radius.
func softEvalUnary(m *taylormodel.Model, op func(interval.Interval, uint) (interval.Interval, error)) (*taylormodel.Model, error) {
	rng := m.Range(nil)
	result, err := op(rng, m.Prec)
	if err != nil {
		return nil, err
	}
	out := taylormodel.FromConstant(m.Vars, m.MaxDegree, result.Midpoint(), m.Prec)
	return out.WithError(result.Radius())
}

// divideModel handles a/b exactly when b is a zero-error constant
// model (the common case: dividing by a literal), otherwise falls back
// to softEvalUnary-style range bounding of the quotient.
func divideModel(a, b *taylormodel.Model) (*taylormodel.Model, error) {
	if isExactConstant(b) {
		c := b.Poly.Terms()
		var cv numeric.Float
		if len(c) == 0 {
			cv = numeric.FromFloat64(0, b.Prec)
		} else {
			cv = c[0].Coeff
		}
		inv, err := numeric.Div(numeric.FromInt64(1, b.Prec), cv, b.Prec, numeric.Near)
		if err != nil {
			return nil, err
		}
		return taylormodel.ScalarMulInterval(interval.Point(inv), a), nil
	}
	rngA, rngB := a.Range(nil), b.Range(nil)
	q, err := interval.Div(rngA, rngB, a.Prec)
	if err != nil {
		return nil, err
	}
	out := taylormodel.FromConstant(a.Vars, a.MaxDegree, q.Midpoint(), a.Prec)
	return out.WithError(q.Radius())
}

func isExactConstant(m *taylormodel.Model) bool {
	if !m.Err.IsZero() {
		return false
	}
	terms := m.Poly.Terms()
	if len(terms) == 0 {
		return true
	}
	return len(terms) == 1 && terms[0].Index.Degree() == 0
}

// divideDifferential implements a/b = a * (1/b), where 1/b is built as
// log/exp round trip's simpler cousin: reciprocal via LogOf/ExpOf would
// lose precision near b far from 1, so instead it composes the
// geometric series 1/(c+delta) = (1/c) * 1/(1+delta/c) directly.
func divideDifferential(a, b *differential.Differential[numeric.Float], prec uint) (*differential.Differential[numeric.Float], error) {
	c := b.ConstantTerm()
	if c.IsZero() {
		return nil, &numeric.DomainError{Op: "div", Detail: "divisor differential has zero constant term"}
	}
	delta := b.AddScalar(c.Neg())
	invC, err := numeric.Div(numeric.FromInt64(1, prec), c, prec, numeric.Near)
	if err != nil {
		return nil, err
	}
	u := differential.ScalarMul(delta, invC.Neg())
	coeffs := make([]numeric.Float, b.Degree()+1)
	coeffs[0] = numeric.FromInt64(1, prec)
	for k := 1; k <= b.Degree(); k++ {
		coeffs[k] = coeffs[k-1]
	}
	geometric := differential.Compose(coeffs, u)
	reciprocal := differential.ScalarMul(geometric, invC)
	return differential.Mul(a, reciprocal), nil
}
