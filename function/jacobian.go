package function

import (
	"fmt"

	"ariadne/interval"
	"ariadne/numeric"
)

// jet is a value-plus-gradient pair over an interval box: val encloses
// the expression's range, grad[k] encloses its partial derivative with
// respect to input k. Propagating jets through +,-,*,/,sin,cos,exp,log,
// atan via their ordinary chain rules is standard forward-mode
// automatic differentiation; doing it with interval arithmetic at every
// step keeps the whole computation a sound (if occasionally loose,
// thanks to the usual dependency-effect over-approximation of interval
// arithmetic) enclosure of the true Jacobian.
type jet struct {
	val  interval.Interval
	grad []interval.Interval
}

func constJet(v numeric.Float, n int, prec uint) jet {
	zero := interval.Point(numeric.FromInt64(0, prec))
	grad := make([]interval.Interval, n)
	for i := range grad {
		grad[i] = zero
	}
	return jet{val: interval.Point(v), grad: grad}
}

func addJet(a, b jet, prec uint) jet {
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		grad[i] = interval.Add(a.grad[i], b.grad[i], prec)
	}
	return jet{val: interval.Add(a.val, b.val, prec), grad: grad}
}

func subJet(a, b jet, prec uint) jet {
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		grad[i] = interval.Sub(a.grad[i], b.grad[i], prec)
	}
	return jet{val: interval.Sub(a.val, b.val, prec), grad: grad}
}

// mulJet uses the product rule: d(ab) = a*db + b*da.
func mulJet(a, b jet, prec uint) jet {
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		grad[i] = interval.Add(interval.Mul(a.val, b.grad[i], prec), interval.Mul(b.val, a.grad[i], prec), prec)
	}
	return jet{val: interval.Mul(a.val, b.val, prec), grad: grad}
}

// divJet uses the quotient rule: d(a/b) = (da*b - a*db) / b^2.
func divJet(a, b jet, prec uint) (jet, error) {
	quotient, err := interval.Div(a.val, b.val, prec)
	if err != nil {
		return jet{}, err
	}
	bSq := interval.Mul(b.val, b.val, prec)
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		num := interval.Sub(interval.Mul(a.grad[i], b.val, prec), interval.Mul(a.val, b.grad[i], prec), prec)
		g, err := interval.Div(num, bSq, prec)
		if err != nil {
			return jet{}, err
		}
		grad[i] = g
	}
	return jet{val: quotient, grad: grad}, nil
}

func negJet(a jet, prec uint) jet {
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		grad[i] = interval.Neg(a.grad[i])
	}
	return jet{val: interval.Neg(a.val), grad: grad}
}

func chainJet(a jet, fa, dfa interval.Interval, prec uint) jet {
	grad := make([]interval.Interval, len(a.grad))
	for i := range grad {
		grad[i] = interval.Mul(dfa, a.grad[i], prec)
	}
	return jet{val: fa, grad: grad}
}

func sinJet(a jet, prec uint) jet {
	return chainJet(a, interval.Sin(a.val, prec), interval.Cos(a.val, prec), prec)
}

func cosJet(a jet, prec uint) jet {
	return chainJet(a, interval.Cos(a.val, prec), interval.Neg(interval.Sin(a.val, prec)), prec)
}

func expJet(a jet, prec uint) jet {
	e := interval.Exp(a.val, prec)
	return chainJet(a, e, e, prec)
}

func logJet(a jet, prec uint) (jet, error) {
	fa, err := interval.Log(a.val, prec)
	if err != nil {
		return jet{}, err
	}
	dfa, err := interval.Div(interval.Point(numeric.FromInt64(1, prec)), a.val, prec)
	if err != nil {
		return jet{}, err
	}
	return chainJet(a, fa, dfa, prec), nil
}

func atanJet(a jet, prec uint) jet {
	fa := interval.Atan(a.val, prec)
	denom := interval.Add(interval.Point(numeric.FromInt64(1, prec)), interval.Mul(a.val, a.val, prec), prec)
	dfa, err := interval.Div(interval.Point(numeric.FromInt64(1, prec)), denom, prec)
	if err != nil {
		// denom = 1+x^2 can never straddle zero for a real x.
		panic(fmt.Sprintf("function: unreachable atan derivative domain error: %v", err))
	}
	return chainJet(a, fa, dfa, prec)
}

func (e *Expr) evalJet(env []jet, prec uint) (jet, error) {
	n := len(env[0].grad)
	switch e.kind {
	case ExprConst:
		return constJet(e.constVal, n, prec), nil
	case ExprVar:
		return env[e.varIndex], nil
	case ExprAdd:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		b, err := e.b.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return addJet(a, b, prec), nil
	case ExprSub:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		b, err := e.b.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return subJet(a, b, prec), nil
	case ExprMul:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		b, err := e.b.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return mulJet(a, b, prec), nil
	case ExprDiv:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		b, err := e.b.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return divJet(a, b, prec)
	case ExprNeg:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return negJet(a, prec), nil
	case ExprSin:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return sinJet(a, prec), nil
	case ExprCos:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return cosJet(a, prec), nil
	case ExprExp:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return expJet(a, prec), nil
	case ExprLog:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return logJet(a, prec)
	case ExprAtan:
		a, err := e.a.evalJet(env, prec)
		if err != nil {
			return jet{}, err
		}
		return atanJet(a, prec), nil
	}
	panic("function: unknown expr kind")
}

// evalJet dispatches jet evaluation across variants. A bare Patch
// variant has no expression tree to differentiate symbolically, so its
// Jacobian is left unsupported here, mirroring EvaluateDifferential's
// restriction on the same variant.
func (f *Function) evalJet(env []jet, prec uint) ([]jet, error) {
	switch f.kind {
	case KindConstant:
		n := len(env[0].grad)
		out := make([]jet, f.resN)
		for i, v := range f.constVal {
			out[i] = constJet(v, n, prec)
		}
		return out, nil
	case KindProjection:
		return []jet{env[f.projIdx]}, nil
	case KindSymbolic:
		out := make([]jet, f.resN)
		for i, e := range f.exprs {
			v, err := e.evalJet(env, prec)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindPatch:
		return nil, fmt.Errorf("function: Jacobian not supported on a bare patch variant")
	case KindComposite:
		mid, err := f.inner.evalJet(env, prec)
		if err != nil {
			return nil, err
		}
		return f.outer.evalJet(mid, prec)
	}
	panic("function: unknown kind")
}
