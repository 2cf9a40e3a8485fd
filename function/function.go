// Package function implements the polymorphic n->m map abstraction
// (spec.md 4.4): a closed tagged union of constant, coordinate
// projection, symbolic expression, Taylor-model patch and composite
// variants, dispatched by tag rather than through an open virtual
// hierarchy, since the variant set is fixed by design.
package function

import (
	"fmt"

	"ariadne/differential"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// Kind tags which of the closed set of variants a Function holds.
type Kind int

const (
	KindConstant Kind = iota
	KindProjection
	KindSymbolic
	KindPatch
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindProjection:
		return "projection"
	case KindSymbolic:
		return "symbolic"
	case KindPatch:
		return "patch"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Function is the tagged union; exactly one of the per-variant fields
// below is populated according to kind.
type Function struct {
	kind Kind
	argN int
	resN int

	constVal []numeric.Float       // KindConstant
	projIdx  int                   // KindProjection
	exprs    []*Expr               // KindSymbolic, one per result component
	patch    []*taylormodel.Model  // KindPatch, one model per result component, shared Vars==argN
	outer    *Function             // KindComposite
	inner    *Function             // KindComposite
}

// NewConstant returns the function x |-> v for every x.
func NewConstant(argN int, v []numeric.Float) *Function {
	return &Function{kind: KindConstant, argN: argN, resN: len(v), constVal: append([]numeric.Float(nil), v...)}
}

// NewProjection returns the coordinate projection x |-> x_idx.
func NewProjection(argN, idx int) *Function {
	if idx < 0 || idx >= argN {
		panic("function: projection index out of range")
	}
	return &Function{kind: KindProjection, argN: argN, resN: 1, projIdx: idx}
}

// NewSymbolic returns a function whose i-th result component is the
// expression tree exprs[i] over argN variables.
func NewSymbolic(argN int, exprs []*Expr) *Function {
	return &Function{kind: KindSymbolic, argN: argN, resN: len(exprs), exprs: exprs}
}

// NewPatch returns a function delegating to a vector of Taylor models
// sharing one argument box (spec.md 4.4's "patch" variant).
func NewPatch(models []*taylormodel.Model) *Function {
	if len(models) == 0 {
		panic("function: NewPatch requires at least one model")
	}
	argN := models[0].Vars
	for _, m := range models {
		if m.Vars != argN {
			panic("function: patch models disagree on argument arity")
		}
	}
	return &Function{kind: KindPatch, argN: argN, resN: len(models), patch: models}
}

// NewAffine returns the exact affine map x |-> A*x + b as a zero-error
// Patch function, a fast path used for the linear 2D worked example and
// for Lipschitz-constant estimation (the supplement grounded on
// original_source/function/affine_vector_field.h — an affine field's
// Jacobian is the constant matrix A).
func NewAffine(a [][]numeric.Float, b []numeric.Float, prec uint) *Function {
	m := len(a)
	if m == 0 || m != len(b) {
		panic("function: NewAffine requires len(a)==len(b)>0")
	}
	n := len(a[0])
	maxDegree := 1
	models := make([]*taylormodel.Model, m)
	for i := 0; i < m; i++ {
		if len(a[i]) != n {
			panic("function: NewAffine requires a rectangular matrix")
		}
		row := taylormodel.FromConstant(n, maxDegree, b[i], prec)
		for j := 0; j < n; j++ {
			if a[i][j].IsZero() {
				continue
			}
			term := taylormodel.ScalarMulInterval(interval.Point(a[i][j]), taylormodel.Identity(n, maxDegree, j, prec))
			row = taylormodel.Add(row, term)
		}
		models[i] = row
	}
	return NewPatch(models)
}

// Compose returns outer∘inner: (outer∘inner)(x) = outer(inner(x)).
// Composition is strictly hierarchical (spec.md's "cyclic references"
// note), so the result is always a DAG, never a cycle.
func Compose(outer, inner *Function) *Function {
	if outer.argN != inner.resN {
		panic(fmt.Sprintf("function: compose arity mismatch: outer wants %d args, inner produces %d results", outer.argN, inner.resN))
	}
	return &Function{kind: KindComposite, argN: inner.argN, resN: outer.resN, outer: outer, inner: inner}
}

// ArgumentSize returns n, the number of input variables.
func (f *Function) ArgumentSize() int { return f.argN }

// ResultSize returns m, the number of output components.
func (f *Function) ResultSize() int { return f.resN }

// Kind exposes the variant tag (for diagnostics and the symbolic
// frontend's dispatch, spec.md 9).
func (f *Function) Kind() Kind { return f.kind }

// SupportsDifferential reports whether EvaluateDifferential can be
// called without error (the function_mixin.h-style capability
// promotion supplement: callers branch instead of hitting a runtime
// DomainError). Constant, projection and symbolic variants support it;
// a bare patch does not; a composite supports it only when both its
// inner and outer legs do.
func (f *Function) SupportsDifferential() bool {
	switch f.kind {
	case KindConstant, KindProjection, KindSymbolic:
		return true
	case KindPatch:
		// A bare Taylor-model patch has no expression tree to push a
		// Differential through; EvaluateDifferential rejects it.
		return false
	case KindComposite:
		return f.inner.SupportsDifferential() && f.outer.SupportsDifferential()
	default:
		return false
	}
}

// EvaluateInterval returns an enclosure of f(x) for x ranging over the
// box env.
func (f *Function) EvaluateInterval(env interval.Box, prec uint) (interval.Box, error) {
	if len(env) != f.argN {
		return nil, fmt.Errorf("function: EvaluateInterval: expected %d arguments, got %d", f.argN, len(env))
	}
	switch f.kind {
	case KindConstant:
		out := make(interval.Box, f.resN)
		for i, v := range f.constVal {
			out[i] = interval.Point(v)
		}
		return out, nil
	case KindProjection:
		return interval.Box{env[f.projIdx]}, nil
	case KindSymbolic:
		out := make(interval.Box, f.resN)
		for i, e := range f.exprs {
			v, err := e.EvaluateInterval(env, prec)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindPatch:
		out := make(interval.Box, f.resN)
		for i, m := range f.patch {
			out[i] = m.Range(env)
		}
		return out, nil
	case KindComposite:
		mid, err := f.inner.EvaluateInterval(env, prec)
		if err != nil {
			return nil, err
		}
		return f.outer.EvaluateInterval(mid, prec)
	}
	panic("function: unknown kind")
}

// EvaluateDifferential returns f evaluated at a vector of
// Differential[numeric.Float], for the series integrator's automatic
// differentiation of the vector field along a candidate flow.
func (f *Function) EvaluateDifferential(env []*differential.Differential[numeric.Float], prec uint) ([]*differential.Differential[numeric.Float], error) {
	if len(env) != f.argN {
		return nil, fmt.Errorf("function: EvaluateDifferential: expected %d arguments, got %d", f.argN, len(env))
	}
	switch f.kind {
	case KindConstant:
		vars, degree := env[0].Vars(), env[0].Degree()
		alg := differential.FloatAlgebra{Prec: prec}
		out := make([]*differential.Differential[numeric.Float], f.resN)
		for i, v := range f.constVal {
			out[i] = differential.Constant(vars, degree, v, alg)
		}
		return out, nil
	case KindProjection:
		return []*differential.Differential[numeric.Float]{env[f.projIdx]}, nil
	case KindSymbolic:
		out := make([]*differential.Differential[numeric.Float], f.resN)
		for i, e := range f.exprs {
			v, err := e.EvaluateDifferential(env, prec)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindPatch:
		return nil, fmt.Errorf("function: EvaluateDifferential not supported on a bare patch variant")
	case KindComposite:
		mid, err := f.inner.EvaluateDifferential(env, prec)
		if err != nil {
			return nil, err
		}
		return f.outer.EvaluateDifferential(mid, prec)
	}
	panic("function: unknown kind")
}

// RestrictToBox returns a coarse Patch-variant enclosure of f over box:
// a degree-0 Taylor model per output component, centred at the range's
// midpoint with error equal to the range's radius. It is a sound but
// deliberately low-fidelity fallback (callers needing a tight
// polynomial enclosure build one directly via the integrator instead)
// used when a generic Function needs to be handed to code that only
// accepts the Patch variant.
func (f *Function) RestrictToBox(box interval.Box, prec uint) (*Function, error) {
	rng, err := f.EvaluateInterval(box, prec)
	if err != nil {
		return nil, err
	}
	models := make([]*taylormodel.Model, f.resN)
	for i, r := range rng {
		m := taylormodel.FromConstant(f.argN, 0, r.Midpoint(), prec)
		m, err = m.WithError(r.Radius())
		if err != nil {
			return nil, err
		}
		models[i] = m
	}
	return NewPatch(models), nil
}

// EvaluateModel pushes a vector of Taylor models through f, the
// operation the Picard integrator repeatedly applies to build f(phi^(k))
// (spec.md 4.6). A Patch variant composes via taylormodel.Compose
// directly, substituting env[j] for the patch's own j-th variable.
func (f *Function) EvaluateModel(env []*taylormodel.Model) ([]*taylormodel.Model, error) {
	if len(env) != f.argN {
		return nil, fmt.Errorf("function: EvaluateModel: expected %d arguments, got %d", f.argN, len(env))
	}
	switch f.kind {
	case KindConstant:
		vars, deg, prec := env[0].Vars, env[0].MaxDegree, env[0].Prec
		out := make([]*taylormodel.Model, f.resN)
		for i, v := range f.constVal {
			out[i] = taylormodel.FromConstant(vars, deg, v, prec)
		}
		return out, nil
	case KindProjection:
		return []*taylormodel.Model{env[f.projIdx]}, nil
	case KindSymbolic:
		out := make([]*taylormodel.Model, f.resN)
		for i, e := range f.exprs {
			v, err := e.EvaluateModel(env)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindPatch:
		out := make([]*taylormodel.Model, f.resN)
		for i, m := range f.patch {
			out[i] = taylormodel.Compose(m, env)
		}
		return out, nil
	case KindComposite:
		mid, err := f.inner.EvaluateModel(env)
		if err != nil {
			return nil, err
		}
		return f.outer.EvaluateModel(mid)
	}
	panic("function: unknown kind")
}

// Jacobian returns a rigorous enclosure of Df over the box env, via
// first-order forward-mode interval automatic differentiation (see
// jacobian.go): sound because every elementary operation's interval
// image already encloses its true range, and the chain rule composes
// those enclosures with outward-rounded interval arithmetic.
func (f *Function) Jacobian(env interval.Box, prec uint) ([][]interval.Interval, error) {
	if len(env) != f.argN {
		return nil, fmt.Errorf("function: Jacobian: expected %d arguments, got %d", f.argN, len(env))
	}
	seeds := make([]jet, f.argN)
	for j := 0; j < f.argN; j++ {
		grad := make([]interval.Interval, f.argN)
		for k := range grad {
			if k == j {
				grad[k] = interval.Point(numeric.FromInt64(1, prec))
			} else {
				grad[k] = interval.Point(numeric.FromInt64(0, prec))
			}
		}
		seeds[j] = jet{val: env[j], grad: grad}
	}
	outJets, err := f.evalJet(seeds, prec)
	if err != nil {
		return nil, err
	}
	jac := make([][]interval.Interval, f.resN)
	for i, oj := range outJets {
		jac[i] = oj.grad
	}
	return jac, nil
}
