package grid

import (
	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

// Feasibility is the three-valued result of testing whether a system
// of constraints g(x) in codomain admits a solution within domain,
// mirroring original_source's ValidatedKleenean feasible/infeasible/
// indeterminate return convention.
type Feasibility int

const (
	// Infeasible means the constraint system provably has no solution
	// in domain.
	Infeasible Feasibility = iota
	// Feasible means the constraint system provably has a solution in
	// domain (domain itself satisfies every constraint).
	Feasible
	// Indeterminate means neither was established; domain may or may
	// not contain a solution.
	Indeterminate
)

// OuterApproximationStrategy names the ways a candidate cell box can be
// judged to intersect the target set (spec.md 4.8: subdivision, affine,
// constraint). No function takes it as a parameter:
// AdjoinOuterApproximation always behaves as StrategyAffine, and
// AdjoinOuterApproximationWithConstraint as StrategyConstraint.
type OuterApproximationStrategy int

const (
	// StrategySubdivision only ever bisects down to maxDepth, accepting
	// any non-disjoint cell at the leaf. No function in this package
	// implements it on its own: Paving.subdivide also accepts a cell
	// early once it lies inside the eps-widened target.
	StrategySubdivision OuterApproximationStrategy = iota
	// StrategyAffine is the default: accept a cell once it is contained
	// in an eps-widened target box, as Paving.subdivide already does via
	// subsetBox against widenedTarget.
	StrategyAffine
	// StrategyConstraint additionally checks each candidate cell with
	// Feasible against an explicit constraint function and drops cells
	// it proves infeasible; the cell boxes themselves are not narrowed.
	StrategyConstraint
)

// Feasible tests whether function's image over domain can intersect
// codomain, by evaluating function's interval range over domain and
// checking for overlap with every codomain component. This is the
// conservative (no false negatives) analogue of
// ConstraintSolverInterface::feasible: an Infeasible verdict is sound,
// a Feasible or Indeterminate verdict just means "couldn't rule it
// out" without running a full nonlinear solve.
func Feasible(domain interval.Box, fn *function.Function, codomain interval.Box, prec uint) (Feasibility, error) {
	image, err := fn.EvaluateInterval(domain, prec)
	if err != nil {
		return Indeterminate, err
	}
	if len(image) != len(codomain) {
		return Indeterminate, nil
	}
	for i := range image {
		if disjointIntervals(image[i], codomain[i]) {
			return Infeasible, nil
		}
	}
	if subsetBox(image, codomain) {
		return Feasible, nil
	}
	return Indeterminate, nil
}

// Reduce narrows domain in place by propagating the single scalar
// constraint function(x) in codomain component-wise, grounded on
// ConstraintSolverInterface::reduce's hull-consistency loop: iterate
// interval evaluation, shrinking degenerate dimensions via bisection
// feasibility checks, until no axis narrows any further or domain is
// found empty. Returns true if domain is now known empty.
func Reduce(domain *interval.Box, fn *function.Function, codomain interval.Box, prec uint, maxIterations int) (bool, error) {
	for iter := 0; iter < maxIterations; iter++ {
		verdict, err := Feasible(*domain, fn, codomain, prec)
		if err != nil {
			return false, err
		}
		if verdict == Infeasible {
			return true, nil
		}
		if verdict == Feasible {
			return false, nil
		}
		shrunk, changed, err := hullReduceOnce(*domain, fn, codomain, prec)
		if err != nil {
			return false, err
		}
		if !changed {
			return false, nil
		}
		*domain = shrunk
	}
	return false, nil
}

// hullReduceOnce bisects each axis of domain in turn, discarding the
// half whose image is disjoint from codomain, mirroring box_reduce's
// per-dimension narrowing.
func hullReduceOnce(domain interval.Box, fn *function.Function, codomain interval.Box, prec uint) (interval.Box, bool, error) {
	out := append(interval.Box(nil), domain...)
	changed := false
	for axis := range out {
		lo, hi := out[axis].Lo, out[axis].Hi
		mid := numeric.Div2(numeric.Add(lo, hi, prec, numeric.Near), prec)

		lowerBox := append(interval.Box(nil), out...)
		lowerBox[axis] = interval.Interval{Lo: lo, Hi: mid, Prec: prec}
		lowerVerdict, err := Feasible(lowerBox, fn, codomain, prec)
		if err != nil {
			return domain, false, err
		}

		upperBox := append(interval.Box(nil), out...)
		upperBox[axis] = interval.Interval{Lo: mid, Hi: hi, Prec: prec}
		upperVerdict, err := Feasible(upperBox, fn, codomain, prec)
		if err != nil {
			return domain, false, err
		}

		switch {
		case lowerVerdict == Infeasible && upperVerdict != Infeasible:
			out[axis] = upperBox[axis]
			changed = true
		case upperVerdict == Infeasible && lowerVerdict != Infeasible:
			out[axis] = lowerBox[axis]
			changed = true
		}
	}
	return out, changed, nil
}

func disjointIntervals(a, b interval.Interval) bool {
	return a.Hi.Cmp(b.Lo) < 0 || b.Hi.Cmp(a.Lo) < 0
}

// AdjoinOuterApproximationWithConstraint implements the
// StrategyConstraint variant of spec.md 4.8's outer approximation: it
// behaves like AdjoinOuterApproximation, but a candidate cell is only
// accepted or subdivided while Feasible cannot rule its image
// infeasible against the constraint; cells proven infeasible are
// skipped, and accepted cells are enabled whole, without narrowing.
func (p *Paving) AdjoinOuterApproximationWithConstraint(box interval.Box, maxDepth int, eps numeric.Float, fn *function.Function, codomain interval.Box) error {
	if p.root == nil {
		p.root = &node{}
	}
	widened := widen(box, eps, p.Prec)
	return p.subdivideConstrained(p.root, p.RootBox(), nil, box, widened, maxDepth, fn, codomain)
}

func (p *Paving) subdivideConstrained(n *node, cellBox interval.Box, path []bool, target, widenedTarget interval.Box, maxDepth int, fn *function.Function, codomain interval.Box) error {
	if disjointBoxes(cellBox, target) {
		return nil
	}
	if fn != nil {
		verdict, err := Feasible(cellBox, fn, codomain, p.Prec)
		if err != nil {
			return err
		}
		if verdict == Infeasible {
			return nil
		}
	}
	if len(path) >= maxDepth || subsetBox(cellBox, widenedTarget) {
		n.enabled = true
		n.children = [2]*node{}
		return nil
	}
	axis := len(path) % p.Dim
	lo, hi := cellBox[axis].Lo, cellBox[axis].Hi
	mid := numeric.Div2(numeric.Add(lo, hi, p.Prec, numeric.Near), p.Prec)

	lowerBox := append(interval.Box(nil), cellBox...)
	lowerBox[axis] = interval.Interval{Lo: lo, Hi: mid, Prec: p.Prec}
	upperBox := append(interval.Box(nil), cellBox...)
	upperBox[axis] = interval.Interval{Lo: mid, Hi: hi, Prec: p.Prec}

	if n.children[0] == nil {
		n.children[0] = &node{}
	}
	if n.children[1] == nil {
		n.children[1] = &node{}
	}
	n.enabled = false
	if err := p.subdivideConstrained(n.children[0], lowerBox, append(append([]bool(nil), path...), false), target, widenedTarget, maxDepth, fn, codomain); err != nil {
		return err
	}
	return p.subdivideConstrained(n.children[1], upperBox, append(append([]bool(nil), path...), true), target, widenedTarget, maxDepth, fn, codomain)
}
