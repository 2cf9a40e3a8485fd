package grid

import (
	"testing"

	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

func box1(lo, hi float64) interval.Box {
	return interval.Box{interval.FromFloat64(lo, hi, prec)}
}

func TestFeasibleDetectsDisjointImage(t *testing.T) {
	x := function.Var(0)
	fn := function.NewSymbolic(1, []*function.Expr{x})
	domain := box1(2, 3)
	codomain := box1(-1, 1)

	verdict, err := Feasible(domain, fn, codomain, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != Infeasible {
		t.Fatalf("expected Infeasible, got %v", verdict)
	}
}

func TestFeasibleAcceptsContainedImage(t *testing.T) {
	x := function.Var(0)
	fn := function.NewSymbolic(1, []*function.Expr{x})
	domain := box1(-0.1, 0.1)
	codomain := box1(-1, 1)

	verdict, err := Feasible(domain, fn, codomain, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != Feasible {
		t.Fatalf("expected Feasible, got %v", verdict)
	}
}

func TestReduceShrinksDomainAwayFromInfeasibleHalf(t *testing.T) {
	x := function.Var(0)
	fn := function.NewSymbolic(1, []*function.Expr{x})
	domain := box1(-1, 4)
	codomain := box1(-1, 1)

	empty, err := Reduce(&domain, fn, codomain, prec, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty {
		t.Fatalf("domain should not be found empty")
	}
	if domain[0].Hi.Float64() > 1.5 {
		t.Fatalf("expected reduce to narrow the upper bound away from 4, got %v", domain[0])
	}
}

func TestAdjoinOuterApproximationWithConstraintRespectsInfeasibility(t *testing.T) {
	x := function.Var(0)
	fn := function.NewSymbolic(1, []*function.Expr{x})
	codomain := box1(10, 20)

	p := NewPaving(1, 0, prec)
	target := box1(-1, 1)
	if err := p.AdjoinOuterApproximationWithConstraint(target, 6, numeric.FromFloat64(0.01, prec), fn, codomain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.root != nil && p.root.enabled {
		t.Fatalf("constraint-incompatible target should not enable the root cell")
	}
}
