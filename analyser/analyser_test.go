package analyser

import (
	"context"
	"testing"

	"ariadne/evolver"
	"ariadne/function"
	"ariadne/grid"
	"ariadne/integrator"
	"ariadne/interval"
	"ariadne/numeric"
)

const prec = 53

func stableLinearField() *function.Function {
	x := function.Var(0)
	lambda := function.Const(numeric.FromFloat64(-1, prec))
	return function.NewSymbolic(1, []*function.Expr{function.Mul(lambda, x)})
}

func newAnalyser() *Analyser {
	integ := integrator.NewPicardIntegrator(integrator.Config{Prec: prec})
	ev := evolver.New(integ, evolver.Config{Prec: prec, MaximumStepSize: 0.05})
	return New(ev, Config{Prec: prec, LockToGridTime: 0.05, MaximumGridDepth: 4})
}

func pavingFromBox(box interval.Box, dim, primaryHeight int) *grid.Paving {
	p := grid.NewPaving(dim, primaryHeight, prec)
	p.AdjoinOuterApproximation(box, 4, numeric.FromFloat64(1e-9, prec))
	return p
}

func TestChainReachStaysWithinGrid(t *testing.T) {
	a := newAnalyser()
	f := stableLinearField()
	initial := pavingFromBox(interval.Box{interval.FromFloat64(0.9, 1.1, prec)}, 1, 2)

	reached, err := a.ChainReach(context.Background(), f, initial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reached.IsEmpty() {
		t.Fatalf("expected a non-empty chain reach set")
	}
}

func TestVerifySafetyReportsSafeWhenReachStaysInSafeSet(t *testing.T) {
	a := newAnalyser()
	f := stableLinearField()
	initial := pavingFromBox(interval.Box{interval.FromFloat64(0.9, 1.1, prec)}, 1, 2)
	safeSet := pavingFromBox(interval.Box{interval.FromFloat64(-4, 4, prec)}, 1, 2)

	verdict, evidence, err := a.VerifySafety(context.Background(), f, initial, safeSet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != Safe {
		t.Fatalf("expected Safe, got %v (evidence cells: %d)", verdict, len(evidence.EnabledCells()))
	}
}

func TestVerifyAgainstBlockingFindsNoWitnessWhenDisjoint(t *testing.T) {
	a := newAnalyser()
	f := stableLinearField()
	initial := pavingFromBox(interval.Box{interval.FromFloat64(0.9, 1.1, prec)}, 1, 2)
	blocking := pavingFromBox(interval.Box{interval.FromFloat64(100, 101, prec)}, 1, 2)

	witness, _, err := a.VerifyAgainstBlocking(context.Background(), f, initial, blocking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if witness != nil {
		t.Fatalf("expected no blocking witness, got %+v", witness)
	}
}

func TestSafetyString(t *testing.T) {
	if Safe.String() != "safe" || Unsafe.String() != "unsafe" || Indeterminate.String() != "indeterminate" {
		t.Fatalf("unexpected Safety.String() values")
	}
}
